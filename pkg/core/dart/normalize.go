package dart

import (
	"log"

	"peer_analysis/pkg/core/statement"
	"peer_analysis/pkg/models"
)

// NormalizeOptions controls how raw statement rows become canonical items.
type NormalizeOptions struct {
	// Matcher resolves Korean account labels. Defaults to the lookup table,
	// which handles DART's account_nm variants well.
	Matcher statement.LabelMatcher

	// Scale multiplies every parsed amount. DART reports in won, so 1.0.
	Scale float64

	// DashIsZero treats a bare "-" amount as zero instead of missing.
	// Filings use it for genuinely-zero lines.
	DashIsZero bool
}

// Normalize folds raw statement rows into a canonical item set. Rows whose
// labels match no known item are skipped; when two rows map to the same item
// the larger absolute value wins, since summary rows repeat detail lines.
func Normalize(rows []AccountRow, opts NormalizeOptions) *models.ItemSet {
	matcher := opts.Matcher
	if matcher == nil {
		matcher = statement.NewLookupMatcher()
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1.0
	}

	set := models.NewItemSet()
	matched := 0
	for _, row := range rows {
		if row.AccountName == "" || row.CurrentAmount == "" {
			continue
		}
		item, ok := matcher.Match(row.AccountName)
		if !ok {
			continue
		}
		value, ok := statement.ParseAmount(row.CurrentAmount, opts.DashIsZero)
		if !ok {
			continue
		}
		statement.Apply(set, item, value*scale)
		matched++
	}

	if matched == 0 {
		log.Printf("no statement rows matched out of %d", len(rows))
	}
	return set
}
