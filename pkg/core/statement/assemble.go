package statement

import "peer_analysis/pkg/models"

// ratioOrder fixes the ratio-row order in assembled statements. Map iteration
// would otherwise shuffle rows between runs.
var ratioOrder = []string{
	RatioOperatingMargin,
	RatioNetMargin,
	RatioGrossMargin,
	RatioCostOfRevenue,
	RatioSGA,
	RatioLaborCost,
	RatioOpIncomePerTrn,
	RatioCostEfficiency,
	RatioCompositeScore,
	RatioIndustryRelative,
}

// AssembleOptions selects the producer-specific display variants.
type AssembleOptions struct {
	// LossIndicator renders negative 영업이익/당기순이익 with the loss
	// suffix instead of the plain negative form (DART path).
	LossIndicator bool
}

// Assemble renders the completed item set and ratio set into the ordered
// per-company statement. Items with an exactly-zero value are never emitted;
// ratio rows follow the item rows.
func Assemble(company string, set *models.ItemSet, ratios models.RatioSet, opts AssembleOptions) models.CompanyStatement {
	stmt := models.CompanyStatement{Company: company}

	for _, item := range models.DisplayOrder {
		if !set.Has(item) {
			continue
		}
		v := set.Get(item)
		if v == 0 {
			continue
		}
		stmt.Rows = append(stmt.Rows, models.Row{
			Name:      string(item),
			Display:   formatItem(item, v, opts),
			RawValue:  v,
			Estimated: set.Estimated[item],
		})
	}

	for _, name := range ratioOrder {
		v, ok := ratios[name]
		if !ok {
			continue
		}
		stmt.Rows = append(stmt.Rows, models.Row{
			Name:     name,
			Display:  FormatRatio(name, v),
			RawValue: v,
		})
	}
	return stmt
}

func formatItem(item models.Item, v float64, opts AssembleOptions) string {
	if opts.LossIndicator {
		if item == models.ItemOperatingIncome || item == models.ItemNetIncome {
			return FormatWithLossIndicator(v)
		}
		return FormatAmountPlain(v)
	}
	return FormatAmount(v)
}
