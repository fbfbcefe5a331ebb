// Package models defines the shared data shapes passed between the DART
// collector, the normalization core, and the report/export layers.
package models

// Item is a canonical income-statement line item. Raw account labels from
// every producer (DART rows, uploaded XBRL tags) are normalized into this
// fixed vocabulary before any derivation or ratio work happens.
type Item string

const (
	ItemRevenue           Item = "매출액"
	ItemCostOfRevenue     Item = "매출원가"
	ItemGrossProfit       Item = "매출총이익"
	ItemSellingExpense    Item = "판매비"
	ItemAdminExpense      Item = "관리비"
	ItemSGA               Item = "판관비"
	ItemLaborCost         Item = "인건비"
	ItemDepreciation      Item = "감가상각비"
	ItemOperatingIncome   Item = "영업이익"
	ItemNonOperatingInc   Item = "영업외수익"
	ItemNonOperatingExp   Item = "영업외비용"
	ItemFinanceCost       Item = "금융비용"
	ItemInterestExpense   Item = "이자비용"
	ItemNetIncome         Item = "당기순이익"
)

// DisplayOrder is the fixed statement row order. Assemblers emit rows in this
// order, skipping items that are absent or exactly zero.
var DisplayOrder = []Item{
	ItemRevenue, ItemCostOfRevenue, ItemGrossProfit,
	ItemSellingExpense, ItemAdminExpense, ItemSGA,
	ItemLaborCost, ItemDepreciation, ItemOperatingIncome,
	ItemNonOperatingInc, ItemNonOperatingExp,
	ItemFinanceCost, ItemInterestExpense, ItemNetIncome,
}

// ItemSet holds canonical line-item amounts for one company, in KRW won.
// Estimated marks values filled in by the derivation engine rather than
// reported by the producer; reported values never carry the flag.
type ItemSet struct {
	Values    map[Item]float64 `json:"values"`
	Estimated map[Item]bool    `json:"estimated,omitempty"`
}

// NewItemSet returns an empty set ready for incremental mapping.
func NewItemSet() *ItemSet {
	return &ItemSet{
		Values:    make(map[Item]float64),
		Estimated: make(map[Item]bool),
	}
}

// Has reports whether the item was mapped or derived.
func (s *ItemSet) Has(item Item) bool {
	_, ok := s.Values[item]
	return ok
}

// Get returns the amount, or zero when absent.
func (s *ItemSet) Get(item Item) float64 {
	return s.Values[item]
}

// Set records a reported value, clearing any estimate flag.
func (s *ItemSet) Set(item Item, v float64) {
	s.Values[item] = v
	delete(s.Estimated, item)
}

// SetEstimated records a derived value and flags it as estimated.
func (s *ItemSet) SetEstimated(item Item, v float64) {
	s.Values[item] = v
	s.Estimated[item] = true
}

// RatioSet maps ratio display names (e.g. "영업이익률(%)") to values already
// rounded to two decimals. It is always empty when revenue <= 0.
type RatioSet map[string]float64

// Row is one line of a company statement: the line-item or ratio name, the
// formatted display string, and the raw numeric value kept for downstream
// numeric consumers (charts, exports).
type Row struct {
	Name      string  `json:"name"`
	Display   string  `json:"display"`
	RawValue  float64 `json:"raw_value"`
	Estimated bool    `json:"estimated,omitempty"`
}

// CompanyStatement is the assembled per-company table: canonical items in
// display order followed by ratio rows.
type CompanyStatement struct {
	Company string `json:"company"`
	Rows    []Row  `json:"rows"`
}

// Placeholder fills merged cells that have no source data.
const Placeholder = "-"

// RawValueSuffix marks the unformatted numeric column paired with each
// company's display column in a merged table.
const RawValueSuffix = "_원시값"

// KeyColumn is the line-item key column of a merged table.
const KeyColumn = "구분"

// MergedStatement is the cross-company comparison table. Columns holds the
// final column order (구분 first, anchor company next, raw-value columns
// last); Cells is keyed by column name per row.
type MergedStatement struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// Companies returns the display-column company names, in column order.
func (m *MergedStatement) Companies() []string {
	var out []string
	for _, col := range m.Columns {
		if col == KeyColumn || isRawColumn(col) {
			continue
		}
		out = append(out, col)
	}
	return out
}

func isRawColumn(col string) bool {
	return len(col) >= len(RawValueSuffix) && col[len(col)-len(RawValueSuffix):] == RawValueSuffix
}

// SourceInfo records where a company's numbers came from, for the sources
// table shown alongside the dashboard.
type SourceInfo struct {
	Company    string `json:"company"`
	CorpCode   string `json:"corp_code"`
	ReportCode string `json:"report_code"`
	ReportType string `json:"report_type"`
	Year       string `json:"year"`
	ReceiptNo  string `json:"receipt_no"`
	ViewerURL  string `json:"viewer_url"`
}
