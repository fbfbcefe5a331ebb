package dart

import (
	"context"
	"fmt"
	"strings"

	"peer_analysis/pkg/core/statement"
	"peer_analysis/pkg/models"
)

// QuarterMetrics holds the trend figures for one company quarter, in the
// units the dashboard charts use.
type QuarterMetrics struct {
	Company string  `json:"company"`
	Year    string  `json:"year"`
	Quarter string  `json:"quarter"`
	// 매출액, 조원 단위
	RevenueTrillions float64 `json:"revenue_trillions"`
	// 영업이익, 억원 단위
	OperatingProfitHundredMillions float64 `json:"operating_profit_hundred_millions"`
	// 영업이익률 (%)
	OperatingMargin float64 `json:"operating_margin"`
}

// quarterReports pairs quarter labels with their report codes. Q2 uses the
// half-year report, which accumulates the first two quarters.
var quarterReports = []struct {
	Quarter    string
	ReportCode string
}{
	{"Q1", ReportQ1},
	{"Q2", ReportHalf},
	{"Q3", ReportQ3},
	{"Q4", ReportAnnual},
}

// CollectQuarterly fetches a year's four filings for one company and
// extracts revenue and operating profit from each. Quarters without a
// published filing are skipped.
func (c *Client) CollectQuarterly(ctx context.Context, company, corpCode, year string) ([]QuarterMetrics, error) {
	var results []QuarterMetrics

	for i, qr := range quarterReports {
		fmt.Printf("[Quarterly] 📊 %s %s 데이터 수집중... (%d/%d)\n", company, qr.Quarter, i+1, len(quarterReports))

		rows, err := c.FetchStatement(ctx, corpCode, year, qr.ReportCode)
		if err != nil {
			continue
		}

		metrics, ok := extractQuarterMetrics(rows)
		if !ok {
			continue
		}
		metrics.Company = company
		metrics.Year = year
		metrics.Quarter = qr.Quarter
		results = append(results, metrics)
	}

	fmt.Printf("[Quarterly] ✅ %s 분기별 데이터 수집 완료 (%d개 분기)\n", company, len(results))
	if len(results) == 0 {
		return nil, fmt.Errorf("no quarterly data for %s in %s", company, year)
	}
	return results, nil
}

// extractQuarterMetrics pulls the two headline figures from raw rows. A
// substring scan over labels suffices here, unlike the full normalization
// the comparison table needs.
func extractQuarterMetrics(rows []AccountRow) (QuarterMetrics, bool) {
	var m QuarterMetrics
	var haveRevenue, haveProfit bool

	for _, row := range rows {
		if !haveRevenue && containsAny(row.AccountName, "매출액", "revenue", "sales") {
			if v, ok := statement.ParseAmount(row.CurrentAmount, true); ok {
				m.RevenueTrillions = v / 1e12
				haveRevenue = true
			}
		}
		if !haveProfit && containsAny(row.AccountName, string(models.ItemOperatingIncome), "operating") {
			if v, ok := statement.ParseAmount(row.CurrentAmount, true); ok {
				m.OperatingProfitHundredMillions = v / 1e8
				haveProfit = true
			}
		}
		if haveRevenue && haveProfit {
			break
		}
	}

	if !haveRevenue {
		return QuarterMetrics{}, false
	}
	if haveProfit && m.RevenueTrillions > 0 {
		// Both sides back in won: 조원 is 1e12, 억원 is 1e8.
		m.OperatingMargin = (m.OperatingProfitHundredMillions * 1e8) / (m.RevenueTrillions * 1e12) * 100
	}
	return m, true
}

func containsAny(label string, keywords ...string) bool {
	lower := strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
