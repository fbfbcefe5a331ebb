package statement

import (
	"math"

	"peer_analysis/pkg/models"
)

// Ratio display names. The suffix inside the name drives formatting later:
// (%) percentage, (억원) currency scale, (점) composite point score.
const (
	RatioOperatingMargin  = "영업이익률(%)"
	RatioNetMargin        = "순이익률(%)"
	RatioGrossMargin      = "매출총이익률(%)"
	RatioCostOfRevenue    = "매출원가율(%)"
	RatioSGA              = "판관비율(%)"
	RatioLaborCost        = "인건비율(%)"
	RatioOpIncomePerTrn   = "매출 1조원당 영업이익(억원)"
	RatioCostEfficiency   = "원가효율성지수(점)"
	RatioCompositeScore   = "종합수익성점수(점)"
	RatioIndustryRelative = "업계대비성과(%)"
)

// industryAvgMargin is the assumed industry-average operating margin used by
// the relative-performance ratio.
const industryAvgMargin = 3.5

// RatioOptions selects the producer-specific extended ratio set.
type RatioOptions struct {
	// Enhanced adds the DART-path ratios: operating income per trillion won
	// of revenue, the cost-efficiency index, the composite profitability
	// score, and the industry-relative performance figure.
	Enhanced bool
}

// round2 rounds to two decimal places, the precision of every published ratio.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeRatios derives the ratio set from a completed item set. Revenue must
// be strictly positive or the result is empty; division by zero is never
// attempted. Each ratio is emitted only when its numerator item is present.
func ComputeRatios(set *models.ItemSet, opts RatioOptions) models.RatioSet {
	ratios := models.RatioSet{}

	revenue := set.Get(models.ItemRevenue)
	if revenue <= 0 {
		return ratios
	}

	pct := func(name string, item models.Item) {
		if set.Has(item) {
			ratios[name] = round2(set.Get(item) / revenue * 100)
		}
	}
	pct(RatioOperatingMargin, models.ItemOperatingIncome)
	pct(RatioNetMargin, models.ItemNetIncome)
	pct(RatioGrossMargin, models.ItemGrossProfit)
	pct(RatioCostOfRevenue, models.ItemCostOfRevenue)
	pct(RatioSGA, models.ItemSGA)
	pct(RatioLaborCost, models.ItemLaborCost)

	if !opts.Enhanced {
		return ratios
	}

	if set.Has(models.ItemOperatingIncome) {
		// Operating income in 억원 per 조원 of revenue.
		ratios[RatioOpIncomePerTrn] = round2(
			(set.Get(models.ItemOperatingIncome) / 1e8) / (revenue / 1e12))
	}
	ratios[RatioCostEfficiency] = round2(100 - ratios[RatioCostOfRevenue])

	opMargin := ratios[RatioOperatingMargin]
	netMargin := ratios[RatioNetMargin]
	ratios[RatioCompositeScore] = round2((opMargin*2 + netMargin) / 3)

	if opMargin > 0 {
		ratios[RatioIndustryRelative] = round2(opMargin / industryAvgMargin * 100)
	}
	return ratios
}
