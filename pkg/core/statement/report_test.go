package statement

import (
	"strings"
	"testing"

	"peer_analysis/pkg/models"
)

func TestCompareReportNoData(t *testing.T) {
	if got := CompareReport(&models.MergedStatement{}); got != NoDataMessage {
		t.Errorf("empty merge = %q, want the fixed no-data message", got)
	}
	if got := CompareReport(nil); got != NoDataMessage {
		t.Errorf("nil merge = %q, want the fixed no-data message", got)
	}
}

func TestCompareReportSections(t *testing.T) {
	a := stmtWith("SK에너지",
		models.Row{Name: "매출액", Display: "1.0조원", RawValue: 1e12},
		models.Row{Name: "영업이익", Display: "500억원", RawValue: 5e10},
		models.Row{Name: RatioOperatingMargin, Display: "5.00%", RawValue: 5},
	)
	b := stmtWith("GS칼텍스",
		models.Row{Name: "매출액", Display: "2.0조원", RawValue: 2e12},
		models.Row{Name: RatioOperatingMargin, Display: "4.00%", RawValue: 4},
	)
	report := CompareReport(Merge([]models.CompanyStatement{a, b}, "SK"))

	if !strings.Contains(report, "SK에너지, GS칼텍스") {
		t.Error("header must list the companies in column order")
	}
	if !strings.Contains(report, "분석 항목 수: 3개") {
		t.Error("header must state the row count")
	}
	if !strings.Contains(report, RatioOperatingMargin) {
		t.Error("ratio section missing the margin row")
	}
	if !strings.Contains(report, "SK에너지: 5.00% | GS칼텍스: 4.00%") {
		t.Errorf("ratio values not inlined:\n%s", report)
	}
	// GS칼텍스 has no 영업이익 cell: its placeholder must be skipped, not
	// printed.
	if strings.Contains(report, "GS칼텍스: -") {
		t.Error("placeholder cells must be skipped")
	}
	if !strings.Contains(report, "SK에너지: 500억원") {
		t.Error("absolute section missing operating income")
	}
}
