package statement

import (
	"fmt"
	"strings"

	"peer_analysis/pkg/models"
)

// NoDataMessage is returned when there is nothing to compare.
const NoDataMessage = "📋 비교할 데이터가 없습니다."

// CompareReport renders the merged table into a multi-section plain-text
// digest: a header with the company list and row count, the ratio rows, and
// a fixed subset of absolute-value rows. Placeholder cells are skipped so a
// company never shows an empty value.
func CompareReport(merged *models.MergedStatement) string {
	if merged == nil || len(merged.Rows) == 0 {
		return NoDataMessage
	}

	companies := merged.Companies()
	var b strings.Builder
	line := strings.Repeat("=", 80)

	b.WriteString(line + "\n")
	b.WriteString("📊 손익계산서 경쟁사 비교 분석\n")
	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("📈 분석 대상 회사: %s\n", strings.Join(companies, ", ")))
	b.WriteString(fmt.Sprintf("📋 분석 항목 수: %d개\n\n", len(merged.Rows)))

	if ratios := filterRows(merged, isRatioRow); len(ratios) > 0 {
		b.WriteString("🎯 주요 수익성 지표 비교\n")
		b.WriteString(strings.Repeat("-", 50) + "\n")
		writeRowSection(&b, ratios, companies)
		b.WriteString("\n")
	}

	b.WriteString("💰 주요 절댓값 지표\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	keyItems := []string{
		string(models.ItemRevenue),
		string(models.ItemOperatingIncome),
		string(models.ItemNetIncome),
	}
	var absolutes []map[string]string
	for _, name := range keyItems {
		for _, row := range merged.Rows {
			if row[models.KeyColumn] == name && !isRatioRow(name) {
				absolutes = append(absolutes, row)
			}
		}
	}
	writeRowSection(&b, absolutes, companies)

	b.WriteString("\n💡 이 분석은 수집된 재무제표를 기반으로 자동 생성되었습니다.\n")
	b.WriteString("📊 정확한 분석을 위해 원본 재무제표와 대조하여 확인하시기 바랍니다.")
	return b.String()
}

// isRatioRow identifies ratio-like rows by their name vocabulary.
func isRatioRow(name string) bool {
	return strings.Contains(name, "이익률") || strings.Contains(name, "비율") ||
		strings.Contains(name, "률") || strings.Contains(name, "지수") ||
		strings.Contains(name, "점수") || strings.Contains(name, "성과")
}

func filterRows(merged *models.MergedStatement, keep func(string) bool) []map[string]string {
	var out []map[string]string
	for _, row := range merged.Rows {
		if keep(row[models.KeyColumn]) {
			out = append(out, row)
		}
	}
	return out
}

func writeRowSection(b *strings.Builder, rows []map[string]string, companies []string) {
	for _, row := range rows {
		var values []string
		for _, company := range companies {
			if v := row[company]; v != "" && v != models.Placeholder {
				values = append(values, fmt.Sprintf("%s: %s", company, v))
			}
		}
		if len(values) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("• %s\n", row[models.KeyColumn]))
		b.WriteString(fmt.Sprintf("  %s\n", strings.Join(values, " | ")))
	}
}
