package insight

import (
	"strings"
	"testing"

	"peer_analysis/pkg/models"
)

func TestBuildFinancialPromptRendersTable(t *testing.T) {
	merged := &models.MergedStatement{
		Columns: []string{models.KeyColumn, "SK에너지", "GS칼텍스", "SK에너지" + models.RawValueSuffix},
		Rows: []map[string]string{
			{
				models.KeyColumn:                     "매출액",
				"SK에너지":                              "45.0조원",
				"GS칼텍스":                              "40.0조원",
				"SK에너지" + models.RawValueSuffix: "45000000000000",
			},
		},
	}

	prompt := BuildFinancialPrompt(merged)
	if !strings.Contains(prompt, "매출액\t45.0조원\t40.0조원") {
		t.Errorf("prompt missing rendered row:\n%s", prompt)
	}
	// Raw-value columns stay out of the prompt.
	if strings.Contains(prompt, "45000000000000") {
		t.Error("raw values should not be rendered")
	}
	if !strings.Contains(prompt, "전략적 인사이트") {
		t.Error("prompt missing analysis instructions")
	}
}

func TestBuildFinancialPromptEmptyTable(t *testing.T) {
	prompt := BuildFinancialPrompt(nil)
	if !strings.Contains(prompt, "(데이터 없음)") {
		t.Error("expected empty-table placeholder")
	}
}

func TestBuildNewsPrompt(t *testing.T) {
	items := []models.NewsItem{
		{Title: "SK에너지 실적 개선", Source: "연합뉴스", Keywords: []string{"SK", "실적"}},
		{Title: "유가 변동성 확대", Source: "한국경제", Keywords: []string{"유가"}},
		{Title: "정제마진 반등", Source: "매일경제", Keywords: []string{"정제마진"}},
		{Title: "네번째 기사", Source: "이데일리", Keywords: []string{"수소"}},
	}

	prompt := BuildNewsPrompt(items)
	if !strings.Contains(prompt, "SK, 실적, 유가, 정제마진, 수소") {
		t.Errorf("keywords not aggregated:\n%s", prompt)
	}
	// Only three sample headlines.
	if !strings.Contains(prompt, "[연합뉴스] SK에너지 실적 개선") {
		t.Error("first sample missing")
	}
	if strings.Contains(prompt, "네번째 기사") {
		t.Error("samples should cap at three")
	}
}

func TestBuildNewsPromptEmpty(t *testing.T) {
	prompt := BuildNewsPrompt(nil)
	if !strings.Contains(prompt, "키워드 없음") || !strings.Contains(prompt, "뉴스 없음") {
		t.Error("expected empty placeholders")
	}
}
