package insight

import (
	"fmt"
	"strings"

	"peer_analysis/pkg/models"
)

// financialPromptTemplate frames the merged comparison table for a strategy
// analyst persona. The section structure is what the dashboard and PDF
// renderer expect back.
const financialPromptTemplate = `다음은 SK에너지 중심의 재무데이터입니다:

%s

당신은 SK에너지 내부 전략기획팀 소속으로,
경쟁사 대비 SK에너지의 **재무 및 사업 경쟁력**을 분석하여
향후 **사업 전략 수립 및 개선 방향**을 도출하는 것이 목표입니다.

다음 항목에 맞춰 **전략적 인사이트**를 도출해주세요:

## 1. 📊 SK에너지 현재 재무 상황 분석
- 최근 수익성 변화와 원인 진단
- 경쟁사(GS칼텍스 등) 대비 수익구조의 강점/약점
- 영업이익률, 순이익률, 원가율, 판관비율 등 주요 지표 비교

## 2. 🔍 경쟁사 대비 사업 경쟁력 분석
- 경쟁사 대비 원가 효율성, 수익성, 비용 구조 차이
- SK에너지가 개선하거나 강화할 수 있는 포인트 도출

## 3. 🧩 전략적 시사점 및 내부 개선 방향
- 단기적으로 재무 개선을 위해 우선 검토해야 할 영역
- 중장기적으로 경쟁력을 높이기 위한 조직 차원의 전략 제언

## 4. 📌 리스크 요인 및 감시 항목
- 현재 가장 큰 재무적/사업적 리스크
- 외부환경(유가, 정책 등)에 따른 리스크 민감도
- 내부적으로 반드시 모니터링해야 할 주요 지표

## 5. 🚀 향후 6개월 내 실질적 액션 플랜 제안
- 실행 가능한 내부 조치 3~5가지 제안
- KPI 기준 재설정 또는 목표 재정의 필요 여부

분석은 전문 컨설턴트 수준으로 해주시되, 실무자가 바로 보고 실행방안을 만들 수 있을 정도로 구체적이고 현실적인 조언을 포함해주세요.`

const newsPromptTemplate = `SK에너지 관련 뉴스 분석:

주요 키워드: %s
뉴스 샘플: %s

**동적 시장 인사이트**를 제공해주세요:

## 1. 📊 현재 시장 상황 진단
- 정유업계 전반적 동향
- SK에너지 관련 이슈 현황

## 2. 🎯 SK에너지에 미치는 영향
- 긍정적 요인
- 부정적 요인

## 3. 🔍 주요 기회요인과 위험요인
- 단기 기회 요인
- 주요 리스크 포인트

## 4. 🏢 경쟁사 대비 포지션
- 시장 내 상대적 위치
- 경쟁 우위/열위 요소

## 5. 🔮 향후 3-6개월 전망
- 예상 시나리오
- 주요 변수들

## 6. 💼 투자자/경영진을 위한 전략 제안
- 실행 가능한 대응 방안
- 모니터링해야 할 지표

실무진이 활용할 수 있는 구체적인 인사이트를 제공해주세요.`

// BuildFinancialPrompt renders the merged table as tab-separated text inside
// the analyst prompt. Raw-value columns are omitted, the model only needs
// the display figures.
func BuildFinancialPrompt(merged *models.MergedStatement) string {
	return fmt.Sprintf(financialPromptTemplate, renderTable(merged))
}

// BuildNewsPrompt summarizes collected articles into the market prompt:
// up to ten keywords and three sample headlines.
func BuildNewsPrompt(items []models.NewsItem) string {
	keywordSet := make(map[string]bool)
	var keywords []string
	for _, item := range items {
		for _, kw := range item.Keywords {
			if !keywordSet[kw] && len(keywords) < 10 {
				keywordSet[kw] = true
				keywords = append(keywords, kw)
			}
		}
	}
	keywordsText := "키워드 없음"
	if len(keywords) > 0 {
		keywordsText = strings.Join(keywords, ", ")
	}

	samplesText := "뉴스 없음"
	if len(items) > 0 {
		var samples []string
		for i, item := range items {
			if i == 3 {
				break
			}
			samples = append(samples, fmt.Sprintf("[%s] %s", item.Source, item.Title))
		}
		samplesText = strings.Join(samples, " / ")
	}

	return fmt.Sprintf(newsPromptTemplate, keywordsText, samplesText)
}

func renderTable(merged *models.MergedStatement) string {
	if merged == nil || len(merged.Rows) == 0 {
		return "(데이터 없음)"
	}

	var cols []string
	for _, col := range merged.Columns {
		if strings.HasSuffix(col, models.RawValueSuffix) {
			continue
		}
		cols = append(cols, col)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(cols, "\t"))
	sb.WriteString("\n")
	for _, row := range merged.Rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = row[col]
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
