package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"peer_analysis/pkg/core/utils"
	"peer_analysis/pkg/models"
)

// koreanFontPaths is probed in order for a UTF-8 capable font. Without one
// the PDF falls back to Arial and Korean text will not render, matching
// fpdf's core-font limitation.
var koreanFontPaths = []string{
	"/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
	"/usr/share/fonts/nanum/NanumGothic.ttf",
	"C:/Windows/Fonts/malgun.ttf",
	"/System/Library/Fonts/AppleSDGothicNeo.ttc",
}

const reportTitle = "SK에너지 경쟁사 분석 보고서"

// BuildPDF renders the report: title and meta, the comparison table, the top
// five news headlines, and the AI commentary as classified text blocks.
func BuildPDF(merged *models.MergedStatement, news []models.NewsItem, insight string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	font := registerKoreanFont(pdf)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("- %d -", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(font, "B", 20)
	pdf.MultiCell(0, 12, reportTitle, "", "L", false)
	pdf.SetFont(font, "", 10)
	pdf.MultiCell(0, 7, fmt.Sprintf("보고일자: %s    보고대상: SK에너지 전략기획팀", time.Now().Format("2006년 01월 02일")), "", "L", false)
	pdf.Ln(5)

	section := 1
	if merged != nil && len(merged.Rows) > 0 {
		writeHeading(pdf, font, fmt.Sprintf("%d. 재무분석 결과", section))
		writeTable(pdf, font, merged)
		pdf.Ln(6)
		section++
	}

	if len(news) > 0 {
		writeHeading(pdf, font, fmt.Sprintf("%d. 최신 뉴스 하이라이트", section))
		pdf.SetFont(font, "", 11)
		for i, item := range news {
			if i == 5 {
				break
			}
			pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, item.Title), "", "L", false)
		}
		pdf.Ln(4)
		section++
	}

	if insight != "" {
		pdf.AddPage()
		writeHeading(pdf, font, fmt.Sprintf("%d. AI 인사이트", section))
		for _, block := range utils.PlainBlocks(insight) {
			if block.Kind == utils.BlockTitle {
				pdf.SetFont(font, "B", 12)
			} else {
				pdf.SetFont(font, "", 11)
			}
			pdf.MultiCell(0, 7, block.Text, "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeading(pdf *fpdf.Fpdf, font, text string) {
	pdf.SetFont(font, "B", 14)
	pdf.SetTextColor(227, 30, 36)
	pdf.MultiCell(0, 9, text, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
}

// writeTable lays the comparison table out with an even column split, raw
// value columns excluded.
func writeTable(pdf *fpdf.Fpdf, font string, merged *models.MergedStatement) {
	var cols []string
	for _, col := range merged.Columns {
		if strings.HasSuffix(col, models.RawValueSuffix) {
			continue
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(cols))

	pdf.SetFont(font, "B", 8)
	pdf.SetFillColor(242, 242, 242)
	for _, col := range cols {
		pdf.CellFormat(colWidth, 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 8)
	for _, row := range merged.Rows {
		for _, col := range cols {
			pdf.CellFormat(colWidth, 7, row[col], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// registerKoreanFont returns the font family to use, registering the first
// available Korean TTF.
func registerKoreanFont(pdf *fpdf.Fpdf) string {
	for _, path := range koreanFontPaths {
		if !strings.HasSuffix(strings.ToLower(path), ".ttf") {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		pdf.AddUTF8Font("korean", "", path)
		pdf.AddUTF8Font("korean", "B", path)
		if pdf.Err() {
			pdf.ClearError()
			continue
		}
		return "korean"
	}
	return "Arial"
}
