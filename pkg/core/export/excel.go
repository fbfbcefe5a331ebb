// Package export renders analysis results into downloadable report files.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"peer_analysis/pkg/core/utils"
	"peer_analysis/pkg/models"
)

const (
	sheetFinancial = "재무분석"
	sheetNews      = "뉴스분석"
	sheetInsight   = "AI인사이트"
)

// BuildExcel writes the comparison table, collected news, and AI commentary
// into one workbook. Raw-value columns stay out of the financial sheet.
func BuildExcel(merged *models.MergedStatement, news []models.NewsItem, insight string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	wroteAny := false

	if merged != nil && len(merged.Rows) > 0 {
		if err := writeFinancialSheet(f, merged); err != nil {
			return nil, err
		}
		wroteAny = true
	}
	if len(news) > 0 {
		if err := writeNewsSheet(f, news); err != nil {
			return nil, err
		}
		wroteAny = true
	}
	if insight != "" {
		if err := writeInsightSheet(f, insight); err != nil {
			return nil, err
		}
		wroteAny = true
	}
	if !wroteAny {
		return nil, fmt.Errorf("nothing to export")
	}

	// The workbook comes with a default sheet; drop it once real sheets exist.
	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFinancialSheet(f *excelize.File, merged *models.MergedStatement) error {
	if _, err := f.NewSheet(sheetFinancial); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetFinancial, err)
	}

	var cols []string
	for _, col := range merged.Columns {
		if strings.HasSuffix(col, models.RawValueSuffix) {
			continue
		}
		cols = append(cols, col)
	}

	if err := writeRow(f, sheetFinancial, 1, cols); err != nil {
		return err
	}
	for i, row := range merged.Rows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = row[col]
		}
		if err := writeRow(f, sheetFinancial, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeNewsSheet(f *excelize.File, news []models.NewsItem) error {
	if _, err := f.NewSheet(sheetNews); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetNews, err)
	}

	header := []string{"제목", "출처", "날짜", "회사", "카테고리", "키워드", "중요도", "SK관련도", "URL"}
	if err := writeRow(f, sheetNews, 1, header); err != nil {
		return err
	}
	for i, item := range news {
		cells := []string{
			item.Title,
			item.Source,
			item.PublishedAt.Format("2006-01-02 15:04"),
			item.Company,
			item.Category,
			strings.Join(item.Keywords, ", "),
			fmt.Sprintf("%d", item.Impact),
			fmt.Sprintf("%d", item.Relevance),
			item.URL,
		}
		if err := writeRow(f, sheetNews, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeInsightSheet(f *excelize.File, insight string) error {
	if _, err := f.NewSheet(sheetInsight); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetInsight, err)
	}
	if err := writeRow(f, sheetInsight, 1, []string{"구분", "내용"}); err != nil {
		return err
	}
	return writeRow(f, sheetInsight, 2, []string{"AI 인사이트", utils.CleanMarkdown(insight)})
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	for i, cell := range cells {
		ref, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, ref, cell); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, ref, err)
		}
	}
	return nil
}
