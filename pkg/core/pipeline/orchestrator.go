// Package pipeline orchestrates the full analysis run: fetch filings,
// normalize, derive, compute ratios, merge, report, collect news, and
// generate insights.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/core/statement"
	"peer_analysis/pkg/core/store"
	"peer_analysis/pkg/models"
)

// StatementSource fetches and normalizes one company's statement for a year.
// Implementations may hit DART or serve cached rows.
type StatementSource interface {
	Fetch(ctx context.Context, company config.Company, year string) (*models.ItemSet, models.SourceInfo, error)
}

// NewsSource collects scored articles.
type NewsSource interface {
	Collect(ctx context.Context) ([]models.NewsItem, error)
}

// InsightGenerator produces AI commentary for the merged table and news.
type InsightGenerator interface {
	FinancialInsight(ctx context.Context, merged *models.MergedStatement) (string, error)
	NewsInsight(ctx context.Context, items []models.NewsItem) (string, error)
}

// RunStore persists completed runs.
type RunStore interface {
	Save(ctx context.Context, record *store.RunRecord) error
}

// Result holds everything one run produced.
type Result struct {
	Year             string                    `json:"year"`
	Statements       []models.CompanyStatement `json:"statements"`
	Merged           *models.MergedStatement   `json:"merged"`
	Report           string                    `json:"report"`
	Sources          []models.SourceInfo       `json:"sources"`
	News             []models.NewsItem         `json:"news,omitempty"`
	FinancialInsight string                    `json:"financial_insight,omitempty"`
	NewsInsight      string                    `json:"news_insight,omitempty"`
}

// Orchestrator wires the stages together. News, insights, and storage are
// optional; a nil dependency skips that stage.
type Orchestrator struct {
	cfg      config.Config
	source   StatementSource
	news     NewsSource
	insights InsightGenerator
	repo     RunStore
}

func NewOrchestrator(cfg config.Config, source StatementSource) *Orchestrator {
	return &Orchestrator{cfg: cfg, source: source}
}

// SetNewsSource enables the news collection stage.
func (o *Orchestrator) SetNewsSource(news NewsSource) {
	o.news = news
}

// SetInsightGenerator enables the AI commentary stage.
func (o *Orchestrator) SetInsightGenerator(gen InsightGenerator) {
	o.insights = gen
}

// SetRunStore enables persistence of completed runs.
func (o *Orchestrator) SetRunStore(repo RunStore) {
	o.repo = repo
}

// Run executes the full pipeline for one business year. A company whose
// filing cannot be fetched is skipped with a warning; the run fails only
// when no company yields data.
func (o *Orchestrator) Run(ctx context.Context, year string) (*Result, error) {
	if year == "" {
		year = o.cfg.Year
	}
	fmt.Printf("[Pipeline] 🚀 %s년 경쟁사 분석 시작 (%d개사)\n", year, len(o.cfg.Companies))
	start := time.Now()

	result := &Result{Year: year}

	// 1. Fetch, normalize, derive, ratio, assemble per company
	for _, company := range o.cfg.Companies {
		set, source, err := o.source.Fetch(ctx, company, year)
		if err != nil {
			fmt.Printf("[Pipeline] ⚠️ %s 수집 실패: %v\n", company.Name, err)
			continue
		}

		// Filing rows carry 판매비/관리비 as reported; the 6:4 split
		// estimate belongs to the document upload path only.
		statement.Derive(set, statement.DeriveOptions{SplitSGA: false})
		ratios := statement.ComputeRatios(set, statement.RatioOptions{Enhanced: true})
		stmt := statement.Assemble(company.Name, set, ratios, statement.AssembleOptions{LossIndicator: true})

		result.Statements = append(result.Statements, stmt)
		result.Sources = append(result.Sources, source)
		fmt.Printf("[Pipeline] ✅ %s 정규화 완료 (%d개 행)\n", company.Name, len(stmt.Rows))
	}

	if len(result.Statements) == 0 {
		return nil, fmt.Errorf("no company data collected for %s", year)
	}

	// 2. Merge and report
	result.Merged = statement.Merge(result.Statements, o.cfg.AnchorSubstring)
	result.Report = statement.CompareReport(result.Merged)

	// 3. News collection
	if o.news != nil {
		items, err := o.news.Collect(ctx)
		if err != nil {
			fmt.Printf("[Pipeline] ⚠️ 뉴스 수집 실패: %v\n", err)
		} else {
			result.News = items
		}
	}

	// 4. AI insights
	if o.insights != nil {
		text, err := o.insights.FinancialInsight(ctx, result.Merged)
		if err != nil {
			fmt.Printf("[Pipeline] ⚠️ 재무 인사이트 생성 실패: %v\n", err)
		} else {
			result.FinancialInsight = text
		}

		if len(result.News) > 0 {
			text, err := o.insights.NewsInsight(ctx, result.News)
			if err != nil {
				fmt.Printf("[Pipeline] ⚠️ 뉴스 인사이트 생성 실패: %v\n", err)
			} else {
				result.NewsInsight = text
			}
		}
	}

	// 5. Storage
	if o.repo != nil {
		record := &store.RunRecord{
			Year:             year,
			Merged:           result.Merged,
			Report:           result.Report,
			FinancialInsight: result.FinancialInsight,
			NewsInsight:      result.NewsInsight,
			Sources:          result.Sources,
			News:             result.News,
		}
		if err := o.repo.Save(ctx, record); err != nil {
			fmt.Printf("[Pipeline] ⚠️ 저장 실패: %v\n", err)
		}
	}

	fmt.Printf("[Pipeline] 🏁 분석 완료 (%v)\n", time.Since(start))
	return result, nil
}
