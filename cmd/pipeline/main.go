package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/core/dart"
	"peer_analysis/pkg/core/export"
	"peer_analysis/pkg/core/insight"
	"peer_analysis/pkg/core/llm"
	"peer_analysis/pkg/core/news"
	"peer_analysis/pkg/core/pipeline"
	"peer_analysis/pkg/core/store"
)

// Usage: pipeline [year]
//
// Runs the full peer comparison for one business year and writes the
// Excel and PDF reports under ./reports.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	apiKey := os.Getenv("DART_API_KEY")
	if apiKey == "" {
		log.Fatal("Error: DART_API_KEY is not set.")
	}

	cfg, err := config.Load("config/peers.yaml")
	if err != nil {
		fmt.Printf("[CONFIG] %v\n", err)
		fmt.Println("  Falling back to built-in peer list")
		cfg = config.Default()
	}

	year := cfg.Year
	if len(os.Args) > 1 {
		year = os.Args[1]
	}

	fmt.Println("🚀 경쟁사 분석 파이프라인 시작...")

	ctx := context.Background()
	cache := store.NewStatementCache(nil, "", 0)
	orchestrator := pipeline.NewOrchestrator(cfg, pipeline.NewDartSource(dart.NewClient(apiKey), cache, cfg.AmountScale))
	orchestrator.SetNewsSource(news.NewCollector(cfg.News))
	if provider, perr := llm.NewProvider(cfg.LLM.Provider, cfg.LLM.Model); perr != nil {
		fmt.Printf("[LLM] ⚠️ 인사이트 비활성화: %v\n", perr)
	} else {
		orchestrator.SetInsightGenerator(insight.NewProviderGenerator(provider))
	}

	result, err := orchestrator.Run(ctx, year)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	fmt.Println(result.Report)
	if result.FinancialInsight != "" {
		fmt.Println("\n=== AI 재무 인사이트 ===")
		fmt.Println(result.FinancialInsight)
	}
	if result.NewsInsight != "" {
		fmt.Println("\n=== AI 뉴스 인사이트 ===")
		fmt.Println(result.NewsInsight)
	}

	combined := result.FinancialInsight
	if result.NewsInsight != "" {
		if combined != "" {
			combined += "\n\n"
		}
		combined += result.NewsInsight
	}

	outDir := "reports"
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Cannot create output dir: %v", err)
	}

	if data, xerr := export.BuildExcel(result.Merged, result.News, combined); xerr != nil {
		fmt.Printf("[Export] ⚠️ Excel 생성 실패: %v\n", xerr)
	} else {
		path := filepath.Join(outDir, fmt.Sprintf("SK_Energy_Analysis_%s.xlsx", result.Year))
		if werr := os.WriteFile(path, data, 0644); werr != nil {
			fmt.Printf("[Export] ⚠️ Excel 저장 실패: %v\n", werr)
		} else {
			fmt.Printf("[Export] 📊 %s\n", path)
		}
	}

	if data, perr := export.BuildPDF(result.Merged, result.News, combined); perr != nil {
		fmt.Printf("[Export] ⚠️ PDF 생성 실패: %v\n", perr)
	} else {
		path := filepath.Join(outDir, fmt.Sprintf("SK_Energy_Analysis_%s.pdf", result.Year))
		if werr := os.WriteFile(path, data, 0644); werr != nil {
			fmt.Printf("[Export] ⚠️ PDF 저장 실패: %v\n", werr)
		} else {
			fmt.Printf("[Export] 📄 %s\n", path)
		}
	}

	fmt.Println("\n[Done] Analysis Complete.")
}
