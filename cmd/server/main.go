package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"peer_analysis/pkg/api/analysis"
	apinews "peer_analysis/pkg/api/news"
	"peer_analysis/pkg/api/report"
	"peer_analysis/pkg/api/upload"
	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/core/dart"
	"peer_analysis/pkg/core/insight"
	"peer_analysis/pkg/core/llm"
	corenews "peer_analysis/pkg/core/news"
	"peer_analysis/pkg/core/pipeline"
	"peer_analysis/pkg/core/store"
)

const (
	configPath   = "config/peers.yaml"
	overridePath = "config/overrides.hjson"
)

func main() {
	// Load environment variables
	godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("[CONFIG] %v\n", err)
		fmt.Println("  Falling back to built-in peer list")
		cfg = config.Default()
	}
	if _, statErr := os.Stat(overridePath); statErr == nil {
		patched, oerr := config.LoadOverrides(cfg, overridePath)
		if oerr != nil {
			fmt.Printf("[CONFIG] ⚠️ 오버라이드 무시: %v\n", oerr)
		} else {
			cfg = patched
		}
	}

	apiKey := os.Getenv("DART_API_KEY")
	if apiKey == "" {
		fmt.Println("[WARNING] DART_API_KEY is not set, statement collection will fail")
	}
	dartClient := dart.NewClient(apiKey)

	// Storage is optional: without DATABASE_URL the server still runs, it
	// just loses run history and the file cache takes over.
	var runsRepo *store.RunsRepo
	var newsRepo *store.NewsRepo
	var cache *store.StatementCache
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[DB] ⚠️ 저장소 없이 실행: %v\n", err)
		cache = store.NewStatementCache(nil, "", 0)
	} else {
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			fmt.Printf("[DB] ⚠️ 스키마 초기화 실패: %v\n", err)
		}
		cache = store.NewStatementCache(store.GetPool(), "", 0)
		runsRepo = store.NewRunsRepo()
		newsRepo = store.NewNewsRepo(store.GetPool())
	}

	collector := corenews.NewCollector(cfg.News)

	orchestrator := pipeline.NewOrchestrator(cfg, pipeline.NewDartSource(dartClient, cache, cfg.AmountScale))
	orchestrator.SetNewsSource(collector)
	if provider, err := llm.NewProvider(cfg.LLM.Provider, cfg.LLM.Model); err != nil {
		fmt.Printf("[LLM] ⚠️ 인사이트 비활성화: %v\n", err)
	} else {
		orchestrator.SetInsightGenerator(insight.NewProviderGenerator(provider))
	}
	if runsRepo != nil {
		orchestrator.SetRunStore(runsRepo)
	}

	analysisHandler := analysis.NewHandler(orchestrator, runsRepo, cfg.Year)
	analysisHandler.EnableQuarterly(dartClient, cfg.Companies)
	http.HandleFunc("/api/analysis/run", analysisHandler.HandleRun)
	http.HandleFunc("/api/analysis/latest", analysisHandler.HandleLatest)
	http.HandleFunc("/api/analysis/quarterly", analysisHandler.HandleQuarterly)
	http.HandleFunc("/api/sources", analysisHandler.HandleSources)

	newsHandler := apinews.NewHandler(collector, newsRepo)
	http.HandleFunc("/api/news", newsHandler.HandleCollect)
	http.HandleFunc("/api/news/recent", newsHandler.HandleRecent)

	reportHandler := report.NewHandler(runsRepo, cfg.Year)
	http.HandleFunc("/api/report/download", reportHandler.HandleDownload)

	uploadHandler := upload.NewHandler(cfg.AnchorSubstring)
	http.HandleFunc("/api/upload", uploadHandler.HandleUpload)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analysis/run")
	fmt.Println("  - GET  /api/analysis/latest")
	fmt.Println("  - GET  /api/analysis/quarterly")
	fmt.Println("  - GET  /api/sources")
	fmt.Println("  - GET  /api/news")
	fmt.Println("  - GET  /api/news/recent")
	fmt.Println("  - POST /api/report/download")
	fmt.Println("  - POST /api/upload")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
