// Package analysis exposes the comparison pipeline over HTTP.
package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/core/dart"
	"peer_analysis/pkg/core/pipeline"
	"peer_analysis/pkg/core/store"
)

// Handler serves analysis runs.
type Handler struct {
	orchestrator *pipeline.Orchestrator
	repo         *store.RunsRepo
	defaultYear  string

	// quarterly trend support, optional
	client    *dart.Client
	companies []config.Company
}

func NewHandler(orchestrator *pipeline.Orchestrator, repo *store.RunsRepo, defaultYear string) *Handler {
	return &Handler{orchestrator: orchestrator, repo: repo, defaultYear: defaultYear}
}

// EnableQuarterly wires the DART client used by the quarterly trend endpoint.
func (h *Handler) EnableQuarterly(client *dart.Client, companies []config.Company) {
	h.client = client
	h.companies = companies
}

type runRequest struct {
	Year string `json:"year"`
}

// HandleRun executes a full pipeline run and returns the result.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Year == "" {
		req.Year = h.defaultYear
	}

	fmt.Printf("[API] 분석 실행 요청: %s년\n", req.Year)
	result, err := h.orchestrator.Run(r.Context(), req.Year)
	if err != nil {
		http.Error(w, fmt.Sprintf("analysis failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleLatest returns the most recent stored run for a year.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.repo == nil {
		http.Error(w, "run storage not configured", http.StatusNotImplemented)
		return
	}

	year := r.URL.Query().Get("year")
	if year == "" {
		year = h.defaultYear
	}

	record, err := h.repo.LoadLatest(r.Context(), year)
	if err != nil {
		http.Error(w, fmt.Sprintf("no run found: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// HandleSources returns the data provenance rows of the latest stored run,
// backing the 데이터 출처 tab.
func (h *Handler) HandleSources(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.repo == nil {
		http.Error(w, "run storage not configured", http.StatusNotImplemented)
		return
	}

	year := r.URL.Query().Get("year")
	if year == "" {
		year = h.defaultYear
	}

	record, err := h.repo.LoadLatest(r.Context(), year)
	if err != nil {
		http.Error(w, fmt.Sprintf("no run found: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record.Sources)
}

// HandleQuarterly collects per-quarter revenue and operating profit for the
// configured companies, backing the trend charts. ?company= narrows to one.
func (h *Handler) HandleQuarterly(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.client == nil {
		http.Error(w, "quarterly source not configured", http.StatusNotImplemented)
		return
	}

	year := r.URL.Query().Get("year")
	if year == "" {
		year = h.defaultYear
	}
	filter := r.URL.Query().Get("company")

	result := map[string][]dart.QuarterMetrics{}
	for _, company := range h.companies {
		if filter != "" && company.Name != filter {
			continue
		}
		corpCode, err := h.client.ResolveCorpCode(r.Context(), company)
		if err != nil {
			fmt.Printf("[API] ⚠️ %s 기업코드 조회 실패: %v\n", company.Name, err)
			continue
		}
		quarters, err := h.client.CollectQuarterly(r.Context(), company.Name, corpCode, year)
		if err != nil {
			fmt.Printf("[API] ⚠️ %s 분기 데이터 없음: %v\n", company.Name, err)
			continue
		}
		result[company.Name] = quarters
	}

	if len(result) == 0 {
		http.Error(w, fmt.Sprintf("no quarterly data for %s", year), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
