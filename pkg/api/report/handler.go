// Package report serves downloadable Excel and PDF reports built from
// stored analysis runs.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"

	"peer_analysis/pkg/core/export"
	"peer_analysis/pkg/core/store"
)

// Handler builds report files from the latest stored run.
type Handler struct {
	repo        *store.RunsRepo
	defaultYear string
}

func NewHandler(repo *store.RunsRepo, defaultYear string) *Handler {
	return &Handler{repo: repo, defaultYear: defaultYear}
}

type downloadRequest struct {
	Year   string `json:"year"`
	Format string `json:"format"` // "excel" or "pdf"
}

// HandleDownload streams the requested report format for a year's latest run.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
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

	if h.repo == nil {
		http.Error(w, "run storage not configured", http.StatusNotImplemented)
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Year == "" {
		req.Year = h.defaultYear
	}

	record, err := h.repo.LoadLatest(r.Context(), req.Year)
	if err != nil {
		http.Error(w, fmt.Sprintf("no run found for %s: %v", req.Year, err), http.StatusNotFound)
		return
	}

	insight := record.FinancialInsight
	if record.NewsInsight != "" {
		if insight != "" {
			insight += "\n\n"
		}
		insight += record.NewsInsight
	}

	switch req.Format {
	case "pdf":
		data, err := export.BuildPDF(record.Merged, record.News, insight)
		if err != nil {
			http.Error(w, fmt.Sprintf("PDF generation failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="SK_Energy_Analysis_Report.pdf"`)
		w.Write(data)

	case "", "excel":
		data, err := export.BuildExcel(record.Merged, record.News, insight)
		if err != nil {
			http.Error(w, fmt.Sprintf("Excel generation failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="SK_Energy_Analysis_Report.xlsx"`)
		w.Write(data)

	default:
		http.Error(w, fmt.Sprintf("unknown format %q", req.Format), http.StatusBadRequest)
	}
}
