// Package news exposes the RSS collector over HTTP.
package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	corenews "peer_analysis/pkg/core/news"
	"peer_analysis/pkg/core/store"
)

// Handler serves collected news, optionally persisting each collection.
type Handler struct {
	collector *corenews.Collector
	repo      *store.NewsRepo // nil disables persistence
}

func NewHandler(collector *corenews.Collector, repo *store.NewsRepo) *Handler {
	return &Handler{collector: collector, repo: repo}
}

// HandleCollect fetches the feeds live and returns the scored items.
func (h *Handler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	items, err := h.collector.Collect(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("news collection failed: %v", err), http.StatusBadGateway)
		return
	}

	if h.repo != nil {
		if err := h.repo.SaveItems(r.Context(), items); err != nil {
			fmt.Printf("[API] ⚠️ 뉴스 저장 실패: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// HandleRecent returns persisted articles without hitting the feeds.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.repo == nil {
		http.Error(w, "news storage not configured", http.StatusNotImplemented)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load news: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
