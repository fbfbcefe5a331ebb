// Package upload handles manual XBRL/XML statement uploads, producing the
// same comparison output as the automatic pipeline.
package upload

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"peer_analysis/pkg/core/statement"
	"peer_analysis/pkg/core/xbrl"
	"peer_analysis/pkg/models"
)

// Handler turns uploaded documents into a merged comparison.
type Handler struct {
	scanner         *xbrl.Scanner
	anchorSubstring string
}

func NewHandler(anchorSubstring string) *Handler {
	return &Handler{scanner: xbrl.NewScanner(), anchorSubstring: anchorSubstring}
}

type uploadResponse struct {
	Statements []models.CompanyStatement `json:"statements"`
	Merged     *models.MergedStatement   `json:"merged"`
	Report     string                    `json:"report"`
	Skipped    []string                  `json:"skipped,omitempty"`
}

// HandleUpload accepts a multipart form with one or more files under the
// "files" field. Files that cannot be parsed are reported as skipped, not
// errors, so one bad upload does not sink the batch.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(xbrl.MaxFileSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	var resp uploadResponse
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}
		content, err := io.ReadAll(io.LimitReader(f, xbrl.MaxFileSize+1))
		f.Close()
		if err != nil {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}

		company, set, err := h.scanner.Scan(content, header.Filename)
		if err != nil {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s: %v", header.Filename, err))
			continue
		}

		// Document uploads get the 6:4 SG&A split; the enhanced ratio set
		// and the loss suffix stay with the filing API producer.
		statement.Derive(set, statement.DeriveOptions{SplitSGA: true})
		ratios := statement.ComputeRatios(set, statement.RatioOptions{Enhanced: false})
		stmt := statement.Assemble(company, set, ratios, statement.AssembleOptions{LossIndicator: false})
		resp.Statements = append(resp.Statements, stmt)
	}

	if len(resp.Statements) == 0 {
		http.Error(w, "no usable statements in upload", http.StatusUnprocessableEntity)
		return
	}

	resp.Merged = statement.Merge(resp.Statements, h.anchorSubstring)
	resp.Report = statement.CompareReport(resp.Merged)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
