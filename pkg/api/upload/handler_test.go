package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"peer_analysis/pkg/core/statement"
)

const validDoc = `<xbrl>
  <EntityRegistrantName>SK에너지</EntityRegistrantName>
  <Revenue>45,000,000,000,000</Revenue>
  <OperatingIncome>1,500,000,000,000</OperatingIncome>
</xbrl>`

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{
		"sk.xbrl":     validDoc,
		"broken.xml":  "not xml at all",
	})

	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewHandler("SK").HandleUpload(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(resp.Statements))
	}
	if resp.Statements[0].Company != "SK에너지" {
		t.Errorf("company = %s", resp.Statements[0].Company)
	}
	if len(resp.Skipped) != 1 || !strings.Contains(resp.Skipped[0], "broken.xml") {
		t.Errorf("skipped = %v, want broken.xml reported", resp.Skipped)
	}
	if resp.Report == "" {
		t.Error("expected a comparison report")
	}
}

const lossDoc = `<xbrl>
  <EntityRegistrantName>SK에너지</EntityRegistrantName>
  <Revenue>45,000,000,000,000</Revenue>
  <OperatingIncome>(1,500,000,000,000)</OperatingIncome>
  <Expense label="판관비">100,000,000,000</Expense>
</xbrl>`

func TestHandleUploadDocumentVariants(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{"sk.xbrl": lossDoc})

	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewHandler("SK").HandleUpload(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(resp.Statements))
	}

	// The document producer splits combined 판관비 6:4 into estimated
	// components, renders losses as plain negatives, and stays on the
	// basic ratio set.
	var sawSplit bool
	for _, row := range resp.Statements[0].Rows {
		switch row.Name {
		case "판매비":
			if row.RawValue != 6e10 || !row.Estimated {
				t.Errorf("판매비 = %v (estimated=%v), want estimated 6e10", row.RawValue, row.Estimated)
			}
			sawSplit = true
		case "영업이익":
			if strings.Contains(row.Display, statement.LossSuffix) {
				t.Errorf("document path rendered loss suffix: %s", row.Display)
			}
			if !strings.HasPrefix(row.Display, "▼") {
				t.Errorf("negative operating income = %s, want plain negative form", row.Display)
			}
		case statement.RatioCostEfficiency, statement.RatioCompositeScore, statement.RatioOpIncomePerTrn:
			t.Errorf("document path produced enhanced ratio row %s", row.Name)
		}
	}
	if !sawSplit {
		t.Error("combined 판관비 was not split into components")
	}
}

func TestHandleUploadNoUsableFiles(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{"junk.xml": "no numbers here"})

	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewHandler("SK").HandleUpload(rec, req)

	if rec.Code != 422 {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestHandleUploadRejectsGet(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/upload", nil)
	rec := httptest.NewRecorder()

	NewHandler("SK").HandleUpload(rec, req)
	if rec.Code != 405 {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
