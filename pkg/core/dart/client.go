// Package dart provides DART (Korea's corporate disclosure system) API
// integration for fetching financial statements.
// API Documentation: https://opendart.fss.or.kr/guide/main.do
package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DART OpenAPI endpoints
	StatementPath = "/api/fnlttSinglAcntAll.json"
	CorpCodePath  = "/api/corpCode.xml"
	FilingsPath   = "/api/list.json"

	DefaultBaseURL = "https://opendart.fss.or.kr"

	// Report codes for the quarterly disclosure cycle
	ReportAnnual = "11011"
	ReportQ3     = "11014"
	ReportHalf   = "11012"
	ReportQ1     = "11013"

	// Consolidated financial statements
	StatementConsolidated = "CFS"

	statusOK = "000"
)

// AccountRow is one line of a fnlttSinglAcntAll response.
type AccountRow struct {
	AccountName   string `json:"account_nm"`
	AccountID     string `json:"account_id"`
	StatementDiv  string `json:"sj_div"`
	StatementName string `json:"sj_nm"`
	CurrentAmount string `json:"thstrm_amount"`
	PriorAmount   string `json:"frmtrm_amount"`
	Currency      string `json:"currency"`
	ReportCode    string `json:"reprt_code"`
}

type statementResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	List    []AccountRow `json:"list"`
}

// Client handles DART OpenAPI requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	corpIndex []corpEntry // lazily loaded from the corp code archive
}

// NewClient creates a new DART API client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchStatement retrieves all consolidated statement rows for one company,
// year and report code. An empty result is returned as an error so callers
// can fall back to another report code.
func (c *Client) FetchStatement(ctx context.Context, corpCode, year, reportCode string) ([]AccountRow, error) {
	params := url.Values{
		"crtfc_key":  {c.apiKey},
		"corp_code":  {corpCode},
		"bsns_year":  {year},
		"reprt_code": {reportCode},
		"fs_div":     {StatementConsolidated},
	}

	body, err := c.get(ctx, StatementPath, params)
	if err != nil {
		return nil, err
	}

	var resp statementResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse statement response: %w", err)
	}
	if resp.Status != statusOK || len(resp.List) == 0 {
		return nil, fmt.Errorf("no statement data for corp %s year %s report %s (status %s: %s)",
			corpCode, year, reportCode, resp.Status, resp.Message)
	}

	for i := range resp.List {
		resp.List[i].ReportCode = reportCode
	}
	return resp.List, nil
}

// FetchStatementAuto tries the annual report first and falls back to interim
// reports, returning the rows together with the report code that produced them.
func (c *Client) FetchStatementAuto(ctx context.Context, corpCode, year string) ([]AccountRow, string, error) {
	var lastErr error
	for _, reportCode := range []string{ReportAnnual, ReportQ3, ReportHalf} {
		rows, err := c.FetchStatement(ctx, corpCode, year, reportCode)
		if err == nil {
			return rows, reportCode, nil
		}
		lastErr = err
	}
	return nil, "", fmt.Errorf("no report available for corp %s year %s: %w", corpCode, year, lastErr)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DART request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DART returned status %d for %s", resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}
