package dart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"peer_analysis/pkg/models"
)

// reportTypeNames maps report codes to the Korean report titles shown in
// the sources table.
var reportTypeNames = map[string]string{
	ReportAnnual: "사업보고서",
	ReportQ3:     "3분기보고서",
	ReportHalf:   "반기보고서",
	ReportQ1:     "1분기보고서",
}

// reportKeywords is used to pick the matching filing from the disclosure
// list. Interim filings all carry 분기보고서 in the title, so the quarter
// label disambiguates.
var reportKeywords = map[string][]string{
	ReportAnnual: {"사업보고서"},
	ReportQ3:     {"분기보고서", "3분기"},
	ReportHalf:   {"반기보고서"},
	ReportQ1:     {"분기보고서", "1분기"},
}

type filingListResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	List    []struct {
		ReportName string `json:"report_nm"`
		ReceiptNo  string `json:"rcept_no"`
	} `json:"list"`
}

// LookupReceiptNo finds the disclosure receipt number for the filing that a
// statement came from. When the disclosure list gives nothing usable a
// synthetic identifier is returned so the source row still renders.
func (c *Client) LookupReceiptNo(ctx context.Context, corpCode, year, reportCode string) string {
	fallback := fmt.Sprintf("%s_%s_%s", corpCode, year, reportCode)

	params := url.Values{
		"crtfc_key":  {c.apiKey},
		"corp_code":  {corpCode},
		"bgn_de":     {year + "0101"},
		"end_de":     {year + "1231"},
		"pblntf_ty":  {"A"},
		"corp_cls":   {"Y"},
		"page_no":    {"1"},
		"page_count": {"100"},
	}

	body, err := c.get(ctx, FilingsPath, params)
	if err != nil {
		return fallback
	}

	var resp filingListResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Status != statusOK {
		return fallback
	}

	keywords := reportKeywords[reportCode]
	for _, item := range resp.List {
		for _, keyword := range keywords {
			if strings.Contains(item.ReportName, keyword) {
				return item.ReceiptNo
			}
		}
	}
	return fallback
}

// BuildSourceInfo assembles the provenance record for one fetched statement,
// including the DART viewer link.
func (c *Client) BuildSourceInfo(ctx context.Context, company, corpCode, year, reportCode string) models.SourceInfo {
	receiptNo := c.LookupReceiptNo(ctx, corpCode, year, reportCode)

	reportType, ok := reportTypeNames[reportCode]
	if !ok {
		reportType = "재무제표"
	}

	return models.SourceInfo{
		Company:    company,
		CorpCode:   corpCode,
		ReportCode: reportCode,
		ReportType: reportType,
		Year:       year,
		ReceiptNo:  receiptNo,
		ViewerURL:  fmt.Sprintf("https://dart.fss.or.kr/dsaf001/main.do?rcpNo=%s", receiptNo),
	}
}
