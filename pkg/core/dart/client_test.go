package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"peer_analysis/pkg/core/config"
	"peer_analysis/pkg/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key")
	client.baseURL = server.URL
	return client, server
}

func statementJSON(rows string) string {
	return fmt.Sprintf(`{"status":"000","message":"정상","list":[%s]}`, rows)
}

func TestFetchStatementParsesRows(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("reprt_code"); got != ReportAnnual {
			t.Errorf("reprt_code = %s, want %s", got, ReportAnnual)
		}
		if got := r.URL.Query().Get("fs_div"); got != StatementConsolidated {
			t.Errorf("fs_div = %s, want CFS", got)
		}
		fmt.Fprint(w, statementJSON(`{"account_nm":"매출액","thstrm_amount":"1,000,000"},{"account_nm":"영업이익","thstrm_amount":"50,000"}`))
	}))
	defer server.Close()

	rows, err := client.FetchStatement(context.Background(), "00123456", "2023", ReportAnnual)
	if err != nil {
		t.Fatalf("FetchStatement failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].AccountName != "매출액" || rows[0].CurrentAmount != "1,000,000" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].ReportCode != ReportAnnual {
		t.Errorf("report code not stamped on rows: %+v", rows[1])
	}
}

func TestFetchStatementAutoFallsBack(t *testing.T) {
	// Annual report unavailable, third-quarter report present.
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("reprt_code") == ReportQ3 {
			fmt.Fprint(w, statementJSON(`{"account_nm":"매출액","thstrm_amount":"500"}`))
			return
		}
		fmt.Fprint(w, `{"status":"013","message":"조회된 데이타가 없습니다."}`)
	}))
	defer server.Close()

	rows, reportCode, err := client.FetchStatementAuto(context.Background(), "00123456", "2024")
	if err != nil {
		t.Fatalf("FetchStatementAuto failed: %v", err)
	}
	if reportCode != ReportQ3 {
		t.Errorf("reportCode = %s, want %s", reportCode, ReportQ3)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}

func corpCodeZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("CORPCODE.xml")
	if err != nil {
		t.Fatal(err)
	}
	xml := `<result>
		<list><corp_name>SK에너지</corp_name><corp_code>00111111</corp_code><stock_code>096770</stock_code></list>
		<list><corp_name>SK에너지판매</corp_name><corp_code>00999999</corp_code><stock_code> </stock_code></list>
		<list><corp_name>에쓰오일</corp_name><corp_code>00222222</corp_code><stock_code>010950</stock_code></list>
		<list><corp_name>지에스칼텍스주식회사</corp_name><corp_code>00333333</corp_code><stock_code> </stock_code></list>
	</result>`
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestResolveCorpCode(t *testing.T) {
	archive := corpCodeZip(t)
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer server.Close()

	ctx := context.Background()

	// Stock code match wins over the ambiguous name containment.
	code, err := client.ResolveCorpCode(ctx, config.Company{Name: "SK에너지", StockCode: "096770"})
	if err != nil {
		t.Fatalf("ResolveCorpCode failed: %v", err)
	}
	if code != "00111111" {
		t.Errorf("corp code = %s, want 00111111", code)
	}

	// Alias resolves through exact match.
	code, err = client.ResolveCorpCode(ctx, config.Company{Name: "S-Oil", Aliases: []string{"에쓰오일"}})
	if err != nil {
		t.Fatalf("ResolveCorpCode via alias failed: %v", err)
	}
	if code != "00222222" {
		t.Errorf("corp code = %s, want 00222222", code)
	}

	// Containment handles the 주식회사 suffix.
	code, err = client.ResolveCorpCode(ctx, config.Company{Name: "지에스칼텍스"})
	if err != nil {
		t.Fatalf("ResolveCorpCode via containment failed: %v", err)
	}
	if code != "00333333" {
		t.Errorf("corp code = %s, want 00333333", code)
	}

	if _, err := client.ResolveCorpCode(ctx, config.Company{Name: "없는회사"}); err == nil {
		t.Error("expected error for unknown company")
	}
}

func TestCorpCodeByStock(t *testing.T) {
	archive := corpCodeZip(t)
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer server.Close()

	code, err := client.CorpCodeByStock(context.Background(), "010950")
	if err != nil {
		t.Fatalf("CorpCodeByStock failed: %v", err)
	}
	if code != "00222222" {
		t.Errorf("corp code = %s, want 00222222", code)
	}
}

func TestLookupReceiptNo(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"000","list":[
			{"report_nm":"분기보고서 (2023.09)","rcept_no":"20231114000123"},
			{"report_nm":"사업보고서 (2023.12)","rcept_no":"20240320000456"}
		]}`)
	}))
	defer server.Close()

	got := client.LookupReceiptNo(context.Background(), "00111111", "2023", ReportAnnual)
	if got != "20240320000456" {
		t.Errorf("receipt no = %s, want 20240320000456", got)
	}
}

func TestLookupReceiptNoFallsBackToSynthetic(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"013","message":"조회된 데이타가 없습니다."}`)
	}))
	defer server.Close()

	got := client.LookupReceiptNo(context.Background(), "00111111", "2023", ReportAnnual)
	want := "00111111_2023_11011"
	if got != want {
		t.Errorf("receipt no = %s, want %s", got, want)
	}
}

func TestBuildSourceInfo(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"000","list":[{"report_nm":"사업보고서 (2023.12)","rcept_no":"20240320000456"}]}`)
	}))
	defer server.Close()

	info := client.BuildSourceInfo(context.Background(), "SK에너지", "00111111", "2023", ReportAnnual)
	if info.ReportType != "사업보고서" {
		t.Errorf("report type = %s, want 사업보고서", info.ReportType)
	}
	if info.ViewerURL != "https://dart.fss.or.kr/dsaf001/main.do?rcpNo=20240320000456" {
		t.Errorf("unexpected viewer URL: %s", info.ViewerURL)
	}
}

func TestNormalize(t *testing.T) {
	rows := []AccountRow{
		{AccountName: "매출액", CurrentAmount: "1,000,000"},
		{AccountName: "매출원가", CurrentAmount: "700,000"},
		// Summary row repeating a detail line: larger magnitude wins.
		{AccountName: "영업이익", CurrentAmount: "30,000"},
		{AccountName: "영업이익(손실)", CurrentAmount: "50,000"},
		{AccountName: "기타포괄손익", CurrentAmount: "123"},
	}

	set := Normalize(rows, NormalizeOptions{})
	if got := set.Get(models.ItemRevenue); got != 1000000 {
		t.Errorf("revenue = %f, want 1000000", got)
	}
	if got := set.Get(models.ItemOperatingIncome); got != 50000 {
		t.Errorf("operating income = %f, want 50000", got)
	}
	if set.Has(models.ItemGrossProfit) {
		t.Error("gross profit should not appear without a matching row")
	}
}

func TestNormalizeAppliesScale(t *testing.T) {
	rows := []AccountRow{{AccountName: "매출액", CurrentAmount: "1,000"}}
	set := Normalize(rows, NormalizeOptions{Scale: 1e6})
	if got := set.Get(models.ItemRevenue); got != 1e9 {
		t.Errorf("scaled revenue = %f, want 1e9", got)
	}
}

func TestExtractQuarterMetrics(t *testing.T) {
	rows := []AccountRow{
		{AccountName: "매출액", CurrentAmount: "12,000,000,000,000"}, // 12조원
		{AccountName: "영업이익", CurrentAmount: "600,000,000,000"},   // 6000억원
	}

	m, ok := extractQuarterMetrics(rows)
	if !ok {
		t.Fatal("expected metrics from rows with revenue")
	}
	if m.RevenueTrillions != 12 {
		t.Errorf("revenue = %f조원, want 12", m.RevenueTrillions)
	}
	if m.OperatingProfitHundredMillions != 6000 {
		t.Errorf("operating profit = %f억원, want 6000", m.OperatingProfitHundredMillions)
	}
	// 6000억 / 12조 = 5%
	if m.OperatingMargin != 5 {
		t.Errorf("margin = %f%%, want 5", m.OperatingMargin)
	}

	if _, ok := extractQuarterMetrics([]AccountRow{{AccountName: "영업이익", CurrentAmount: "10"}}); ok {
		t.Error("metrics without revenue should be rejected")
	}
}
