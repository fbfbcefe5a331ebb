package xbrl

import (
	"strings"
	"testing"

	"peer_analysis/pkg/models"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<xbrl>
  <EntityRegistrantName>GS칼텍스</EntityRegistrantName>
  <Revenue contextRef="FY2023">45,000,000,000,000</Revenue>
  <CostOfGoodsSold contextRef="FY2023">40,000,000,000,000</CostOfGoodsSold>
  <OperatingIncome contextRef="FY2023">1,500,000,000,000</OperatingIncome>
  <NetIncomeLoss contextRef="FY2023">(200,000,000,000)</NetIncomeLoss>
  <SomeOrdinal>42</SomeOrdinal>
</xbrl>`

func TestScanExtractsItems(t *testing.T) {
	scanner := NewScanner()

	company, set, err := scanner.Scan([]byte(sampleDoc), "upload.xbrl")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if company != "GS칼텍스" {
		t.Errorf("company = %s, want GS칼텍스", company)
	}
	if got := set.Get(models.ItemRevenue); got != 45e12 {
		t.Errorf("revenue = %f, want 45e12", got)
	}
	if got := set.Get(models.ItemCostOfRevenue); got != 40e12 {
		t.Errorf("cost of revenue = %f, want 40e12", got)
	}
	if got := set.Get(models.ItemOperatingIncome); got != 1.5e12 {
		t.Errorf("operating income = %f, want 1.5e12", got)
	}
}

func TestScanParenthesesAreNegative(t *testing.T) {
	doc := `<xbrl><OperatingIncome ref="a">(1,000,000)</OperatingIncome></xbrl>`
	scanner := NewScanner()

	_, set, err := scanner.Scan([]byte(doc), "loss.xml")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got := set.Get(models.ItemOperatingIncome); got != -1000000 {
		t.Errorf("operating income = %f, want -1000000", got)
	}
}

func TestScanDropsSmallValues(t *testing.T) {
	// 42 is below the noise floor, so nothing is extracted.
	doc := `<xbrl><Revenue>42</Revenue></xbrl>`
	scanner := NewScanner()

	if _, _, err := scanner.Scan([]byte(doc), "tiny.xml"); err == nil {
		t.Error("expected error when only noise-level values exist")
	}
}

func TestScanMatchesOnAttributes(t *testing.T) {
	// The number lives in a generic tag; the label is in an attribute.
	doc := `<xbrl><item name="매출액" unit="KRW">7,000,000,000</item></xbrl>`
	scanner := NewScanner()

	_, set, err := scanner.Scan([]byte(doc), "attrs.xml")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got := set.Get(models.ItemRevenue); got != 7e9 {
		t.Errorf("revenue = %f, want 7e9", got)
	}
}

func TestCompanyNameFromFilename(t *testing.T) {
	doc := `<xbrl><Revenue>5,000,000,000</Revenue></xbrl>`
	scanner := NewScanner()

	company, _, err := scanner.Scan([]byte(doc), "skenergy_2023.xbrl")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if company != "SK에너지" {
		t.Errorf("company = %s, want SK에너지", company)
	}

	company, _, err = scanner.Scan([]byte(doc), "some_other_corp!.xml")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if company != "someothercorp" && !strings.Contains(company, "corp") {
		t.Errorf("unexpected fallback company name: %s", company)
	}
}

func TestScanRejectsOversizedFile(t *testing.T) {
	scanner := NewScanner()
	big := make([]byte, MaxFileSize+1)
	if _, _, err := scanner.Scan(big, "big.xml"); err == nil {
		t.Error("expected error for oversized file")
	}
}

func TestParseTagNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234,567", 1234567, true},
		{"(5,000)", -5000, true},
		{"-", 0, false},
		{"abc", 0, false},
		{"12.5억", 12.5, true},
	}
	for _, tc := range cases {
		got, ok := parseTagNumber(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseTagNumber(%q) = %f, %v; want %f, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
