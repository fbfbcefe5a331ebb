package statement

import "testing"

func TestFormatAmountMagnitudes(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0원"},
		{1.5e12, "1.5조원"},
		{9.87e12, "9.9조원"}, // one decimal in 조원
		{2.5e11, "2500억원"},
		{1e8, "1억원"},
		{123450000, "1억원"}, // 0 decimals in 억원
		{5.4e4, "5만원"},
		{9999, "9,999원"},
		{1234, "1,234원"},
		{999, "999원"},
		{-1.5e12, "▼ 1.5조원"},
		{-5000, "▼ 5,000원"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAmountIdempotent(t *testing.T) {
	// Formatting is a pure function: the same raw value always yields the
	// identical string.
	for _, v := range []float64{0, 1234, -98765, 3.3e11, -2.7e12} {
		if FormatAmount(v) != FormatAmount(v) {
			t.Errorf("formatting %v is not stable", v)
		}
	}
}

func TestFormatWithLossIndicator(t *testing.T) {
	// Losses end with the loss suffix instead of the plain negative form.
	got := FormatWithLossIndicator(-500)
	want := "▼ 500원 " + LossSuffix
	if got != want {
		t.Errorf("FormatWithLossIndicator(-500) = %q, want %q", got, want)
	}

	got = FormatWithLossIndicator(-3.2e11)
	want = "▼ 3200억원 " + LossSuffix
	if got != want {
		t.Errorf("FormatWithLossIndicator(-3.2e11) = %q, want %q", got, want)
	}

	// Profits render plain.
	if got := FormatWithLossIndicator(1.5e12); got != "1.5조원" {
		t.Errorf("positive amount = %q", got)
	}
}

func TestFormatRatioUnits(t *testing.T) {
	if got := FormatRatio(RatioOperatingMargin, 3.33); got != "3.33%" {
		t.Errorf("percentage ratio = %q", got)
	}
	if got := FormatRatio(RatioOpIncomePerTrn, 700.0); got != "700.00억원" {
		t.Errorf("currency ratio = %q", got)
	}
	if got := FormatRatio(RatioCompositeScore, 5.83); got != "5.83점" {
		t.Errorf("point ratio = %q", got)
	}
}
