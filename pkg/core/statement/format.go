package statement

import (
	"fmt"
	"strings"
)

// LossSuffix is appended to negative operating/net income on the DART path.
const LossSuffix = "영업손실"

// NegativeMarker prefixes negative amounts in display strings.
const NegativeMarker = "▼ "

// FormatAmount renders a signed KRW amount in Korean units. Negative amounts
// carry the down-arrow marker; the magnitude picks the unit:
// >= 1조 in 조원 (1dp), >= 1억 in 억원, >= 1만 in 만원, else plain 원.
func FormatAmount(v float64) string {
	if v == 0 {
		return "0원"
	}
	if v < 0 {
		return NegativeMarker + formatMagnitude(-v)
	}
	return formatMagnitude(v)
}

// FormatAmountPlain renders without the negative marker; the sign stays in
// the number itself. Used for non-income items on the DART path.
func FormatAmountPlain(v float64) string {
	if v < 0 {
		return "-" + formatMagnitude(-v)
	}
	return formatMagnitude(v)
}

// FormatWithLossIndicator renders losses as "▼ <amount> 영업손실" instead of
// the plain negative form. Applies to 영업이익 and 당기순이익 only.
func FormatWithLossIndicator(v float64) string {
	if v < 0 {
		return NegativeMarker + formatMagnitude(-v) + " " + LossSuffix
	}
	return FormatAmountPlain(v)
}

func formatMagnitude(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.1f조원", v/1e12)
	case v >= 1e8:
		return fmt.Sprintf("%.0f억원", v/1e8)
	case v >= 1e4:
		return fmt.Sprintf("%.0f만원", v/1e4)
	default:
		return groupThousands(fmt.Sprintf("%.0f", v)) + "원"
	}
}

// groupThousands inserts comma separators into a non-negative integer string.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatRatio renders a ratio value with the unit its name implies.
func FormatRatio(name string, v float64) string {
	switch {
	case strings.HasSuffix(name, "(억원)"):
		return fmt.Sprintf("%.2f억원", v)
	case strings.HasSuffix(name, "(%)"):
		return fmt.Sprintf("%.2f%%", v)
	default:
		return fmt.Sprintf("%.2f점", v)
	}
}
