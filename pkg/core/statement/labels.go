// Package statement implements the financial-statement normalization core:
// label mapping, gap derivation, ratio computation, row assembly, the
// multi-company merge, and the plain-text comparison report.
package statement

import (
	"regexp"
	"strconv"
	"strings"

	"peer_analysis/pkg/models"
)

// LabelMatcher maps one raw account label to a canonical line item.
// Two strategies exist because the producers label accounts differently:
// DART rows carry short statutory account names (substring lookup is enough),
// while XBRL tags mix tag names, attributes and free text (regex rules).
type LabelMatcher interface {
	Match(label string) (models.Item, bool)
}

// regexRule pairs a match pattern with an optional exclude pattern. The
// original rules used negative lookahead, which RE2 does not support; an
// explicit exclusion check expresses the same intent.
type regexRule struct {
	match   *regexp.Regexp
	exclude *regexp.Regexp
	item    models.Item
}

// RegexMatcher evaluates an ordered rule list, first match wins.
type RegexMatcher struct {
	rules []regexRule
}

func rule(item models.Item, match, exclude string) regexRule {
	r := regexRule{match: regexp.MustCompile("(?i)" + match), item: item}
	if exclude != "" {
		r.exclude = regexp.MustCompile("(?i)" + exclude)
	}
	return r
}

// NewRegexMatcher builds the standard income-statement rule set used for
// uploaded XBRL documents. Rule order is significant: revenue before cost,
// combined SG&A after its components.
func NewRegexMatcher() *RegexMatcher {
	return &RegexMatcher{rules: []regexRule{
		rule(models.ItemRevenue, `revenue|sales|매출|수익|총매출|매출수익|operating.*revenue`, `cost|원가|비용`),
		rule(models.ItemCostOfRevenue, `cost.*revenue|cost.*sales|cost.*goods|매출원가|원가|판매원가|제품매출원가`, ""),
		rule(models.ItemGrossProfit, `gross.*profit|총이익|매출총이익|총수익`, ""),
		rule(models.ItemOperatingIncome, `operating.*income|operating.*profit|영업이익|영업손익|영업수익`, `비용|expense`),
		rule(models.ItemNetIncome, `net.*income|net.*profit|당기순이익|순이익|당기.*순손익|net.*earnings`, `loss`),
		rule(models.ItemSellingExpense, `selling.*expense|selling.*cost|판매비|판매비용|판매관련비용`, ""),
		rule(models.ItemAdminExpense, `administrative.*expense|administrative.*cost|관리비|관리비용|일반관리비`, ""),
		rule(models.ItemSGA, `selling.*administrative|판매비.*관리비|판관비|판매.*관리.*비용`, ""),
		rule(models.ItemLaborCost, `employee.*benefit|employee.*cost|wage|salary|인건비|급여|임금`, ""),
		rule(models.ItemDepreciation, `depreciation|amortization|감가상각|상각비|감가상각비`, ""),
		rule(models.ItemInterestExpense, `interest.*expense|interest.*cost|이자비용|이자지급`, ""),
		rule(models.ItemFinanceCost, `financial.*cost|금융비용|금융원가`, ""),
		rule(models.ItemNonOperatingInc, `non.*operating.*income|영업외수익|기타수익`, ""),
		rule(models.ItemNonOperatingExp, `non.*operating.*expense|영업외비용|기타비용`, ""),
	}}
}

// Match returns the first rule whose pattern matches the label and whose
// exclude pattern (if any) does not.
func (m *RegexMatcher) Match(label string) (models.Item, bool) {
	for _, r := range m.rules {
		if !r.match.MatchString(label) {
			continue
		}
		if r.exclude != nil && r.exclude.MatchString(label) {
			continue
		}
		return r.item, true
	}
	return "", false
}

// lookupRule is one entry of the substring-containment table.
type lookupRule struct {
	key  string
	item models.Item
}

// LookupMatcher matches when the table key appears in the label or the label
// appears in the key, case-insensitively. Used for DART statutory account
// names, which are short and stable.
type LookupMatcher struct {
	rules []lookupRule
}

// NewLookupMatcher builds the DART account-name table.
func NewLookupMatcher() *LookupMatcher {
	return &LookupMatcher{rules: []lookupRule{
		{"sales", models.ItemRevenue},
		{"revenue", models.ItemRevenue},
		{"매출액", models.ItemRevenue},
		{"수익(매출액)", models.ItemRevenue},
		{"costofgoodssold", models.ItemCostOfRevenue},
		{"cogs", models.ItemCostOfRevenue},
		{"costofrevenue", models.ItemCostOfRevenue},
		{"매출원가", models.ItemCostOfRevenue},
		{"operatingexpenses", models.ItemSGA},
		{"sellingexpenses", models.ItemSellingExpense},
		{"administrativeexpenses", models.ItemAdminExpense},
		{"판매비와관리비", models.ItemSGA},
		{"판관비", models.ItemSGA},
		{"grossprofit", models.ItemGrossProfit},
		{"매출총이익", models.ItemGrossProfit},
		{"operatingincome", models.ItemOperatingIncome},
		{"operatingprofit", models.ItemOperatingIncome},
		{"영업이익", models.ItemOperatingIncome},
		{"netincome", models.ItemNetIncome},
		{"당기순이익", models.ItemNetIncome},
	}}
}

// Match implements LabelMatcher.
func (m *LookupMatcher) Match(label string) (models.Item, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == "" {
		return "", false
	}
	for _, r := range m.rules {
		k := strings.ToLower(r.key)
		if strings.Contains(l, k) || strings.Contains(k, l) {
			return r.item, true
		}
	}
	return "", false
}

// ParseAmount converts amount text to a signed number. Thousands separators
// are stripped and a parenthesized amount is negative. Text that does not
// parse yields ok=false rather than a silent zero, except that the DART producer
// reports empty amounts as a bare "-", which dashIsZero turns into 0.
func ParseAmount(text string, dashIsZero bool) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if s == "" {
		return 0, false
	}
	if dashIsZero && s == "-" {
		return 0, true
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// Apply records a mapped value into the set under the duplicate policy:
// when two raw labels map to the same canonical item, the one with the larger
// absolute value wins. Not first-seen, not a sum.
func Apply(set *models.ItemSet, item models.Item, value float64) {
	if cur, ok := set.Values[item]; ok && abs(cur) >= abs(value) {
		return
	}
	set.Set(item, value)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
