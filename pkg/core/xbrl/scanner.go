// Package xbrl extracts income-statement figures from manually uploaded
// XBRL/XML documents. Uploaded files are messy: mixed encodings, vendor
// namespaces, and numbers buried in arbitrary tags, so the scanner works
// from tag names and attributes rather than a schema.
package xbrl

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/korean"

	"peer_analysis/pkg/core/statement"
	"peer_analysis/pkg/models"
)

// noiseFloor drops tiny values. Context refs and ordinal attributes show up
// as small integers in tag text, real statement figures do not.
const noiseFloor = 1000

// MaxFileSize caps uploads at 50MB.
const MaxFileSize = 50 * 1024 * 1024

// entityTags are checked in order when looking for the reporting company's
// name inside the document.
var entityTags = []string{
	"entityregistrantname", "companyname", "entity", "registrant",
	"reportingentityname", "entityname", "corporatename",
}

// filenameAliases maps filename fragments to peer company names, for files
// whose entity tags are missing.
var filenameAliases = []struct {
	fragment string
	company  string
}{
	{"skenergy", "SK에너지"},
	{"sk", "SK에너지"},
	{"gscaltex", "GS칼텍스"},
	{"gs", "GS칼텍스"},
	{"hdoil", "HD현대오일뱅크"},
	{"hd", "HD현대오일뱅크"},
	{"hyundai", "HD현대오일뱅크"},
	{"s-oil", "S-Oil"},
	{"soilcorp", "S-Oil"},
	{"soil", "S-Oil"},
}

var (
	digitRe     = regexp.MustCompile(`\d`)
	nonNumRe    = regexp.MustCompile(`[^\d.\-]`)
	parenNumRe  = regexp.MustCompile(`[^\d.]`)
	cleanNameRe = regexp.MustCompile(`[^A-Za-z가-힣0-9\s]`)
)

// Scanner pulls canonical line items out of one uploaded document.
type Scanner struct {
	matcher statement.LabelMatcher
}

// NewScanner builds a scanner using the regex rule set, which copes with the
// English tag names and Korean labels both appearing in uploads.
func NewScanner() *Scanner {
	return &Scanner{matcher: statement.NewRegexMatcher()}
}

// Scan parses the document and returns the company name and extracted items.
// The filename is only used as a fallback for company identification.
func (s *Scanner) Scan(content []byte, filename string) (string, *models.ItemSet, error) {
	if len(content) > MaxFileSize {
		return "", nil, fmt.Errorf("file %s too large (%d bytes)", filename, len(content))
	}

	text, err := decode(content)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	company := extractCompanyName(doc, filename)
	set := s.extractItems(doc)
	if len(set.Values) == 0 {
		return company, nil, fmt.Errorf("no financial items found in %s", filename)
	}
	return company, set, nil
}

// decode tries UTF-8 first and falls back to CP949, which older Korean
// filing tools still emit.
func decode(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func extractCompanyName(doc *goquery.Document, filename string) string {
	for _, tagName := range entityTags {
		var found string
		doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			node := sel.Nodes[0]
			if !strings.Contains(strings.ToLower(node.Data), tagName) {
				return true
			}
			text := strings.TrimSpace(sel.Text())
			if len(text) > 1 && !digitRe.MatchString(text[:1]) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	base := strings.ToLower(strings.SplitN(filename, ".", 2)[0])
	for _, alias := range filenameAliases {
		if strings.Contains(base, alias.fragment) {
			return alias.company
		}
	}

	clean := strings.TrimSpace(cleanNameRe.ReplaceAllString(strings.SplitN(filename, ".", 2)[0], ""))
	if clean == "" {
		return "Unknown Company"
	}
	return clean
}

// extractItems walks every leaf tag carrying a number, matches the tag name
// plus attribute values against the label rules, and keeps the largest
// absolute value per item.
func (s *Scanner) extractItems(doc *goquery.Document) *models.ItemSet {
	set := models.NewItemSet()

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" || !digitRe.MatchString(text) {
			return
		}

		value, ok := parseTagNumber(text)
		if !ok || absFloat(value) < noiseFloor {
			return
		}

		node := sel.Nodes[0]
		parts := []string{strings.ToLower(node.Data)}
		for _, attr := range node.Attr {
			parts = append(parts, strings.ToLower(attr.Val))
		}
		tagInfo := strings.Join(parts, " ")

		item, ok := s.matcher.Match(tagInfo)
		if !ok {
			return
		}
		statement.Apply(set, item, value)
	})

	return set
}

// parseTagNumber strips everything but digits from tag text. Parenthesized
// amounts are negative, per accounting convention.
func parseTagNumber(text string) (float64, bool) {
	if strings.Contains(text, "(") && strings.Contains(text, ")") {
		numStr := parenNumRe.ReplaceAllString(strings.NewReplacer("(", "", ")", "").Replace(text), "")
		if numStr == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, false
		}
		return -v, true
	}

	numStr := nonNumRe.ReplaceAllString(text, "")
	switch numStr {
	case "", "-", ".", "-.":
		return 0, false
	}
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
