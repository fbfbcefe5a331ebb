package utils

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// CleanMarkdown strips conversational filler and outer markdown code blocks
// from an LLM response so it is ready for rendering or export.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// ValidateMarkdown checks if the string is valid Markdown using Goldmark.
// Goldmark is very permissive, so this is a basic sanity check.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}

var (
	markupRe  = regexp.MustCompile("[*_`#>~]")
	headingRe = regexp.MustCompile(`^\d+(\.\d+)*\.?\s`)
)

// Block kinds produced by PlainBlocks.
const (
	BlockTitle = "title"
	BlockBody  = "body"
)

// TextBlock is one line of insight text classified for report layout.
type TextBlock struct {
	Kind string // BlockTitle for numbered headings, BlockBody otherwise
	Text string
}

// PlainBlocks strips markdown markers from insight text and classifies each
// non-empty line, so the PDF renderer can bold numbered headings and print
// the rest as body text.
func PlainBlocks(raw string) []TextBlock {
	raw = markupRe.ReplaceAllString(raw, "")
	var blocks []TextBlock
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kind := BlockBody
		if headingRe.MatchString(line) {
			kind = BlockTitle
		}
		blocks = append(blocks, TextBlock{Kind: kind, Text: line})
	}
	return blocks
}
