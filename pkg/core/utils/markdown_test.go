package utils

import "testing"

func TestCleanMarkdownStripsFences(t *testing.T) {
	in := "```markdown\n## 분석\n내용\n```"
	if got := CleanMarkdown(in); got != "## 분석\n내용" {
		t.Errorf("CleanMarkdown = %q", got)
	}

	// No fences: unchanged apart from trimming.
	if got := CleanMarkdown("  plain text  "); got != "plain text" {
		t.Errorf("CleanMarkdown plain = %q", got)
	}
}

func TestPlainBlocksClassifiesHeadings(t *testing.T) {
	raw := "## 1. 재무 상황\n**요약**: 양호\n\n2.1 비용 구조"
	blocks := PlainBlocks(raw)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
	// Markdown markers are gone and numbered lines are titles.
	if blocks[0].Kind != "title" || blocks[0].Text != "1. 재무 상황" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[1].Kind != "body" || blocks[1].Text != "요약: 양호" {
		t.Errorf("block 1 = %+v", blocks[1])
	}
	if blocks[2].Kind != "title" {
		t.Errorf("block 2 = %+v", blocks[2])
	}
}

func TestMustRepairJSONFallsBack(t *testing.T) {
	if got := MustRepairJSON("{'key': 'value',}"); got == "" {
		t.Error("repairable JSON returned empty")
	}
}
