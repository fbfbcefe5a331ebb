package statement

import (
	"testing"

	"peer_analysis/pkg/models"
)

func stmtWith(company string, rows ...models.Row) models.CompanyStatement {
	return models.CompanyStatement{Company: company, Rows: rows}
}

func TestMergePreservesKeyUnion(t *testing.T) {
	a := stmtWith("SK에너지",
		models.Row{Name: "매출액", Display: "1.0조원", RawValue: 1e12},
		models.Row{Name: "영업이익", Display: "500억원", RawValue: 5e10},
	)
	b := stmtWith("GS칼텍스",
		models.Row{Name: "매출액", Display: "2.0조원", RawValue: 2e12},
		models.Row{Name: "인건비", Display: "100억원", RawValue: 1e10},
	)
	c := stmtWith("S-Oil",
		models.Row{Name: "매출액", Display: "1.5조원", RawValue: 1.5e12},
	)

	merged := Merge([]models.CompanyStatement{b, c, a}, "SK")

	// Union of keys: 매출액, 영업이익, 인건비. Three rows, none dropped.
	if len(merged.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(merged.Rows))
	}

	// The key that only one company has appears once, placeholdered for the
	// other two.
	var labor map[string]string
	for _, row := range merged.Rows {
		if row[models.KeyColumn] == "인건비" {
			labor = row
		}
	}
	if labor == nil {
		t.Fatal("인건비 row dropped during merge")
	}
	if labor["GS칼텍스"] != "100억원" {
		t.Errorf("labor cell = %q", labor["GS칼텍스"])
	}
	if labor["SK에너지"] != models.Placeholder || labor["S-Oil"] != models.Placeholder {
		t.Error("missing cells must hold the placeholder")
	}
}

func TestMergeAnchorColumnOrder(t *testing.T) {
	a := stmtWith("GS칼텍스", models.Row{Name: "매출액", Display: "2.0조원", RawValue: 2e12})
	b := stmtWith("SK에너지", models.Row{Name: "매출액", Display: "1.0조원", RawValue: 1e12})

	merged := Merge([]models.CompanyStatement{a, b}, "SK")

	// 구분 first, anchor display column next, raw-value columns last.
	want := []string{
		models.KeyColumn,
		"SK에너지", "GS칼텍스",
		"SK에너지" + models.RawValueSuffix, "GS칼텍스" + models.RawValueSuffix,
	}
	if len(merged.Columns) != len(want) {
		t.Fatalf("columns = %v", merged.Columns)
	}
	for i, col := range want {
		if merged.Columns[i] != col {
			t.Errorf("column %d = %q, want %q", i, merged.Columns[i], col)
		}
	}
}

func TestMergeKeyUnionIsOrderIndependent(t *testing.T) {
	a := stmtWith("A사", models.Row{Name: "매출액", RawValue: 1})
	b := stmtWith("B사", models.Row{Name: "영업이익", RawValue: 2})
	c := stmtWith("C사", models.Row{Name: "당기순이익", RawValue: 3})

	keysOf := func(m *models.MergedStatement) map[string]bool {
		out := make(map[string]bool)
		for _, row := range m.Rows {
			out[row[models.KeyColumn]] = true
		}
		return out
	}

	m1 := keysOf(Merge([]models.CompanyStatement{a, b, c}, ""))
	m2 := keysOf(Merge([]models.CompanyStatement{c, a, b}, ""))
	if len(m1) != 3 || len(m2) != 3 {
		t.Fatalf("key union wrong: %v vs %v", m1, m2)
	}
	for k := range m1 {
		if !m2[k] {
			t.Errorf("key %q missing after reordering", k)
		}
	}
}

func TestMergeSingleStatement(t *testing.T) {
	a := stmtWith("SK에너지", models.Row{Name: "매출액", Display: "1.0조원", RawValue: 1e12})
	merged := Merge([]models.CompanyStatement{a}, "SK")
	if len(merged.Rows) != 1 {
		t.Fatalf("expected passthrough of the single statement, got %d rows", len(merged.Rows))
	}
	if merged.Rows[0]["SK에너지"] != "1.0조원" {
		t.Errorf("cell = %q", merged.Rows[0]["SK에너지"])
	}
}

func TestMergeSkipsUnusableStatement(t *testing.T) {
	a := stmtWith("SK에너지", models.Row{Name: "매출액", Display: "1.0조원", RawValue: 1e12})
	bad := stmtWith("", models.Row{Name: "매출액", Display: "x", RawValue: 1})

	merged := Merge([]models.CompanyStatement{a, bad}, "SK")
	if got := merged.Companies(); len(got) != 1 || got[0] != "SK에너지" {
		t.Errorf("expected only SK에너지 joined, got %v", got)
	}
}
