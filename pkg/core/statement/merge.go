package statement

import (
	"fmt"
	"strconv"
	"strings"

	"peer_analysis/pkg/models"
)

// Merge outer-joins per-company statements on line-item name. The union of
// row keys is always preserved; cells with no source data hold the
// placeholder. When a company whose name contains anchorSubstring is present
// it becomes the join base and its columns come first; otherwise the first
// statement in input order is the base. A statement that cannot be joined
// (empty or duplicate company name) is skipped with a warning so the merge
// still produces a best-effort result.
func Merge(statements []models.CompanyStatement, anchorSubstring string) *models.MergedStatement {
	if len(statements) == 0 {
		return &models.MergedStatement{}
	}

	ordered := orderByAnchor(statements, anchorSubstring)

	var (
		keys   []string
		seen   = make(map[string]bool)
		cells  = make(map[string]map[string]string) // key -> column -> cell
		joined []string
	)
	addCell := func(key, col, val string) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
			cells[key] = make(map[string]string)
		}
		cells[key][col] = val
	}

	used := make(map[string]bool)
	for _, stmt := range ordered {
		if stmt.Company == "" || used[stmt.Company] {
			fmt.Printf("[Merge] Warning: skipping statement with unusable company name %q\n", stmt.Company)
			continue
		}
		used[stmt.Company] = true
		joined = append(joined, stmt.Company)
		for _, row := range stmt.Rows {
			addCell(row.Name, stmt.Company, row.Display)
			addCell(row.Name, stmt.Company+models.RawValueSuffix, strconv.FormatFloat(row.RawValue, 'f', -1, 64))
		}
	}

	// Final column order: key, display columns, raw-value columns last.
	columns := []string{models.KeyColumn}
	columns = append(columns, joined...)
	for _, c := range joined {
		columns = append(columns, c+models.RawValueSuffix)
	}

	merged := &models.MergedStatement{Columns: columns}
	for _, key := range keys {
		row := map[string]string{models.KeyColumn: key}
		for _, col := range columns[1:] {
			if v, ok := cells[key][col]; ok {
				row[col] = v
			} else {
				row[col] = models.Placeholder
			}
		}
		merged.Rows = append(merged.Rows, row)
	}
	return merged
}

// orderByAnchor moves the anchor company's statement to the front, keeping
// the relative order of the rest.
func orderByAnchor(statements []models.CompanyStatement, anchorSubstring string) []models.CompanyStatement {
	if anchorSubstring == "" {
		return statements
	}
	for i, stmt := range statements {
		if strings.Contains(stmt.Company, anchorSubstring) {
			if i == 0 {
				return statements
			}
			out := make([]models.CompanyStatement, 0, len(statements))
			out = append(out, stmt)
			out = append(out, statements[:i]...)
			out = append(out, statements[i+1:]...)
			return out
		}
	}
	return statements
}
