// Package profile computes descriptive quality statistics over a loaded
// table: per-column missing counts, duplicate rows, declared types, and
// fully-empty columns.
package profile

import (
	"fmt"
	"strings"

	"github.com/datasweep/datasweep-cli/internal/dataset"
)

// Report is a read-only snapshot of a table's quality statistics. It is
// recomputed from scratch whenever the table changes.
type Report struct {
	Rows          int
	Cols          int
	Columns       []string
	NullCounts    map[string]int
	TotalNulls    int
	DuplicateRows int
	Types         map[string]string
	EmptyColumns  []string
}

// Analyze profiles a table in a single O(rows x cols) pass. It never
// fails; an empty table yields all-zero counts.
func Analyze(t *dataset.Table) *Report {
	rep := &Report{
		Rows:       t.RowCount(),
		Cols:       t.ColCount(),
		Columns:    append([]string(nil), t.Columns...),
		NullCounts: make(map[string]int, t.ColCount()),
		Types:      make(map[string]string, t.ColCount()),
	}

	nonMissing := make([]int, t.ColCount())
	for _, name := range t.Columns {
		rep.NullCounts[name] = 0
	}

	seen := make(map[string]struct{}, t.RowCount())
	for _, row := range t.Rows {
		for j, name := range t.Columns {
			var cell string
			if j < len(row) {
				cell = row[j]
			}
			if dataset.Missing(cell) {
				rep.NullCounts[name]++
				rep.TotalNulls++
			} else {
				nonMissing[j]++
			}
		}
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			rep.DuplicateRows++
		} else {
			seen[key] = struct{}{}
		}
	}

	for j, kind := range t.Kinds() {
		rep.Types[t.Columns[j]] = string(kind)
	}
	for j, name := range t.Columns {
		// Zero-row tables count as empty by convention.
		if nonMissing[j] == 0 {
			rep.EmptyColumns = append(rep.EmptyColumns, name)
		}
	}
	return rep
}

// rowKey joins cells with an unlikely separator so full-row equality
// reduces to string equality in the duplicate set.
func rowKey(row []string) string { return strings.Join(row, "\x1f") }

// Text renders the report as the human-readable blocks shown in the CLI
// and embedded verbatim in suggestion prompts.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n", r.Cols))

	b.WriteString("\n[COLUMN TYPES]\n")
	for _, name := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s\n", name, r.Types[name]))
	}

	b.WriteString("\n[NULL SUMMARY]\n")
	for _, name := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s: %d\n", name, r.NullCounts[name]))
	}
	b.WriteString(fmt.Sprintf("Total missing values: %d\n", r.TotalNulls))

	b.WriteString(fmt.Sprintf("\nDuplicate rows: %d\n", r.DuplicateRows))
	if len(r.EmptyColumns) > 0 {
		b.WriteString(fmt.Sprintf("Empty columns: %s\n", strings.Join(r.EmptyColumns, ", ")))
	}
	return b.String()
}

// TypesText renders only the column-type block, one line per column.
func (r *Report) TypesText() string {
	var b strings.Builder
	for _, name := range r.Columns {
		b.WriteString(fmt.Sprintf("%s    %s\n", name, r.Types[name]))
	}
	return b.String()
}

// NullsText renders only the null-count block, one line per column.
func (r *Report) NullsText() string {
	var b strings.Builder
	for _, name := range r.Columns {
		b.WriteString(fmt.Sprintf("%s    %d\n", name, r.NullCounts[name]))
	}
	return b.String()
}
