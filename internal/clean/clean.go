// Package clean applies the user-selected cleaning transformations to a
// copy of a loaded table, in a fixed order regardless of how they were
// requested.
package clean

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/datasweep/datasweep-cli/internal/dataset"
)

// Placeholder is the literal value written into missing cells when
// fill-nulls is selected.
const Placeholder = "N/A"

// Selection is the user's chosen combination of transformations.
type Selection struct {
	DropNulls      bool   `json:"drop_nulls"`
	FillNulls      bool   `json:"fill_nulls"`
	DropDuplicates bool   `json:"drop_duplicates"`
	RenameSpec     string `json:"rename"`
}

// RenameError reports a malformed or inapplicable rename spec. It is a
// warning: the rename step is skipped as a whole, nothing else aborts.
type RenameError struct {
	Spec   string
	Reason string
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("column rename %q skipped: %s", e.Spec, e.Reason)
}

// Result carries what the pipeline actually did, for reporting.
type Result struct {
	// Actions taken, in the canonical order: drop-nulls, fill-nulls,
	// drop-duplicates, rename.
	Actions  []string
	Warnings []string
}

// Cleaner runs the cleaning pipeline.
type Cleaner struct {
	logger *zap.SugaredLogger
}

func New(logger *zap.SugaredLogger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Cleaner{logger: logger}
}

// Apply clones the table and runs the selected steps in fixed order:
// drop-nulls, fill-nulls, drop-duplicates, rename. If drop-nulls ran,
// fill-nulls has no missing cells left to touch; that interaction is
// intentional and preserved. A bad rename spec skips only the rename
// step, emitting a warning.
func (c *Cleaner) Apply(t *dataset.Table, sel Selection) (*dataset.Table, Result) {
	out := t.Clone()
	var res Result

	if sel.DropNulls {
		out.Rows = dropNullRows(out)
		res.Actions = append(res.Actions, "Dropped rows with nulls")
	}
	if sel.FillNulls {
		fillNulls(out)
		res.Actions = append(res.Actions, fmt.Sprintf("Filled missing values with %q", Placeholder))
	}
	if sel.DropDuplicates {
		out.Rows = dropDuplicateRows(out)
		res.Actions = append(res.Actions, "Removed duplicate rows")
	}
	if strings.TrimSpace(sel.RenameSpec) != "" {
		if err := renameColumns(out, sel.RenameSpec); err != nil {
			c.logger.Warnw("column rename skipped", "spec", sel.RenameSpec, "error", err)
			res.Warnings = append(res.Warnings, err.Error())
		} else {
			res.Actions = append(res.Actions, fmt.Sprintf("Renamed columns: %s", sel.RenameSpec))
		}
	}
	return out, res
}

func dropNullRows(t *dataset.Table) [][]string {
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		complete := true
		for j := range t.Columns {
			if j >= len(row) || dataset.Missing(row[j]) {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	return kept
}

func fillNulls(t *dataset.Table) {
	for _, row := range t.Rows {
		for j := range row {
			if dataset.Missing(row[j]) {
				row[j] = Placeholder
			}
		}
	}
}

func dropDuplicateRows(t *dataset.Table) [][]string {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	return kept
}

// ParseRenameSpec parses a comma-separated "old:new" list, trimming
// whitespace around each side of each colon.
func ParseRenameSpec(spec string) (map[string]string, error) {
	mapping := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		old, updated, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, &RenameError{Spec: spec, Reason: fmt.Sprintf("pair %q has no colon", strings.TrimSpace(pair))}
		}
		old = strings.TrimSpace(old)
		updated = strings.TrimSpace(updated)
		if old == "" {
			return nil, &RenameError{Spec: spec, Reason: "empty source column name"}
		}
		mapping[old] = updated
	}
	if len(mapping) == 0 {
		return nil, &RenameError{Spec: spec, Reason: "no mappings found"}
	}
	return mapping, nil
}

// renameColumns applies the whole mapping or nothing: an unmatched
// source column fails the step before any header is touched.
func renameColumns(t *dataset.Table, spec string) error {
	mapping, err := ParseRenameSpec(spec)
	if err != nil {
		return err
	}
	index := make(map[string]int, len(t.Columns))
	for j, name := range t.Columns {
		index[name] = j
	}
	for old := range mapping {
		if _, ok := index[old]; !ok {
			return &RenameError{Spec: spec, Reason: fmt.Sprintf("column %q not found", old)}
		}
	}
	for old, updated := range mapping {
		t.Columns[index[old]] = updated
	}
	return nil
}
