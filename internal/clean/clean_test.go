package clean

import (
	"reflect"
	"strings"
	"testing"

	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
)

func tableOf(cols []string, rows [][]string) *dataset.Table {
	copied := make([][]string, len(rows))
	for i, r := range rows {
		copied[i] = append([]string(nil), r...)
	}
	return &dataset.Table{Columns: cols, Rows: copied}
}

func TestDropThenFillLeavesNoMissing(t *testing.T) {
	tab := tableOf([]string{"A", "B"}, [][]string{
		{"1", "x"},
		{"", "y"},
		{"3", ""},
		{"4", "w"},
	})
	out, _ := New(nil).Apply(tab, Selection{DropNulls: true, FillNulls: true})
	for _, row := range out.Rows {
		for _, cell := range row {
			if dataset.Missing(cell) {
				t.Fatalf("missing cell survived: %v", out.Rows)
			}
		}
	}
	// Drop-nulls runs first, so fill had nothing to do.
	if out.RowCount() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.RowCount())
	}
}

func TestFillNullsNeverRemovesRows(t *testing.T) {
	tab := tableOf([]string{"A", "B"}, [][]string{
		{"", ""},
		{"1", ""},
	})
	out, res := New(nil).Apply(tab, Selection{FillNulls: true})
	if out.RowCount() != tab.RowCount() {
		t.Fatalf("fill-nulls changed row count: %d -> %d", tab.RowCount(), out.RowCount())
	}
	if out.Rows[0][0] != Placeholder || out.Rows[1][1] != Placeholder {
		t.Fatalf("placeholder not applied: %v", out.Rows)
	}
	if len(res.Actions) != 1 || !strings.Contains(res.Actions[0], Placeholder) {
		t.Fatalf("unexpected actions: %v", res.Actions)
	}
}

func TestDropDuplicatesIdempotent(t *testing.T) {
	tab := tableOf([]string{"A"}, [][]string{{"x"}, {"x"}, {"y"}, {"x"}})
	c := New(nil)
	once, _ := c.Apply(tab, Selection{DropDuplicates: true})
	twice, _ := c.Apply(once, Selection{DropDuplicates: true})
	if !reflect.DeepEqual(once.Rows, twice.Rows) {
		t.Fatalf("drop-duplicates not idempotent: %v vs %v", once.Rows, twice.Rows)
	}
	if once.RowCount() != 2 {
		t.Fatalf("expected 2 surviving rows, got %d", once.RowCount())
	}
}

func TestOriginalTableUntouched(t *testing.T) {
	tab := tableOf([]string{"A"}, [][]string{{""}, {"x"}})
	New(nil).Apply(tab, Selection{DropNulls: true, FillNulls: true})
	if tab.RowCount() != 2 || tab.Rows[0][0] != "" {
		t.Fatalf("cleaning mutated the original table: %v", tab.Rows)
	}
}

func TestRenameApplied(t *testing.T) {
	tab := tableOf([]string{"Name", "Age"}, [][]string{{"a", "1"}})
	out, res := New(nil).Apply(tab, Selection{RenameSpec: "Name:CustomerName, Age : CustomerAge"})
	want := []string{"CustomerName", "CustomerAge"}
	if !reflect.DeepEqual(out.Columns, want) {
		t.Fatalf("expected %v, got %v", want, out.Columns)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestMalformedRenameSkippedWithWarning(t *testing.T) {
	tab := tableOf([]string{"Name", "Age"}, [][]string{{"a", "1"}})
	out, res := New(nil).Apply(tab, Selection{RenameSpec: "Name-NewName"})
	if !reflect.DeepEqual(out.Columns, tab.Columns) {
		t.Fatalf("malformed rename changed columns: %v", out.Columns)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Warnings)
	}
	for _, a := range res.Actions {
		if strings.Contains(a, "Renamed") {
			t.Fatalf("rename recorded as action despite failure: %v", res.Actions)
		}
	}
}

func TestUnmatchedRenameIsAllOrNothing(t *testing.T) {
	tab := tableOf([]string{"Name", "Age"}, [][]string{{"a", "1"}})
	out, res := New(nil).Apply(tab, Selection{RenameSpec: "Name:N, Ghost:G"})
	if !reflect.DeepEqual(out.Columns, tab.Columns) {
		t.Fatalf("partial rename applied: %v", out.Columns)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Warnings)
	}
}

func TestParseRenameSpec(t *testing.T) {
	cases := []struct {
		spec    string
		want    map[string]string
		wantErr bool
	}{
		{"a:b", map[string]string{"a": "b"}, false},
		{" a : b , c:d ", map[string]string{"a": "b", "c": "d"}, false},
		{"a-b", nil, true},
		{":b", nil, true},
		{"   ", nil, true},
	}
	for _, tc := range cases {
		got, err := ParseRenameSpec(tc.spec)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("spec %q: expected error", tc.spec)
			}
			continue
		}
		if err != nil {
			t.Fatalf("spec %q: unexpected error %v", tc.spec, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("spec %q: expected %v, got %v", tc.spec, tc.want, got)
		}
	}
}

func TestFiveRowScenario(t *testing.T) {
	// 5 rows, 2 columns, one missing cell, one exact duplicate row.
	tab := tableOf([]string{"A", "B"}, [][]string{
		{"1", "x"},
		{"2", ""},
		{"3", "y"},
		{"1", "x"},
		{"4", "z"},
	})
	before := profile.Analyze(tab)
	out, _ := New(nil).Apply(tab, Selection{DropNulls: true, DropDuplicates: true})

	if out.RowCount() != 3 {
		t.Fatalf("expected 3 surviving rows, got %d", out.RowCount())
	}
	want := [][]string{{"1", "x"}, {"3", "y"}, {"4", "z"}}
	if !reflect.DeepEqual(out.Rows, want) {
		t.Fatalf("survivor order broken: %v", out.Rows)
	}
	if before.DuplicateRows != 1 {
		t.Fatalf("pre-cleaning duplicate count should be 1, got %d", before.DuplicateRows)
	}
}

func TestFixedOrderIgnoresSelectionShape(t *testing.T) {
	tab := tableOf([]string{"A"}, [][]string{{""}, {"x"}, {"x"}})
	out, res := New(nil).Apply(tab, Selection{
		DropDuplicates: true,
		DropNulls:      true,
		FillNulls:      true,
	})
	wantActions := []string{
		"Dropped rows with nulls",
		`Filled missing values with "N/A"`,
		"Removed duplicate rows",
	}
	if !reflect.DeepEqual(res.Actions, wantActions) {
		t.Fatalf("actions out of canonical order: %v", res.Actions)
	}
	if out.RowCount() != 1 {
		t.Fatalf("expected single surviving row, got %d", out.RowCount())
	}
}
