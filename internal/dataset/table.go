package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind is the declared type label of a column, inferred from the
// predominant parse result of its non-missing cells.
type Kind string

const (
	KindNumeric  Kind = "numeric"
	KindDatetime Kind = "datetime"
	KindBoolean  Kind = "boolean"
	KindText     Kind = "text"
)

// Table is an in-memory rectangular dataset: ordered named columns over
// row-major string cells. Missing cells are normalized to "" by the
// loader, so Missing is a plain empty check everywhere downstream.
type Table struct {
	Columns []string
	Rows    [][]string

	// Incidental metadata for display only.
	Name string
	Size int
}

func (t *Table) RowCount() int { return len(t.Rows) }

func (t *Table) ColCount() int { return len(t.Columns) }

// Clone deep-copies the table so cleaning never mutates the original.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
		Name:    t.Name,
		Size:    t.Size,
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Head returns up to n leading rows, in original order.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Missing reports whether a cell holds the missing-value marker.
func Missing(cell string) bool { return cell == "" }

// Kinds infers a Kind per column by majority vote over non-missing
// cells. Columns with no values at all report as text.
func (t *Table) Kinds() []Kind {
	kinds := make([]Kind, len(t.Columns))
	for j := range t.Columns {
		var num, dt, boolean, txt int
		for _, row := range t.Rows {
			if j >= len(row) || Missing(row[j]) {
				continue
			}
			v := row[j]
			switch {
			case isNumeric(v):
				num++
			case isBool(v):
				boolean++
			case isDatetime(v):
				dt++
			default:
				txt++
			}
		}
		switch {
		case num > 0 && num >= dt && num >= boolean && num >= txt:
			kinds[j] = KindNumeric
		case boolean > 0 && boolean >= dt && boolean >= txt:
			kinds[j] = KindBoolean
		case dt > 0 && dt >= txt:
			kinds[j] = KindDatetime
		default:
			kinds[j] = KindText
		}
	}
	return kinds
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

func isBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05",
}

func isDatetime(s string) bool {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}
