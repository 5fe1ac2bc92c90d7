package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// LoadError wraps any failure to turn an uploaded file into a Table.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Name, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Literals normalized to the missing marker on load, so downstream
// missing checks reduce to an empty-string comparison.
var naLiterals = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

// Load parses raw bytes into a Table based on the filename extension.
// CSV content is decoded as UTF-8 with a one-shot Latin-1 retry; .xlsx
// and .xls are read from the first sheet of the workbook.
func Load(name string, data []byte) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(name))
	var (
		t   *Table
		err error
	)
	switch ext {
	case ".csv":
		t, err = loadCSV(data)
	case ".xlsx", ".xls":
		t, err = loadExcel(data)
	default:
		err = fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	t.Name = filepath.Base(name)
	t.Size = len(data)
	return t, nil
}

func loadCSV(data []byte) (*Table, error) {
	if !utf8.Valid(data) {
		// Latin-1 maps every byte, so a second failure here is a real
		// parse problem rather than an encoding one.
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return fromRecords(records), nil
}

func loadExcel(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	return fromRecords(records), nil
}

// fromRecords builds a Table from a header row plus data rows, padding
// ragged rows to the header width and normalizing NA literals.
func fromRecords(records [][]string) *Table {
	header := records[0]
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		cols[i] = h
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(cols))
		for j := range cols {
			if j < len(rec) {
				row[j] = normalizeCell(rec[j])
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: cols, Rows: rows}
}

func normalizeCell(v string) string {
	v = strings.TrimSpace(v)
	if _, ok := naLiterals[strings.ToLower(v)]; ok {
		return ""
	}
	return v
}
