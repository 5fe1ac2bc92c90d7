// Package report serializes a cleaned table and renders the cleaning
// report document. The two exports are independent: a PDF failure never
// blocks the CSV path.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
)

// Canonical export filenames.
const (
	CSVFilename = "cleaned_data.csv"
	PDFFilename = "cleaning_report.pdf"
)

// ReportError wraps a document-rendering failure.
type ReportError struct {
	Err error
}

func (e *ReportError) Error() string { return fmt.Sprintf("report generation failed: %v", e.Err) }

func (e *ReportError) Unwrap() error { return e.Err }

// Document holds everything the PDF report renders, in order.
type Document struct {
	GeneratedAt   time.Time
	OriginalRows  int
	OriginalCols  int
	CleanedRows   int
	CleanedCols   int
	Profile       *profile.Report
	Actions       []string
	Suggestions   string
}

// NewDocument assembles a report from the pre-cleaning profile and the
// cleaning outcome.
func NewDocument(rep *profile.Report, cleaned *dataset.Table, actions []string, suggestions string) Document {
	return Document{
		GeneratedAt:  time.Now(),
		OriginalRows: rep.Rows,
		OriginalCols: rep.Cols,
		CleanedRows:  cleaned.RowCount(),
		CleanedCols:  cleaned.ColCount(),
		Profile:      rep,
		Actions:      actions,
		Suggestions:  suggestions,
	}
}

// WriteCSV serializes the table as UTF-8 comma-separated text with a
// header row and no index column.
func WriteCSV(w io.Writer, t *dataset.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
