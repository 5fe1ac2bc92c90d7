package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the cleaning report as a single-font A4 document.
// Section order is fixed: title, timestamp, shapes, null summary,
// duplicates, actions, suggestions.
func WritePDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 10, "Final Data Cleaning Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(5)

	pdf.MultiCell(0, 8, tr(fmt.Sprintf("File cleaned on: %s", doc.GeneratedAt.Format("2006-01-02 15:04"))), "", "L", false)
	pdf.CellFormat(190, 10, tr(fmt.Sprintf("Original shape: (%d, %d)", doc.OriginalRows, doc.OriginalCols)), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, tr(fmt.Sprintf("Cleaned shape: (%d, %d)", doc.CleanedRows, doc.CleanedCols)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.MultiCell(0, 8, "Null Value Summary:", "", "L", false)
	for _, name := range doc.Profile.Columns {
		if n := doc.Profile.NullCounts[name]; n > 0 {
			pdf.MultiCell(0, 8, tr(fmt.Sprintf("  %s: %d", name, n)), "", "L", false)
		}
	}
	pdf.CellFormat(190, 10, tr(fmt.Sprintf("Duplicate Rows Removed: %d", doc.Profile.DuplicateRows)), "", 1, "L", false, 0, "")

	pdf.Ln(5)
	pdf.MultiCell(0, 8, "Actions Taken:", "", "L", false)
	for _, action := range doc.Actions {
		pdf.MultiCell(0, 8, tr("- "+action), "", "L", false)
	}

	if doc.Suggestions != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 8, tr("AI Suggestions:\n"+doc.Suggestions), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return &ReportError{Err: err}
	}
	return nil
}
