package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datasweep/datasweep-cli/internal/clean"
	"github.com/datasweep/datasweep-cli/internal/report"
)

var (
	cleanDropNulls bool
	cleanFillNulls bool
	cleanDropDupes bool
	cleanRename    string
	cleanOutput    string
	cleanPDFPath   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Apply cleaning transformations and export the result",
	Long: `Applies the selected transformations in a fixed order (drop-nulls,
fill-nulls, drop-duplicates, rename) and writes the cleaned dataset as
CSV. With --report, also renders the PDF cleaning report; a report
failure never blocks the CSV export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		t, rep, err := loadAndProfile(args[0])
		if err != nil {
			return err
		}
		sel := clean.Selection{
			DropNulls:      cleanDropNulls,
			FillNulls:      cleanFillNulls,
			DropDuplicates: cleanDropDupes,
			RenameSpec:     cleanRename,
		}
		cleaned, res := clean.New(logger).Apply(t, sel)
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}

		out, err := os.Create(cleanOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", cleanOutput, err)
		}
		defer out.Close()
		if err := report.WriteCSV(out, cleaned); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s (%d rows, %d columns)\n", cleanOutput, cleaned.RowCount(), cleaned.ColCount())

		if cleanPDFPath != "" {
			doc := report.NewDocument(rep, cleaned, res.Actions, "")
			f, err := os.Create(cleanPDFPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: report skipped: %v\n", err)
				return nil
			}
			defer f.Close()
			if err := report.WritePDF(f, doc); err != nil {
				fmt.Fprintf(os.Stderr, "⚠ Warning: %v (CSV export unaffected)\n", err)
				return nil
			}
			fmt.Printf("✓ Wrote %s\n", cleanPDFPath)
		}
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDropNulls, "drop-nulls", false, "drop rows with missing values")
	cleanCmd.Flags().BoolVar(&cleanFillNulls, "fill-nulls", false, "fill missing values with placeholder")
	cleanCmd.Flags().BoolVar(&cleanDropDupes, "drop-duplicates", false, "drop duplicate rows")
	cleanCmd.Flags().StringVar(&cleanRename, "rename", "", "rename columns (format: old:new, comma-separated)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", report.CSVFilename, "path for the cleaned CSV")
	cleanCmd.Flags().StringVar(&cleanPDFPath, "report", "", "also write the PDF cleaning report to this path")
	rootCmd.AddCommand(cleanCmd)
}
