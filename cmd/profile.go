package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datasweep/datasweep-cli/internal/ai"
	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
)

var profilePreviewRows int

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Load a CSV/Excel dataset and print its quality profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, rep, err := loadAndProfile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("File: %s (~%d KB)\n\n", t.Name, t.Size/1024)
		fmt.Print(rep.Text())
		if profilePreviewRows > 0 && t.RowCount() > 0 {
			fmt.Println("\n[PREVIEW]")
			fmt.Println(strings.Join(t.Columns, "  "))
			for _, row := range t.Head(profilePreviewRows) {
				fmt.Println(strings.Join(row, "  "))
			}
		}
		return nil
	},
}

func init() {
	profileCmd.Flags().IntVar(&profilePreviewRows, "preview", ai.SampleRows, "number of leading rows to print (0 disables)")
	rootCmd.AddCommand(profileCmd)
}

func loadAndProfile(path string) (*dataset.Table, *profile.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := dataset.Load(path, data)
	if err != nil {
		return nil, nil, err
	}
	return t, profile.Analyze(t), nil
}
