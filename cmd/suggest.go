package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datasweep/datasweep-cli/internal/ai"
)

var suggestModel string

var suggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Ask the AI model for cleaning suggestions for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration unavailable; set DATASWEEP_API_KEY or run 'datasweep config set api_key <key>'")
		}
		t, rep, err := loadAndProfile(args[0])
		if err != nil {
			return err
		}
		model := cfg.Model
		if suggestModel != "" {
			model = suggestModel
		}
		prompt := ai.BuildPrompt(rep, t)

		// Generous outer bound; the HTTP client enforces its own timeout.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		text, err := newAIClient().Suggest(ctx, model, prompt, cfg.MaxTokens, cfg.Temperature)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestModel, "model", "", "model identifier (overrides config)")
	rootCmd.AddCommand(suggestCmd)
}
