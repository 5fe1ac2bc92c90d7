package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datasweep/datasweep-cli/internal/dataset"
	"github.com/datasweep/datasweep-cli/internal/profile"
)

// SampleRows is how many leading rows are embedded in the prompt.
const SampleRows = 5

const promptPreamble = "You're a data cleaning expert. Based on the following dataset, suggest steps to clean and standardize it."

const promptClosing = "Be specific and include common practices like handling missing values, standardizing columns, fixing data types, etc."

// BuildPrompt assembles the suggestion prompt: a fixed preamble, the
// column types and null summary as plain text blocks, and the first few
// sample rows verbatim.
func BuildPrompt(rep *profile.Report, t *dataset.Table) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nColumn Types:\n")
	b.WriteString(rep.TypesText())
	b.WriteString("\nNull Value Summary:\n")
	b.WriteString(rep.NullsText())
	b.WriteString("\nSample Rows:\n")
	b.WriteString(strings.Join(t.Columns, "  "))
	b.WriteString("\n")
	for _, row := range t.Head(SampleRows) {
		b.WriteString(strings.Join(row, "  "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(promptClosing)
	return b.String()
}

// Suggest submits the prompt as a single user-role message and returns
// the completion text. Any failure comes back as a *SuggestionError;
// profiling, cleaning, and export stay usable regardless.
func (c *Client) Suggest(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.Generate(ctx, GenerateRequest{
		Model:       model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", &SuggestionError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &SuggestionError{Err: errors.New("empty response from model")}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", &SuggestionError{Err: fmt.Errorf("model %s returned no content", model)}
	}
	return text, nil
}
