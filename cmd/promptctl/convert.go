package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert [text]",
	Short: "Convert a single request into a structured prompt",
	Example: `  promptctl convert "Write a Python function to scrape news headlines"
  promptctl convert --format yaml "Create a landscape painting of mountains at sunset"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := service.Normalize(cmd.Context(), strings.Join(args, " "), options())
		if err != nil {
			return err
		}
		if err := writePrompt(cmd.OutOrStdout(), result.Prompt, outputFormat); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), statusLine(result))
		return nil
	},
}

func options() domain.Options {
	return domain.Options{RequireAI: requireAI, MaxFields: numKeys}
}

// writePrompt renders p as indented JSON or YAML, preserving field order.
func writePrompt(w io.Writer, p *domain.StructuredPrompt, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
}
