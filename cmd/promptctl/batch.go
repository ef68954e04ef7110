package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Convert every non-empty line of a file, one JSON object per line",
	Long: `Converts each non-empty line of the file concurrently and prints the results
as JSON lines in input order. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Maximum concurrent conversions")
}

type batchLine struct {
	OriginalText string                   `json:"original_text"`
	JSONPrompt   *domain.StructuredPrompt `json:"json_prompt,omitempty"`
	Status       string                   `json:"status,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	lines, err := readLines(cmd, args[0])
	if err != nil {
		return err
	}

	results := make([]batchLine, len(lines))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(batchConcurrency, 1))
	for i, line := range lines {
		g.Go(func() error {
			results[i].OriginalText = line
			result, err := service.Normalize(ctx, line, options())
			if err != nil {
				// Per-line failures are reported in the output, not fatal.
				results[i].Error = err.Error()
				return nil
			}
			results[i].JSONPrompt = result.Prompt
			results[i].Status = result.Status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}
	return nil
}

func readLines(cmd *cobra.Command, path string) ([]string, error) {
	in := cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		in = f
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
