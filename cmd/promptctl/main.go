// Command promptctl converts free-form requests into structured JSON prompts
// from the terminal, using the same pipeline as the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/bootstrap"
	"json-prompt-generator/backend/internal/config"
	"json-prompt-generator/backend/internal/features/normalization/application"
	"json-prompt-generator/backend/internal/logging"
)

var (
	// Global flags
	verbose      bool
	outputFormat string
	requireAI    bool
	numKeys      int

	logger  *zap.Logger
	service application.NormalizationService
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "Turn natural-language requests into structured JSON prompts",
	Long: `promptctl converts a free-form request into a compact JSON prompt.

An AI backend is used when credentials are configured (see AI_PROVIDER and
the provider API key variables); otherwise prompts are built from keyword
heuristics. Either way a prompt is always produced.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		logger, err = logging.NewConsole(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if outputFormat != "json" && outputFormat != "yaml" {
			return fmt.Errorf("unsupported format %q (want json or yaml)", outputFormat)
		}

		pipeline, err := bootstrap.NewPipeline(cmd.Context(), config.Load(), logger)
		if err != nil {
			return err
		}
		service = pipeline.Service
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&requireAI, "ai-only", false, "Fail instead of using heuristics when no AI backend is configured")
	rootCmd.PersistentFlags().IntVarP(&numKeys, "keys", "k", 0, "Maximum number of fields in AI-generated prompts (0 uses the configured cap)")

	rootCmd.AddCommand(convertCmd, replCmd, batchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
