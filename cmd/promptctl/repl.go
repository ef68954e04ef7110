package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"json-prompt-generator/backend/internal/features/normalization/domain"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read requests line by line and print a prompt for each",
	Long:  `Starts an interactive loop. Type a request and press enter; type "exit" or "quit" to leave.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("AI backend enabled: %t. Type exit to quit.", service.AIEnabled())))
		for {
			fmt.Fprint(out, promptStyle.Render("> "))
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}

			line := strings.TrimSpace(scanner.Text())
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}

			result, err := service.Normalize(cmd.Context(), line, options())
			if err != nil {
				if errors.Is(err, domain.ErrBackendNotConfigured) || errors.Is(err, domain.ErrEmptyInput) {
					fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
					continue
				}
				return err
			}
			if err := writePrompt(out, result.Prompt, outputFormat); err != nil {
				return err
			}
			fmt.Fprintln(out, statusLine(result))

			if cmd.Context().Err() != nil {
				return nil
			}
		}
	},
}
