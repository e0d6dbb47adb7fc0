package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [text|-]",
	Short:   "Identify the slang in a text and print it as JSON",
	Example: `slangscope analyze "That new track is fire, no cap."` + "\n" + `cat post.txt | slangscope analyze -`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, a models.Analyzer) (any, error) {
			text, err := textArg(cmd, args)
			if err != nil {
				return nil, err
			}
			return a.AnalyzeSlang(ctx, models.AnalysisRequest{Text: text})
		})
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text|-]",
	Short: "Summarize the origin and age demographic of the slang in a text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, a models.Analyzer) (any, error) {
			text, err := textArg(cmd, args)
			if err != nil {
				return nil, err
			}
			return a.GetSlangSummary(ctx, models.AnalysisRequest{Text: text})
		})
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Describe a single slang term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(cmd, func(ctx context.Context, a models.Analyzer) (any, error) {
			return a.LookupTerm(ctx, models.LookupRequest{Slang: strings.Join(args, " ")})
		})
	},
}

func runOneShot(
	cmd *cobra.Command,
	fn func(ctx context.Context, a models.Analyzer) (any, error),
) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error configuring SlangScope: %w", err)
	}
	config.SetLogLevel(cfg)

	ctx := cmd.Context()
	appState, err := newOneShotAppState(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := fn(ctx, appState.Analyzer)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), result)
}

// textArg returns the text argument, reading stdin when it is "-" or missing.
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
