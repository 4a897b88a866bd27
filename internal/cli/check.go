package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitlife-pro/fitlife/internal/llm"
)

var (
	checkProvider string
	checkModel    string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM API key with a small request",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkProvider, "provider", "", "Provider to check (anthropic, openai, openrouter)")
	checkCmd.Flags().StringVar(&checkModel, "model", "", "Model to check")
}

func runCheck(cmd *cobra.Command, args []string) error {
	provider, err := llm.NewProviderWithOverrides(appConfig.LLM, checkProvider, checkModel)
	if err != nil {
		return trackCLIError("check", err)
	}
	return checkProviderKey(cmd, provider)
}

func checkProviderKey(cmd *cobra.Command, provider llm.Provider) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Checking %s key...\n", provider.Name())

	resp, err := llm.Probe(cmd.Context(), provider)
	if err != nil {
		if ue, ok := llm.AsUpstream(err); ok {
			return trackCLIError("check", fmt.Errorf("%s rejected the request with status %d: %w", provider.Name(), ue.StatusCode, err))
		}
		return trackCLIError("check", err)
	}

	_, _ = fmt.Fprintf(out, "OK: %s answered with model %s (%d tokens)\n", provider.Name(), resp.Model, resp.Usage.TotalTokens)
	return nil
}
