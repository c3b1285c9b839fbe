package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablasso/sensei/internal/config"
	"github.com/pablasso/sensei/internal/schedule"
)

var (
	auditQuestion string
	auditAPIKey   string
	auditModel    string
	auditBaseURL  string
	auditAll      bool
)

func init() {
	auditCmd.Flags().StringVarP(&auditQuestion, "question", "q", "", "Ask a specific question instead of running the full audit")
	auditCmd.Flags().StringVar(&auditAPIKey, "api-key", "", "API key (defaults to SENSEI_API_KEY or OPENAI_API_KEY)")
	auditCmd.Flags().StringVar(&auditModel, "model", "", "Model identifier (overrides config)")
	auditCmd.Flags().StringVar(&auditBaseURL, "base-url", "", "Chat service base URL, for OpenAI-compatible endpoints (overrides config)")
	auditCmd.Flags().BoolVar(&auditAll, "include-summary", false, "Include summary rows in the data sent to the AI")
}

var auditCmd = &cobra.Command{
	Use:   "audit <file.xml>",
	Short: "Send a schedule to the AI for review",
	Long: `Parse an MS Project XML export and send it to the chat service. Without
--question the AI performs a full audit; with it, the AI answers the question
against the schedule data.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	tasks, err := schedule.Parse(f)
	if err != nil {
		return err
	}
	if !auditAll {
		tasks = schedule.ForAnalysis(tasks)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if auditModel != "" {
		cfg.AI.Model = auditModel
	}
	if auditBaseURL != "" {
		cfg.AI.BaseURL = auditBaseURL
	}

	key := auditAPIKey
	if key == "" {
		key = config.APIKey()
	}

	response, err := cfg.Client(key).Consult(cmd.Context(), tasks, auditQuestion)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), response)
	return nil
}
