package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/liliang-cn/partchat/internal/domain"
	"github.com/spf13/cobra"
)

var (
	askJSON    bool
	askSession string
)

// askCmd runs one conversation turn without the HTTP layer
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Run a single conversation turn from the terminal",
	Example: `  partchat ask "How do I install PS11752778?"
  partchat ask --json "Is PS11752778 compatible with WRF535SWHZ?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the full response as JSON")
	askCmd.Flags().StringVar(&askSession, "session", "", "Continue an existing session")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.chat.Chat(cmd.Context(), &domain.ChatRequest{
		SessionID: askSession,
		Message:   strings.Join(args, " "),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintln(out, resp.Response)
	fmt.Fprintf(out, "\n[intent: %s %.2f, session: %s]\n", resp.Intent.Type, resp.Intent.Confidence, resp.SessionID)
	return nil
}
