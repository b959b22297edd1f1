package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the scripted investment advisor",
	Long: `With a message argument, send one message and print the reply.
Without arguments, start an interactive session; type "exit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			transcript, err := papertrade.AdvisorService.Ask("", strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, transcript.Messages[len(transcript.Messages)-1].Content)
			return nil
		}

		fmt.Fprintln(out, "Ask me about stocks, crypto, risk or diversification. Try \"quiz me\". Type exit to leave.")

		sessionID := ""
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			transcript, err := papertrade.AdvisorService.Ask(sessionID, line)
			if err != nil {
				return err
			}
			sessionID = transcript.SessionID
			fmt.Fprintf(out, "%s\n\n", transcript.Messages[len(transcript.Messages)-1].Content)
		}

		if sessionID != "" {
			papertrade.AdvisorService.Close(sessionID)
		}
		return scanner.Err()
	},
}
