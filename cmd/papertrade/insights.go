package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/papertrade/internal/models"
)

var insightsAll bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show portfolio insights",
	Long:  `Fetch the portfolio and evaluate insights. Dismissed insights are hidden unless --all is set.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		list, err := papertrade.InsightService.ForUser(cmd.Context(), user, insightsAll)
		if err != nil {
			return err
		}

		printInsights(cmd.OutOrStdout(), list)
		return nil
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss [insight-id]",
	Short: "Hide an insight until dismissals are reset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		if err := papertrade.InsightService.Dismiss(cmd.Context(), user, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", args[0])
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Show all dismissed insights again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		if err := papertrade.InsightService.ResetDismissed(cmd.Context(), user); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Dismissed insights cleared")
		return nil
	},
}

func init() {
	insightsCmd.Flags().BoolVarP(&insightsAll, "all", "a", false, "Show every triggered insight, including dismissed ones")
}

func printInsights(w io.Writer, list *models.InsightList) {
	if len(list.Insights) == 0 {
		fmt.Fprintln(w, "No insights right now.")
	}
	for _, ins := range list.Insights {
		fmt.Fprintf(w, "[%s] %s\n", ins.Type, ins.Title)
		fmt.Fprintf(w, "  %s\n", ins.ShortText)
		fmt.Fprintf(w, "  id: %s  learn more: %s\n\n", ins.ID, ins.LearnMoreLink)
	}
	if list.Hidden > 0 {
		fmt.Fprintf(w, "%d dismissed (use --all to show, reset to restore)\n", list.Hidden)
	}
}
