package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var lessonSections int

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Show or update lesson progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		all, err := papertrade.LessonService.All(cmd.Context(), user)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(all) == 0 {
			fmt.Fprintln(out, "No lessons started.")
			return nil
		}

		ids := make([]string, 0, len(all))
		for id := range all {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			lp := all[id]
			status := "in progress"
			if lp.Completed {
				status = "completed"
			}
			fmt.Fprintf(out, "%-24s section %d  quiz answers %d  %s\n", id, lp.CurrentSection+1, lp.QuizAnswered, status)
		}
		return nil
	},
}

var lessonAdvanceCmd = &cobra.Command{
	Use:   "advance [lesson-id]",
	Short: "Move to the next section of a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		lp, err := papertrade.LessonService.Advance(cmd.Context(), user, args[0], lessonSections)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: section %d of %d\n", args[0], lp.CurrentSection+1, lessonSections)
		return nil
	},
}

var lessonCompleteCmd = &cobra.Command{
	Use:   "complete [lesson-id]",
	Short: "Mark a lesson as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		if _, err := papertrade.LessonService.Complete(cmd.Context(), user, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s completed\n", args[0])
		return nil
	},
}

func init() {
	lessonAdvanceCmd.Flags().IntVar(&lessonSections, "sections", 5, "Number of sections in the lesson")
	lessonsCmd.AddCommand(lessonAdvanceCmd)
	lessonsCmd.AddCommand(lessonCompleteCmd)
}
