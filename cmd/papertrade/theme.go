package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/papertrade/internal/models"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(models.ThemeLight), string(models.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}

		pref := papertrade.LocalState.Theme(user)
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), pref.Load(cmd.Context()))
			return nil
		}

		theme := models.Theme(args[0])
		if !theme.Valid() {
			return fmt.Errorf("unknown theme %q: use light or dark", args[0])
		}
		if err := pref.Save(cmd.Context(), theme); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
		return nil
	},
}
