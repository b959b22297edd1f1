// Command papertrade is a terminal client for the paper-trading backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/papertrade/internal/app"
	"github.com/bobmcallan/papertrade/internal/common"
)

var (
	configPath string
	userID     string
	ephemeral  bool
	logLevel   string

	papertrade *app.App
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "Paper-trading client: insights, advisor chat, quotes and lessons",
	Long: `papertrade talks to the paper-trading backend and keeps dismissed insights,
lesson progress and theme in a local store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", os.Getenv("PAPERTRADE_USER"), "Backend user id")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep local state in memory only")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(themeCmd)
}

// initApp loads config, applies flag overrides and builds the App.
func initApp() error {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(app.ResolveConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if ephemeral {
		config.Storage.Path = ""
	}
	config.Logging.Level = logLevel

	papertrade, err = app.NewAppWithConfig(config, common.NewLoggerFromConfig(config.Logging))
	return err
}

// requireUser returns the --user flag or an error naming it
func requireUser() (string, error) {
	if userID == "" {
		return "", fmt.Errorf("--user is required (or set PAPERTRADE_USER)")
	}
	return userID, nil
}

func main() {
	err := rootCmd.Execute()
	if papertrade != nil {
		papertrade.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
