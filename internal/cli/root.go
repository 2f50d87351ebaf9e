package cli

import (
	"context"
	"fmt"

	"github.com/andy/invoicer/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Generate single-page PDF invoices",
	Long: `Invoicer renders fixed-layout PDF invoices from your saved bank details,
beneficiary address and a single service line item.

By default, running invoicer without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command and releases the app afterwards
func Execute() error {
	defer func() {
		if appInstance != nil {
			appInstance.Close()
		}
	}()
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// requireApp initializes the app on first use so that help and
// open never prompt for the database password
func requireApp() (*app.App, error) {
	if appInstance != nil {
		return appInstance, nil
	}
	a, err := app.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	appInstance = a
	return a, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
