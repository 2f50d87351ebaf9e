package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database. Generated PDF files are never deleted.

Examples:
  invoicer reset history    # Forget generated invoices
  invoicer reset all        # Wipe settings, clients and history`,
}

var resetHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Delete the generated invoice history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return resetTables(cmd, "This will delete the invoice history. Continue?",
			"Invoice history deleted.", "invoice_history")
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: settings, clients, history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return resetTables(cmd, "This will delete ALL data (settings, clients, history). Continue?",
			"All data has been deleted.", "invoice_history", "clients", "settings")
	},
}

func resetTables(cmd *cobra.Command, prompt, done string, tables ...string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	a, err := requireApp()
	if err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := a.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetHistoryCmd)
	resetCmd.AddCommand(resetAllCmd)
	resetCmd.PersistentFlags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
