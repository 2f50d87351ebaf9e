package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		invoices, err := a.InvoiceService.History(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(invoices) == 0 {
			fmt.Fprintln(out, "No invoices generated yet")
			return nil
		}

		fmt.Fprintf(out, "%-10s %-18s %-25s %12s  %s\n", "Number", "Date", "Client", "Total", "File")
		fmt.Fprintln(out, "--------------------------------------------------------------------------------------------")
		for _, inv := range invoices {
			fmt.Fprintf(out, "%-10s %-18s %-25s %12s  %s\n",
				truncate(inv.InvoiceNumber, 10),
				truncate(inv.InvoiceDate, 18),
				truncate(inv.ClientName, 25),
				"$"+inv.Total.StringFixed(2),
				inv.FilePath,
			)
		}

		fmt.Fprintf(out, "\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of invoices to show (0 for all)")
}
