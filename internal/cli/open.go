package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andy/invoicer/internal/service"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [path|invoice-number]",
	Short: "Open a generated invoice in the system PDF viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		// Anything that is not a file is treated as an invoice number
		if _, err := os.Stat(path); err != nil {
			a, err := requireApp()
			if err != nil {
				return err
			}
			rec, err := a.HistoryRepo.GetByNumber(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			path = rec.FilePath
		}

		viewer := service.NewViewer(nil)
		if appInstance != nil {
			viewer = appInstance.Viewer
		}
		if err := viewer.OpenFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
		return nil
	},
}
