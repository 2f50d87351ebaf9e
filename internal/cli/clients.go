package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andy/invoicer/internal/app"
	"github.com/andy/invoicer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage saved clients",
	Long:  `List, add, edit, and archive the clients used to fill the BILL TO section.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		includeArchived, _ := cmd.Flags().GetBool("archived")

		clients, err := a.ClientRepo.List(context.Background(), includeArchived)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(clients) == 0 {
			fmt.Fprintln(out, "No clients found")
			return nil
		}

		fmt.Fprintf(out, "%-5s %-30s %-30s %-12s %-10s\n", "ID", "Name", "Address", "Hourly Rate", "Status")
		fmt.Fprintln(out, "------------------------------------------------------------------------------------------")

		for _, client := range clients {
			status := "Active"
			if client.IsArchived {
				status = "Archived"
			}
			fmt.Fprintf(out, "%-5d %-30s %-30s %-12s %-10s\n",
				client.ID,
				truncate(client.Name, 30),
				truncate(client.AddressLine1, 30),
				"$"+client.HourlyRate.StringFixed(2),
				status,
			)
		}

		fmt.Fprintf(out, "\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		address1, _ := cmd.Flags().GetString("address1")
		rate, err := decimalFlag(cmd, "rate")
		if err != nil {
			return err
		}

		client := domain.NewSavedClient(args[0], address1, rate)
		client.AddressLine2, _ = cmd.Flags().GetString("address2")
		client.Email, _ = cmd.Flags().GetString("email")

		if err := a.ClientRepo.Create(context.Background(), client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client created: %s (ID: %d)\n", client.Name, client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		client, err := clientByID(ctx, a, args[0])
		if err != nil {
			return err
		}

		for name, dest := range map[string]*string{
			"name":     &client.Name,
			"address1": &client.AddressLine1,
			"address2": &client.AddressLine2,
			"email":    &client.Email,
		} {
			if cmd.Flags().Changed(name) {
				*dest, _ = cmd.Flags().GetString(name)
			}
		}
		if cmd.Flags().Changed("rate") {
			if client.HourlyRate, err = decimalFlag(cmd, "rate"); err != nil {
				return err
			}
		}

		if err := a.ClientRepo.Update(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsArchiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Archive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		client, err := clientByID(ctx, a, args[0])
		if err != nil {
			return err
		}

		if err := a.ClientRepo.Archive(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to archive client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client archived: %s\n", client.Name)
		return nil
	},
}

var clientsUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [id]",
	Short: "Unarchive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		client, err := clientByID(ctx, a, args[0])
		if err != nil {
			return err
		}

		if err := a.ClientRepo.Unarchive(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to unarchive client: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Client unarchived: %s\n", client.Name)
		return nil
	},
}

func clientByID(ctx context.Context, a *app.App, arg string) (*domain.SavedClient, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID: %w", err)
	}
	client, err := a.ClientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return client, nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsArchiveCmd)
	clientsCmd.AddCommand(clientsUnarchiveCmd)

	// List flags
	clientsListCmd.Flags().Bool("archived", false, "Include archived clients")

	// Add flags
	clientsAddCmd.Flags().String("address1", "", "Address line 1 (required)")
	clientsAddCmd.MarkFlagRequired("address1")
	clientsAddCmd.Flags().String("address2", "", "Address line 2")
	clientsAddCmd.Flags().String("email", "", "Client email")
	clientsAddCmd.Flags().String("rate", "0", "Default hourly rate")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("address1", "", "New address line 1")
	clientsEditCmd.Flags().String("address2", "", "New address line 2")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("rate", "", "New default hourly rate")
}
