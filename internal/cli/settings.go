package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/andy/invoicer/internal/domain"
	"github.com/andy/invoicer/internal/render"
	"github.com/andy/invoicer/internal/repository"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage saved bank details, beneficiary address and numbering",
}

var settingsBankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Show or change the bank details printed under PAYMENT INFORMATION",
}

var settingsBankShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved bank details",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		bank, err := a.SettingsRepo.GetBank(context.Background())
		if err != nil {
			return notConfigured(cmd.OutOrStdout(), err, "invoicer settings bank set")
		}
		for _, line := range render.BankLines(bank) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var settingsBankSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save bank details (unchanged flags keep their saved values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		bank, err := a.SettingsRepo.GetBank(ctx)
		if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
			return err
		}

		applyStringFlags(cmd, map[string]*string{
			"account-name":   &bank.BeneficiaryAccountName,
			"bank-name":      &bank.BankName,
			"bank-address":   &bank.BankAddress,
			"account-type":   &bank.AccountType,
			"account-number": &bank.AccountNumber,
			"routing":        &bank.WireRouting,
			"swift":          &bank.SwiftCode,
		})

		if err := domain.ValidateBank(bank); err != nil {
			return err
		}
		if err := a.SettingsRepo.SaveBank(ctx, bank); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Bank details saved")
		return nil
	},
}

var settingsAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show or change the beneficiary address printed under FROM",
}

var settingsAddressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved beneficiary address",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		addr, err := a.SettingsRepo.GetAddress(context.Background())
		if err != nil {
			return notConfigured(cmd.OutOrStdout(), err, "invoicer settings address set")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, addr.AddressLine1)
		if line2, ok := domain.Present(addr.AddressLine2); ok {
			fmt.Fprintln(out, line2)
		}
		fmt.Fprintf(out, "%s, %s - %s\n", addr.City, addr.State, addr.Zip)
		return nil
	},
}

var settingsAddressSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the beneficiary address (unchanged flags keep their saved values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		addr, err := a.SettingsRepo.GetAddress(ctx)
		if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
			return err
		}

		line2 := domain.Deref(addr.AddressLine2)
		applyStringFlags(cmd, map[string]*string{
			"line1": &addr.AddressLine1,
			"line2": &line2,
			"city":  &addr.City,
			"state": &addr.State,
			"zip":   &addr.Zip,
		})
		addr.AddressLine2 = domain.Optional(line2)

		if err := domain.ValidateAddress(addr); err != nil {
			return err
		}
		if err := a.SettingsRepo.SaveAddress(ctx, addr); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Beneficiary address saved")
		return nil
	},
}

var settingsSequenceCmd = &cobra.Command{
	Use:   "sequence [n]",
	Short: "Show or set the last used invoice number",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := context.Background()

		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid sequence: %w", err)
			}
			if err := a.SettingsRepo.SetSequence(ctx, n); err != nil {
				return err
			}
		}

		n, err := a.SettingsRepo.GetSequence(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Last invoice number: %d (next: %d)\n", n, n+1)
		return nil
	},
}

func applyStringFlags(cmd *cobra.Command, fields map[string]*string) {
	for name, dest := range fields {
		if cmd.Flags().Changed(name) {
			*dest, _ = cmd.Flags().GetString(name)
		}
	}
}

func notConfigured(out io.Writer, err error, hint string) error {
	if errors.Is(err, repository.ErrSettingNotFound) {
		fmt.Fprintf(out, "Not configured yet. Run '%s'.\n", hint)
		return nil
	}
	return err
}

func init() {
	settingsCmd.AddCommand(settingsBankCmd)
	settingsCmd.AddCommand(settingsAddressCmd)
	settingsCmd.AddCommand(settingsSequenceCmd)

	settingsBankCmd.AddCommand(settingsBankShowCmd)
	settingsBankCmd.AddCommand(settingsBankSetCmd)
	settingsAddressCmd.AddCommand(settingsAddressShowCmd)
	settingsAddressCmd.AddCommand(settingsAddressSetCmd)

	settingsBankSetCmd.Flags().String("account-name", "", "Beneficiary/account name")
	settingsBankSetCmd.Flags().String("bank-name", "", "Bank name")
	settingsBankSetCmd.Flags().String("bank-address", "", "Bank address")
	settingsBankSetCmd.Flags().String("account-type", "", "Account type (e.g. Checking)")
	settingsBankSetCmd.Flags().String("account-number", "", "Account number")
	settingsBankSetCmd.Flags().String("routing", "", "Wire routing number")
	settingsBankSetCmd.Flags().String("swift", "", "SWIFT code")

	settingsAddressSetCmd.Flags().String("line1", "", "Address line 1")
	settingsAddressSetCmd.Flags().String("line2", "", "Address line 2")
	settingsAddressSetCmd.Flags().String("city", "", "City")
	settingsAddressSetCmd.Flags().String("state", "", "State")
	settingsAddressSetCmd.Flags().String("zip", "", "ZIP / postal code")
}
