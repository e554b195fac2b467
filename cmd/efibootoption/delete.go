package main

import (
	"fmt"

	"github.com/foxboron/go-bootoption/efivar"
	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete BOOTXXXX",
		Args:  cobra.ExactArgs(1),
		Short: "Delete a Boot#### variable and drop it from the boot order",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := efivar.ParseBootNumber(args[0])
			if err != nil {
				return err
			}
			if err := a.efivarfs().DeleteLoadOption(n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", n)
			return nil
		},
	}
}

func newFirmwareSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "firmware-setup",
		Args:  cobra.NoArgs,
		Short: "Boot into the firmware setup on the next boot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.efivarfs().SetRebootToFirmwareUI()
		},
	}
}
