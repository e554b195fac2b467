package main

import (
	"github.com/foxboron/go-bootoption/efivar"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info BOOTXXXX",
		Args:  cobra.ExactArgs(1),
		Short: "Show a decoded Boot#### variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := efivar.ParseBootNumber(args[0])
			if err != nil {
				return err
			}
			opt, err := a.efivarfs().GetLoadOption(n, true)
			if err != nil {
				return err
			}
			printLoadOption(cmd.OutOrStdout(), opt)
			return nil
		},
	}
}
