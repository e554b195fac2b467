package main

import (
	"os"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efivarfs/fswrapper"
	"github.com/spf13/cobra"
)

func newParseCmd(_ *app) *cobra.Command {
	var withAttributes bool
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Args:  cobra.ExactArgs(1),
		Short: "Decode a load option from a file",
		Long: `Decode a load option from a file.

With --efivarfs the file is read as efivarfs presents variables, with the
4 byte attribute prefix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b []byte
			if withAttributes {
				_, buf, err := fswrapper.NewFSWrapper().ReadEfivarsFile(args[0])
				if err != nil {
					return err
				}
				b = buf.Bytes()
			} else {
				var err error
				if b, err = os.ReadFile(args[0]); err != nil {
					return err
				}
			}
			opt, err := device.ParseLoadOption(b, true)
			if err != nil {
				return err
			}
			printLoadOption(cmd.OutOrStdout(), opt)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withAttributes, "efivarfs", false, "File has the efivarfs attribute prefix")
	return cmd
}
