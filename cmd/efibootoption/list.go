package main

import (
	"fmt"
	"os"

	"github.com/foxboron/go-bootoption/efi"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Args:  cobra.NoArgs,
		Short: "List the boot order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := a.efivarfs()
			w := cmd.OutOrStdout()

			if n, err := e.GetBootCurrent(); err == nil {
				fmt.Fprintf(w, "BootCurrent: %04X\n", uint16(n))
			} else if !errors.Is(err, os.ErrNotExist) {
				logger.Warnf("could not read BootCurrent: %v", err)
			}
			if n, err := e.GetBootNext(); err == nil {
				fmt.Fprintf(w, "BootNext: %04X\n", uint16(n))
			}
			if t, err := e.GetTimeout(); err == nil {
				fmt.Fprintf(w, "Timeout: %d seconds\n", t)
			}

			order, err := e.GetBootOrder()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "BootOrder: %s\n", formatBootOrder(order))
			entries, err := efi.GetBootEntries(e, false)
			if err != nil {
				return err
			}
			for _, opt := range entries {
				active := " "
				if opt.Attributes.Active() {
					active = "*"
				}
				fmt.Fprintf(w, "%s%s %s\n", opt.BootNumber, active, opt.Description)
			}
			return nil
		},
	}
}
