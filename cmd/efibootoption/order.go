package main

import (
	"fmt"
	"strings"

	"github.com/foxboron/go-bootoption/efivar"
	"github.com/spf13/cobra"
)

func parseBootNumbers(s string) ([]efivar.BootNumber, error) {
	var ret []efivar.BootNumber
	for _, f := range strings.Split(s, ",") {
		n, err := efivar.ParseBootNumber(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ret = append(ret, n)
	}
	return ret, nil
}

func newOrderCmd(a *app) *cobra.Command {
	var add, remove, set, next string
	cmd := &cobra.Command{
		Use:   "order",
		Args:  cobra.NoArgs,
		Short: "Change the boot order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := a.efivarfs()
			if set != "" {
				order, err := parseBootNumbers(set)
				if err != nil {
					return err
				}
				if err := e.SetBootOrder(order); err != nil {
					return err
				}
			}
			if add != "" {
				n, err := efivar.ParseBootNumber(add)
				if err != nil {
					return err
				}
				if err := e.AddToBootOrder(n, 0); err != nil {
					return err
				}
			}
			if remove != "" {
				n, err := efivar.ParseBootNumber(remove)
				if err != nil {
					return err
				}
				if err := e.RemoveFromBootOrder(n); err != nil {
					return err
				}
			}
			if next != "" {
				n, err := efivar.ParseBootNumber(next)
				if err != nil {
					return err
				}
				if err := e.SetBootNext(n); err != nil {
					return err
				}
			}
			order, err := e.GetBootOrder()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BootOrder: %s\n", formatBootOrder(order))
			return nil
		},
	}
	cmd.Flags().StringVar(&add, "add", "", "Put a Boot#### variable first in the boot order")
	cmd.Flags().StringVar(&remove, "remove", "", "Remove a Boot#### variable from the boot order")
	cmd.Flags().StringVar(&set, "set", "", "Comma separated boot order")
	cmd.Flags().StringVar(&next, "next", "", "Boot this Boot#### variable on the next boot only")
	return cmd
}
