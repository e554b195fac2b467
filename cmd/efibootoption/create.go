package main

import (
	"fmt"
	"os"

	"github.com/foxboron/go-bootoption/efi/device"
	"github.com/foxboron/go-bootoption/efi/loader"
	"github.com/foxboron/go-bootoption/efi/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type createOptions struct {
	image     string
	partition int
	loader    string
	label     string
	data      string
	ucs2      bool
	hidden    bool
	output    string
	write     bool
	order     bool
}

func (o *createOptions) loadOption() (*device.LoadOption, error) {
	l, err := loader.FromImage(o.image, o.partition, o.loader)
	if err != nil {
		return nil, err
	}
	opt, err := device.NewLoadOption(o.label, l)
	if err != nil {
		return nil, err
	}
	opt.Attributes.SetHidden(o.hidden)
	if o.data != "" {
		if err := opt.SetOptionalString(o.data, o.ucs2); err != nil {
			return nil, err
		}
	}
	return opt, nil
}

func newCreateCmd(a *app) *cobra.Command {
	o := &createOptions{}
	cmd := &cobra.Command{
		Use:   "create",
		Args:  cobra.NoArgs,
		Short: "Compose a load option for a loader on a partition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.order && !o.write {
				return errors.New("--order needs --write")
			}
			opt, err := o.loadOption()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case o.write:
				n, err := a.efivarfs().CreateLoadOption(opt, o.order)
				if err != nil {
					return err
				}
				printLoadOption(w, opt)
				fmt.Fprintf(w, "Wrote %s\n", n)
			case o.output != "":
				b, err := opt.Bytes()
				if err != nil {
					return err
				}
				if err := os.WriteFile(o.output, b, 0644); err != nil {
					return err
				}
			default:
				b, err := opt.Bytes()
				if err != nil {
					return err
				}
				printLoadOption(w, opt)
				fmt.Fprintln(w, util.HexView(b))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.image, "image", "", "Disk or disk image holding the loader")
	f.IntVar(&o.partition, "partition", 1, "Partition number, starting at 1")
	f.StringVar(&o.loader, "loader", "", "Path of the loader on the partition")
	f.StringVar(&o.label, "label", "", "Description of the load option")
	f.StringVar(&o.data, "data", "", "Optional data passed to the loader")
	f.BoolVar(&o.ucs2, "ucs2", false, "Encode optional data as UCS-2")
	f.BoolVar(&o.hidden, "hidden", false, "Hide the load option from boot menus")
	f.StringVar(&o.output, "output", "", "Write the load option to a file")
	f.BoolVar(&o.write, "write", false, "Write the load option to the next free Boot#### variable")
	f.BoolVar(&o.order, "order", false, "Put the new load option first in the boot order")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("loader")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}
