package main

import (
	"strings"

	"github.com/foxboron/go-bootoption/efi"
	"github.com/foxboron/go-bootoption/efi/attributes"
	"github.com/foxboron/go-bootoption/efivarfs"
	"github.com/foxboron/go-bootoption/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openFunc returns the variable store rooted at dir.
type openFunc func(dir string) *efivarfs.Efivarfs

type app struct {
	v    *viper.Viper
	open openFunc
}

func openEfivarfs(dir string) *efivarfs.Efivarfs {
	if dir == attributes.Efivars {
		return efi.System()
	}
	return efivarfs.NewFS().
		CheckImmutable().
		UnsetImmutable().
		WithRoot(dir).
		Open()
}

func (a *app) efivarfs() *efivarfs.Efivarfs {
	return a.open(a.v.GetString("efivars"))
}

func newRootCmd(open openFunc) *cobra.Command {
	if open == nil {
		open = openEfivarfs
	}
	a := &app{v: viper.New(), open: open}
	a.v.SetEnvPrefix("EFIBOOTOPTION")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:          "efibootoption",
		Short:        "Inspect and compose UEFI load options",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			l := logger.New()
			l.SetOutput(cmd.ErrOrStderr())
			switch {
			case a.v.GetBool("debug"):
				l.SetLevel(logrus.DebugLevel)
			case a.v.GetBool("quiet"):
				l.SetLevel(logrus.ErrorLevel)
			}
			logger.SetDefault(l)
		},
	}
	cmd.PersistentFlags().String("efivars", attributes.Efivars, "efivarfs directory")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.PersistentFlags().Bool("quiet", false, "Only log errors")
	_ = a.v.BindPFlag("efivars", cmd.PersistentFlags().Lookup("efivars"))
	_ = a.v.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("quiet", cmd.PersistentFlags().Lookup("quiet"))

	cmd.AddCommand(
		newListCmd(a),
		newInfoCmd(a),
		newParseCmd(a),
		newCreateCmd(a),
		newOrderCmd(a),
		newDeleteCmd(a),
		newFirmwareSetupCmd(a),
	)
	return cmd
}
