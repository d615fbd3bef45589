// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/invoicewiz/invoice-template-mcp/internal/config"
)

// version is overridden at build time with -ldflags.
var version = "dev"

// app carries state resolved once in PersistentPreRunE.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "invoicewiz",
		Short:         "Invoice template recognition",
		Long:          "invoicewiz identifies which known vendor layout an OCR'd invoice came from and categorizes it.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().String("env-file", ".env", "path to a .env file")
	root.PersistentFlags().String("templates-file", "", "YAML rule file with extra templates")
	root.PersistentFlags().Bool("builtin", true, "register the built-in templates")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeMCPCmd(a),
		newServeHTTPCmd(a),
		newRecognizeCmd(a),
		newTemplatesCmd(a),
	)
	return root
}

// init applies the standard precedence (flag > env > file > defaults).
func (a *app) init(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	config.SetDefaults(a.v)
	config.SetupEnv(a.v)

	flags := map[string]string{
		"templates_file": "templates-file",
		"builtin":        "builtin",
		"log_level":      "log-level",
	}
	for key, name := range flags {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return oops.Code(config.CodeConfigLoadFailure).Wrapf(err, "binding flag %s", name)
		}
	}
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := a.v.BindPFlag("http.addr", f); err != nil {
			return oops.Code(config.CodeConfigLoadFailure).Wrapf(err, "binding flag addr")
		}
	}

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return oops.Code(config.CodeConfigLoadFailure).Wrapf(err, "reading config file")
		}
	} else {
		a.v.SetConfigName("invoicewiz")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.config/invoicewiz")
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return oops.Code(config.CodeConfigLoadFailure).Wrapf(err, "reading config")
			}
		}
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
