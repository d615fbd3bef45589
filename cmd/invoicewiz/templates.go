// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition/rules"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Print the registered templates as a YAML rule file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := buildEngine(a.cfg, newLogger(a.cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			var templates []recognition.Template
			if category != "" {
				templates = engine.TemplatesByCategory(category)
			} else {
				templates = engine.Templates()
			}

			out, err := rules.Marshal(templates)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only print templates in this category")
	return cmd
}
