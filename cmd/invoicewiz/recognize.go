// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext/decoders"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

type recognizeOutput struct {
	Matched  bool                         `json:"matched"`
	Match    *recognition.TemplateMatch   `json:"match,omitempty"`
	Category string                       `json:"category"`
	Scores   []recognition.ScoreBreakdown `json:"scores,omitempty"`
}

func newRecognizeCmd(a *app) *cobra.Command {
	var (
		format  string
		vendor  string
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "recognize [file|-]",
		Short: "Recognize the template of an OCR'd invoice",
		Long:  "Reads OCR output from a file (or stdin when the argument is '-' or omitted) and prints the matching template and category as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(a.cfg, cmd.ErrOrStderr())
			engine, err := buildEngine(a.cfg, logger)
			if err != nil {
				return err
			}

			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			content, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}

			text, err := decoders.DefaultPipeline().Text(cmd.Context(), ocrtext.Source{
				Content: content,
				Format:  format,
				ID:      name,
			})
			if err != nil {
				return oops.Code("cli.input.invalid").Wrapf(err, "decoding %s", name)
			}

			var inv *recognition.Invoice
			if cmd.Flags().Changed("vendor") {
				inv = &recognition.Invoice{VendorName: &vendor}
			}

			match, ok := engine.Recognize(text, inv)
			out := recognizeOutput{
				Matched:  ok,
				Match:    match,
				Category: engine.Categorize(match, inv),
			}
			if explain {
				out.Scores = engine.Explain(text, inv)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: text or lines (auto-detected when empty)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor name already extracted from the invoice")
	cmd.Flags().BoolVar(&explain, "explain", false, "include per-template score breakdown")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, oops.Code("cli.input.invalid").Wrapf(err, "reading stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, oops.Code("cli.input.invalid").With("path", name).Wrapf(err, "reading input file")
	}
	return data, nil
}
