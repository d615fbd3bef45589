// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/invoicewiz/invoice-template-mcp/internal/config"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition/rules"
)

// newLogger writes text logs to w, which must not be stdout when stdout
// carries the MCP transport.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// buildEngine creates the recognition engine described by cfg.
func buildEngine(cfg *config.Config, logger *slog.Logger) (*recognition.Engine, error) {
	opts := []recognition.Option{recognition.WithLogger(logger)}
	if !cfg.Builtin {
		opts = append(opts, recognition.WithoutBuiltins())
	}
	engine := recognition.NewEngine(opts...)

	if cfg.TemplatesFile != "" {
		n, err := rules.LoadInto(engine, cfg.TemplatesFile)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded invoice templates", "path", cfg.TemplatesFile, "count", n)
	}
	return engine, nil
}
