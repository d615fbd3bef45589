// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/invoicewiz/invoice-template-mcp/internal/httpapi"
	"github.com/invoicewiz/invoice-template-mcp/internal/tool"
)

func newServeMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the invoice template tools over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(a.cfg, cmd.ErrOrStderr())
			engine, err := buildEngine(a.cfg, logger)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{Name: "invoicewiz", Version: version}, nil)
			tool.New(engine).Register(server)

			logger.Info("serving MCP over stdio", "templates", engine.Store().Len())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

func newServeHTTPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Serve the recognition engine over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(a.cfg, cmd.ErrOrStderr())
			engine, err := buildEngine(a.cfg, logger)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              a.cfg.HTTP.Addr,
				Handler:           httpapi.NewRouter(engine, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving HTTP", "addr", srv.Addr, "templates", engine.Store().Len())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return oops.Code("server.start.failure").Wrapf(err, "serving HTTP")
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return oops.Code("server.shutdown.failure").Wrapf(err, "shutting down HTTP server")
			}
			return nil
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	return cmd
}
