package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/legal-classification-browser/internal/adapters/mcp"
	"github.com/kirillkom/legal-classification-browser/internal/bootstrap"
	"github.com/kirillkom/legal-classification-browser/internal/config"
	"github.com/kirillkom/legal-classification-browser/internal/observability/logging"
)

// stdout carries the protocol, so logs go to stderr.
func main() {
	cfg := config.Load()
	logger := logging.NewJSONLoggerTo(os.Stderr, "browser-mcp", cfg.LogLevel)
	slog.SetDefault(logger)

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	logger.Info("table loaded", "variant", app.Schema.Variant, "records", app.Table.Len())

	s := mcpadapter.NewServer(cfg.MCPServerName, app.Browser, app.Exporter)
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", "error", err)
	}
}
