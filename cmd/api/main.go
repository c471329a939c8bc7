package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/kirillkom/legal-classification-browser/internal/adapters/http"
	"github.com/kirillkom/legal-classification-browser/internal/bootstrap"
	"github.com/kirillkom/legal-classification-browser/internal/config"
	"github.com/kirillkom/legal-classification-browser/internal/observability/logging"
	"github.com/kirillkom/legal-classification-browser/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("browser-api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics("browser-api")
	httpMetrics.SetBaseRecords(app.Table.Len())
	logger.Info("table loaded",
		"variant", app.Schema.Variant,
		"source_kind", cfg.SourceKind,
		"source_file", app.Schema.SourceFile,
		"records", app.Table.Len(),
	)

	router := httpadapter.NewRouter(cfg, app.Browser, app.Exporter, httpMetrics).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown error", "error", err)
	}
}
