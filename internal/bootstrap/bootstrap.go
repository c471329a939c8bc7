package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/legal-classification-browser/internal/config"
	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
	"github.com/kirillkom/legal-classification-browser/internal/core/usecase"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/export/csvexport"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/export/xlsxexport"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/resilience"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/source"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/source/csvfile"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/source/postgres"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config
	Schema domain.Schema

	Storage  *localfs.Storage
	Source   *source.Cached
	Table    *domain.Table
	Browser  *usecase.BrowseUseCase
	Exporter *usecase.ExportUseCase

	closeFn func()
}

// New resolves the schema, loads the table once and builds the use cases on
// top of it. A load failure is returned as is so callers can stop.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	schema, err := config.ResolveSchema(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}

	storage, err := localfs.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("init data storage: %w", err)
	}

	tableSource, closeFn, err := newTableSource(cfg, schema, storage)
	if err != nil {
		return nil, err
	}

	cached := source.NewCached(tableSource)
	table, err := cached.Load(ctx)
	if err != nil {
		closeFn()
		return nil, fmt.Errorf("load table: %w", err)
	}

	return &App{
		Config:  cfg,
		Schema:  schema,
		Storage: storage,
		Source:  cached,
		Table:   table,

		Browser:  usecase.NewBrowseUseCase(table),
		Exporter: usecase.NewExportUseCase(table, csvexport.New(), xlsxexport.New()),

		closeFn: closeFn,
	}, nil
}

func newTableSource(cfg config.Config, schema domain.Schema, storage ports.ObjectStorage) (ports.TableSource, func(), error) {
	switch cfg.SourceKind {
	case config.SourceKindFile, "":
		return csvfile.New(storage, schema), func() {}, nil
	case config.SourceKindPostgres:
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		pg := postgres.New(db, schema, cfg.PostgresTable, cfg.PostgresOrderColumn)
		return source.NewRetrying(pg, resilience.NewExecutor(retryPolicy(cfg)), "postgres"), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source kind %q", cfg.SourceKind)
	}
}

// retryPolicy maps the retry settings onto a policy. Zero or negative attempts
// mean a single attempt.
func retryPolicy(cfg config.Config) resilience.Policy {
	policy := resilience.DefaultPolicy()
	policy.MaxAttempts = max(cfg.SourceRetryMaxAttempts, 1)
	policy.InitialBackoff = cfg.SourceRetryBackoff
	return policy
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
