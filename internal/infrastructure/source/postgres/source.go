package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/infrastructure/source"
)

// Source loads the base table from a read-only SQL table. All columns are
// selected so exports carry the full row.
type Source struct {
	db          *sql.DB
	schema      domain.Schema
	table       string
	orderColumn string
}

// OpenDB prepares the connection pool without connecting. The first query
// reports an unreachable server as ErrSourceUnavailable.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func New(db *sql.DB, schema domain.Schema, table, orderColumn string) *Source {
	return &Source{
		db:          db,
		schema:      schema,
		table:       table,
		orderColumn: orderColumn,
	}
}

func (s *Source) Query() string {
	query := "SELECT * FROM " + quoteIdentifier(s.table)
	if s.orderColumn != "" {
		query += " ORDER BY " + quoteIdentifier(s.orderColumn)
	}
	return query
}

func (s *Source) Load(ctx context.Context) (*domain.Table, error) {
	rows, err := s.db.QueryContext(ctx, s.Query())
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceUnavailable, "query "+s.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, domain.WrapError(domain.ErrSourceInvalid, "read columns", err)
	}

	var data [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, domain.WrapError(domain.ErrSourceInvalid, "scan row", err)
		}

		cells := make([]string, len(header))
		for i, v := range values {
			if v.Valid {
				cells[i] = v.String
			}
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrSourceUnavailable, "iterate rows", err)
	}

	return source.BuildTable(s.schema, header, data)
}

// quoteIdentifier accepts schema-qualified names such as public.projects.
func quoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
