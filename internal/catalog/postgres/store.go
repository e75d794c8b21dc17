// Package postgres provides a Postgres-backed shade catalog that mirrors
// the SQLite store semantics for shared deployments.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"denticore/pkg/domain"
)

const (
	defaultDriver = "pgx"
	// Default DSN mirrors local development defaults; override via env.
	defaultDSN = "postgres://localhost/denticore?sslmode=disable"
)

const schema = `CREATE TABLE IF NOT EXISTS shade_catalog (
	product_line TEXT NOT NULL,
	shade        TEXT NOT NULL,
	type         TEXT NOT NULL,
	PRIMARY KEY (product_line, shade)
)`

// Store persists the shade catalog in Postgres.
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres-backed catalog using the provided DSN (falls
// back to defaultDSN) and ensures the schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create shade_catalog table: %w", err)
	}
	return &Store{db: db}, nil
}

// Lookup returns all shades for the product line, body rows first.
func (s *Store) Lookup(ctx context.Context, productLine string) ([]domain.CatalogShade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT shade, type, product_line FROM shade_catalog
		WHERE product_line = $1
		ORDER BY CASE type WHEN 'body' THEN 0 WHEN 'universal' THEN 1 ELSE 2 END, shade`, productLine)
	if err != nil {
		return nil, fmt.Errorf("select shades: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []domain.CatalogShade
	for rows.Next() {
		var row domain.CatalogShade
		if err := rows.Scan(&row.Shade, &row.Type, &row.ProductLine); err != nil {
			return nil, fmt.Errorf("scan shade: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shades: %w", err)
	}
	return out, nil
}

// Import upserts rows keyed by (product line, shade) in one transaction.
func (s *Store) Import(ctx context.Context, entries []domain.CatalogShade) (written int, retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, row := range entries {
		if row.ProductLine == "" || row.Shade == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO shade_catalog(product_line, shade, type) VALUES($1,$2,$3)
			ON CONFLICT(product_line, shade) DO UPDATE SET type=excluded.type`,
			row.ProductLine, row.Shade, string(row.Type)); err != nil {
			retErr = fmt.Errorf("upsert %s/%s: %w", row.ProductLine, row.Shade, err)
			return 0, retErr
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
