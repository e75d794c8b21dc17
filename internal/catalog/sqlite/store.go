// Package sqlite provides a SQLite-backed shade catalog using the pure Go
// driver, suitable for single-node deployments and the CLI.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"denticore/pkg/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS shade_catalog (
	product_line TEXT NOT NULL,
	shade        TEXT NOT NULL,
	type         TEXT NOT NULL,
	PRIMARY KEY (product_line, shade)
)`

// Store persists the shade catalog in a single SQLite table.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the catalog database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "denticore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create shade_catalog table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Lookup returns all shades registered for the product line. Ordering puts
// body rows first, then universal, then the remaining types, so resolvers
// scanning in order see replacement candidates by priority.
func (s *Store) Lookup(ctx context.Context, productLine string) ([]domain.CatalogShade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT shade, type, product_line FROM shade_catalog
		WHERE product_line = ?
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
		if _, err := tx.ExecContext(ctx, `INSERT INTO shade_catalog(product_line, shade, type) VALUES(?,?,?)
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

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
