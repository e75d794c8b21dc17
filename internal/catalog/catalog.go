// Package catalog provides the shade catalog stores backing the correction
// engine's lookup capability.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"denticore/pkg/domain"
)

// Driver identifies a concrete catalog backend implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory (tests, default)
	DriverSQLite   Driver = "sqlite"   // embedded, pure-Go driver
	DriverPostgres Driver = "postgres" // shared deployments
)

// Store is a readable and importable shade catalog.
type Store interface {
	domain.CatalogLookup
	// Import upserts rows and returns how many were written.
	Import(ctx context.Context, rows []domain.CatalogShade) (int, error)
	// Close releases backend resources.
	Close() error
}

// LoadFile reads catalog rows from a JSON or YAML file, keyed by extension.
func LoadFile(path string) ([]domain.CatalogShade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var rows []domain.CatalogShade
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog json: %w", err)
		}
	}
	for i, row := range rows {
		if row.ProductLine == "" || row.Shade == "" {
			return nil, fmt.Errorf("catalog row %d: product line and shade are required", i)
		}
	}
	return rows, nil
}
