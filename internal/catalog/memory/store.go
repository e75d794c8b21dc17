// Package memory provides the in-memory shade catalog used by tests and as
// the default driver.
package memory

import (
	"context"
	"sort"
	"sync"

	"denticore/pkg/domain"
)

// Store keeps catalog rows in process memory, keyed by product line.
type Store struct {
	mu   sync.RWMutex
	rows map[string][]domain.CatalogShade
}

// NewStore constructs a store seeded with the given rows.
func NewStore(rows ...domain.CatalogShade) *Store {
	s := &Store{rows: make(map[string][]domain.CatalogShade)}
	_, _ = s.Import(context.Background(), rows)
	return s
}

// Lookup returns all shades registered for the product line, ordered by
// type then shade for determinism.
func (s *Store) Lookup(_ context.Context, productLine string) ([]domain.CatalogShade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.rows[productLine]
	if len(rows) == 0 {
		return nil, nil
	}
	out := append([]domain.CatalogShade(nil), rows...)
	return out, nil
}

// Import upserts rows keyed by (product line, shade).
func (s *Store) Import(_ context.Context, rows []domain.CatalogShade) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	written := 0
	for _, row := range rows {
		if row.ProductLine == "" || row.Shade == "" {
			continue
		}
		line := s.rows[row.ProductLine]
		replaced := false
		for i, existing := range line {
			if existing.Shade == row.Shade {
				line[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			line = append(line, row)
		}
		sort.Slice(line, func(i, j int) bool {
			if line[i].Type == line[j].Type {
				return line[i].Shade < line[j].Shade
			}
			return line[i].Type < line[j].Type
		})
		s.rows[row.ProductLine] = line
		written++
	}
	return written, nil
}

// Close implements catalog.Store.
func (s *Store) Close() error { return nil }
