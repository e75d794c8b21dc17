package domain

import "context"

// CatalogLookup is the narrow read capability over the shade catalog store.
// Implementations return all shades registered for a product line; an empty
// slice means the line is unknown. Callers must treat a lookup error the
// same as an empty result.
type CatalogLookup interface {
	Lookup(ctx context.Context, productLine string) ([]CatalogShade, error)
}

// CatalogLookupFunc adapts a function to the CatalogLookup interface.
type CatalogLookupFunc func(ctx context.Context, productLine string) ([]CatalogShade, error)

// Lookup implements CatalogLookup.
func (f CatalogLookupFunc) Lookup(ctx context.Context, productLine string) ([]CatalogShade, error) {
	return f(ctx, productLine)
}
