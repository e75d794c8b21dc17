package postgres

import (
	"context"
	"os"
	"testing"

	"denticore/pkg/domain"
)

// Integration test; requires a reachable Postgres instance.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("DENTICORE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DENTICORE_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	line := "denticore-test - Vittra APS"
	if _, err := store.DB().ExecContext(ctx, `DELETE FROM shade_catalog WHERE product_line = $1`, line); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	n, err := store.Import(ctx, []domain.CatalogShade{
		{Shade: "Trans", Type: domain.ShadeTypeTranslucent, ProductLine: line},
		{Shade: "DA1", Type: domain.ShadeTypeBody, ProductLine: line},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("written = %d, want 2", n)
	}

	rows, err := store.Lookup(ctx, line)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(rows) != 2 || rows[0].Type != domain.ShadeTypeBody {
		t.Errorf("unexpected rows: %+v", rows)
	}

	rows[0].Type = domain.ShadeTypeUniversal
	if _, err := store.Import(ctx, rows[:1]); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	rows, err = store.Lookup(ctx, line)
	if err != nil {
		t.Fatalf("lookup after upsert: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("upsert duplicated rows: %+v", rows)
	}
}
