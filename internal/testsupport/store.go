package testsupport

import (
	"context"
	"testing"

	"catalog/internal/catalog"
	"catalog/internal/config"
	"catalog/internal/store"
)

// OpenCatalog builds an empty catalog for cfg's kind, format, and sort key.
func OpenCatalog(t testing.TB, cfg *config.Config) *catalog.Catalog {
	t.Helper()

	persister, err := store.Open(cfg.Catalog.Format, cfg.Schema())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return catalog.New(cfg.Schema(), persister, catalog.WithSortKey(cfg.SortKey()))
}

// SeedCatalog saves records to cfg's data file.
func SeedCatalog(t testing.TB, cfg *config.Config, records ...catalog.Record) {
	t.Helper()

	c := OpenCatalog(t, cfg)
	for _, r := range records {
		c.Add(r)
	}
	if err := c.Save(context.Background(), cfg.Catalog.File); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
}

// LoadCatalog reads cfg's data file into a fresh catalog.
func LoadCatalog(t testing.TB, cfg *config.Config) *catalog.Catalog {
	t.Helper()

	c := OpenCatalog(t, cfg)
	if _, err := c.Load(context.Background(), cfg.Catalog.File); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}
