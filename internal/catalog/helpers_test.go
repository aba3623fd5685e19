package catalog_test

import (
	"encoding/json"
	"testing"

	"catalog-go/internal/catalog"
	"catalog-go/internal/model"
	"catalog-go/internal/testutil"
)

// parts wires the three repositories over one store without a Service,
// starting from empty collections.
type parts struct {
	store    catalog.Store
	clock    *testutil.StubClock
	ids      *testutil.StubIDGenerator
	history  *catalog.History
	registry *catalog.Registry
	products *catalog.Products
}

func newParts(t *testing.T, categories ...string) *parts {
	t.Helper()
	return newPartsWithStore(t, testutil.NewTestStore(), categories...)
}

func newPartsWithStore(t *testing.T, s catalog.Store, categories ...string) *parts {
	t.Helper()
	p := &parts{
		store: s,
		clock: testutil.FixedClock(),
		ids:   testutil.NewStubIDGenerator(),
	}
	logger := catalog.NewNopLogger()
	p.history = catalog.NewHistory(nil, s, p.clock, p.ids, logger)
	p.registry = catalog.NewRegistry(categories, s, p.history, logger)
	p.products = catalog.NewProducts(nil, s, p.registry, p.history, p.ids, logger)
	return p
}

func validDraft(sku string) catalog.Draft {
	return catalog.Draft{
		SKU:        sku,
		Name:       "Product " + sku,
		Price:      "9.99",
		Categories: "Clothing > T-Shirts",
	}
}

// storedJSON decodes the blob under key into v and fails when it is absent.
func storedJSON(t *testing.T, s catalog.Store, key string, v any) {
	t.Helper()
	text, ok, err := s.Load(key)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", key, err)
	}
	if !ok {
		t.Fatalf("Load(%s) ok = false, want stored blob", key)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("stored %s is not valid JSON: %v", key, err)
	}
}

func storedProducts(t *testing.T, s catalog.Store) []model.Product {
	t.Helper()
	var out []model.Product
	storedJSON(t, s, catalog.KeyProducts, &out)
	return out
}

func storedCategories(t *testing.T, s catalog.Store) []string {
	t.Helper()
	var out []string
	storedJSON(t, s, catalog.KeyCategories, &out)
	return out
}

func storedHistory(t *testing.T, s catalog.Store) []model.HistoryEntry {
	t.Helper()
	var out []model.HistoryEntry
	storedJSON(t, s, catalog.KeyHistory, &out)
	return out
}
