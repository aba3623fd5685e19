package catalog_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"catalog-go/internal/catalog"
)

// genField produces a non-empty single-line field value.
func genField() gopter.Gen {
	return gen.RegexMatch(`[A-Za-z0-9][A-Za-z0-9 .,-]{0,30}`)
}

func genCategory() gopter.Gen {
	return gen.RegexMatch(`[A-Z][a-z]{1,8}( > [A-Z][a-z]{1,8}){0,2}`)
}

func TestProperty_CreateAddsOneProductAndOneEntry(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("create grows the catalog by one and logs one Added entry", prop.ForAll(
		func(sku, name, price, category string, existing int) bool {
			p := newParts(t)
			for i := 0; i < existing; i++ {
				if _, err := p.products.Create(validDraft(fmt.Sprintf("PRE-%d", i))); err != nil {
					t.Logf("FAIL: seeding product: %v", err)
					return false
				}
			}
			sizeBefore := p.products.Len()
			historyBefore := p.history.Len()

			_, err := p.products.Create(catalog.Draft{SKU: sku, Name: name, Price: price, Categories: category})
			if err != nil {
				t.Logf("FAIL: Create() error = %v", err)
				return false
			}
			if p.products.Len() != sizeBefore+1 {
				t.Logf("FAIL: size %d -> %d", sizeBefore, p.products.Len())
				return false
			}
			entries := p.history.List()
			if len(entries) != historyBefore+1 || entries[0].Action != catalog.ActionAdded {
				t.Logf("FAIL: history %d -> %d, newest %+v", historyBefore, len(entries), entries[0])
				return false
			}
			return true
		},
		genField(),
		genField(),
		gen.RegexMatch(`[0-9]{1,4}\.[0-9]{2}`),
		genCategory(),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_UpdateKeepsIDAndSize(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("update never changes id or catalog size", prop.ForAll(
		func(count, target int, name, category string) bool {
			p := newParts(t)
			for i := 0; i < count; i++ {
				p.products.Create(validDraft(fmt.Sprintf("SKU-%d", i)))
			}
			before := p.products.List()
			victim := before[target%count]

			d := catalog.DraftFromProduct(victim)
			d.Name = name
			d.Categories = category
			got, err := p.products.Update(victim.ID, d)
			if err != nil || got == nil {
				t.Logf("FAIL: Update() = %v, %v", got, err)
				return false
			}

			after := p.products.List()
			if len(after) != len(before) {
				t.Logf("FAIL: size %d -> %d", len(before), len(after))
				return false
			}
			for i := range before {
				if after[i].ID != before[i].ID {
					t.Logf("FAIL: id at %d changed %s -> %s", i, before[i].ID, after[i].ID)
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
		gen.IntRange(0, 100),
		genField(),
		genCategory(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DeleteAllEmptiesAndLogsOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("delete-all leaves zero products and one entry naming the prior count", prop.ForAll(
		func(count int) bool {
			p := newParts(t)
			for i := 0; i < count; i++ {
				p.products.Create(validDraft(fmt.Sprintf("SKU-%d", i)))
			}
			historyBefore := p.history.Len()

			n, err := p.products.DeleteAll()
			if err != nil || n != count {
				t.Logf("FAIL: DeleteAll() = %d, %v", n, err)
				return false
			}
			if p.products.Len() != 0 {
				return false
			}
			entries := p.history.List()
			return len(entries) == historyBefore+1 &&
				entries[0].Action == catalog.ActionDeletedAll &&
				entries[0].Product == fmt.Sprintf("%d products", count)
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RegistryAddIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same trimmed path twice leaves the set size unchanged", prop.ForAll(
		func(existing []string, path, padding string) bool {
			p := newParts(t, existing...)

			p.registry.Add(path)
			size := p.registry.Len()
			changed, err := p.registry.Add(padding + path + padding)
			if err != nil {
				return false
			}
			return !changed && p.registry.Len() == size
		},
		gen.SliceOfN(5, genCategory()),
		genCategory(),
		gen.RegexMatch(`[ \t]{0,3}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CategoryExportImportRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("export then replace-import reproduces the sorted set", prop.ForAll(
		func(paths []string, other []string) bool {
			src := newParts(t, paths...)
			text, err := src.registry.ExportToText()
			if err != nil {
				t.Logf("FAIL: ExportToText() error = %v", err)
				return false
			}

			dst := newParts(t, other...)
			if _, err := dst.registry.ImportFromText(text, catalog.ModeReplace, "roundtrip.txt"); err != nil {
				t.Logf("FAIL: ImportFromText() error = %v", err)
				return false
			}
			if !slices.Equal(dst.registry.List(), src.registry.List()) {
				t.Logf("FAIL: %v != %v", dst.registry.List(), src.registry.List())
				return false
			}
			return slices.IsSorted(dst.registry.List())
		},
		gen.SliceOfN(8, genCategory()),
		gen.SliceOfN(3, genCategory()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_CSVHasOneRowPerProduct(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("the CSV has a header plus one line per product", prop.ForAll(
		func(count int) bool {
			p := newParts(t)
			for i := 0; i < count; i++ {
				p.products.Create(validDraft(fmt.Sprintf("SKU-%d", i)))
			}
			data, err := catalog.EncodeProductsCSV(p.products.List())
			if err != nil {
				return false
			}
			lines := strings.Split(string(data), "\n")
			return len(lines) == count+1 && !strings.HasSuffix(string(data), "\n")
		},
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
