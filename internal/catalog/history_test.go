package catalog_test

import (
	"errors"
	"testing"
	"time"

	"catalog-go/internal/catalog"
)

func TestHistory_AppendNewestFirst(t *testing.T) {
	p := newParts(t)

	p.history.Append(catalog.ActionAdded, "First (A)")
	p.clock.Advance(time.Minute)
	p.history.Append(catalog.ActionDeleted, "First (A)")

	entries := p.history.List()
	if len(entries) != 2 {
		t.Fatalf("Len = %d, want 2", len(entries))
	}
	if entries[0].Action != catalog.ActionDeleted || entries[1].Action != catalog.ActionAdded {
		t.Errorf("order = %s, %s; want newest first", entries[0].Action, entries[1].Action)
	}
	if !entries[0].Timestamp.After(entries[1].Timestamp) {
		t.Error("newest entry does not carry the later timestamp")
	}
	if entries[0].ID == entries[1].ID {
		t.Error("entries share an ID")
	}

	stored := storedHistory(t, p.store)
	if len(stored) != 2 || stored[0].ID != entries[0].ID {
		t.Errorf("stored history = %+v", stored)
	}
	if !stored[0].Timestamp.Equal(entries[0].Timestamp) {
		t.Errorf("stored timestamp = %v, want %v", stored[0].Timestamp, entries[0].Timestamp)
	}
}

func TestHistory_Clear(t *testing.T) {
	t.Run("empties without recording itself", func(t *testing.T) {
		p := newParts(t)
		p.history.Append(catalog.ActionAdded, "A")
		p.history.Append(catalog.ActionAdded, "B")

		n, err := p.history.Clear()
		if err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if n != 2 {
			t.Errorf("Clear() = %d, want 2", n)
		}
		if p.history.Len() != 0 {
			t.Errorf("Len() = %d, want 0", p.history.Len())
		}
		if stored := storedHistory(t, p.store); len(stored) != 0 {
			t.Errorf("stored history = %+v, want empty", stored)
		}
	})

	t.Run("empty log is a no-op", func(t *testing.T) {
		p := newParts(t)

		_, err := p.history.Clear()
		if !errors.Is(err, catalog.ErrEmptyCollection) {
			t.Errorf("Clear() error = %v, want ErrEmptyCollection", err)
		}
		if p.history.Len() != 0 {
			t.Errorf("Len() = %d, want 0", p.history.Len())
		}
		if _, ok, _ := p.store.Load(catalog.KeyHistory); ok {
			t.Error("Clear() on empty log wrote to the store")
		}
	})
}

func TestHistory_ListIsCopy(t *testing.T) {
	p := newParts(t)
	p.history.Append(catalog.ActionAdded, "A")

	list := p.history.List()
	list[0].Action = "tampered"
	if p.history.List()[0].Action != catalog.ActionAdded {
		t.Error("List() exposes internal state")
	}
}
