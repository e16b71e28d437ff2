package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cobra/internal/adapters/sqlite"
	"github.com/example/cobra/internal/ports/secondary"
)

func TestLibraryRepository_CreateUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLibraryRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.LibraryItemRecord{
		ID:       "LIB-001",
		Text:     "Notify duty officer",
		Type:     "checkbox",
		Category: "notifications",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	entry, err := repo.GetByID(ctx, "LIB-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	entry.Text = "Notify duty officer and log the call"
	entry.IsRequired = true
	if err := repo.Update(ctx, entry); err != nil {
		t.Fatalf("update: %v", err)
	}

	entry, _ = repo.GetByID(ctx, "LIB-001")
	if entry.Text != "Notify duty officer and log the call" || !entry.IsRequired {
		t.Errorf("expected update persisted, got %+v", entry)
	}

	if err := repo.Delete(ctx, "LIB-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "LIB-001"); !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected deleted entry gone, got %v", err)
	}
}

func TestLibraryRepository_ListOrdersByUsage(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLibraryRepository(db)
	ctx := context.Background()

	for _, id := range []string{"LIB-001", "LIB-002"} {
		err := repo.Create(ctx, &secondary.LibraryItemRecord{
			ID: id, Text: "Entry " + id, Type: "checkbox", Category: "general",
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := repo.RecordUse(ctx, "LIB-002"); err != nil {
		t.Fatalf("record use: %v", err)
	}

	entries, err := repo.List(ctx, secondary.LibraryFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "LIB-002" {
		t.Errorf("expected most-used first, got %+v", entries)
	}
	if entries[0].UsageCount != 1 {
		t.Errorf("expected usage count incremented, got %d", entries[0].UsageCount)
	}

	entries, err = repo.List(ctx, secondary.LibraryFilters{Category: "missing"})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty category result, got %d", len(entries))
	}
}
