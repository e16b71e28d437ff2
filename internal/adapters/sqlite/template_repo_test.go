package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cobra/internal/adapters/sqlite"
	"github.com/example/cobra/internal/ports/secondary"
)

func TestTemplateRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.TemplateRecord{
		ID:       "TMPL-001",
		Name:     "Severe Weather Activation",
		Category: "weather",
		Tags:     "eoc,activation",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	record, err := repo.GetByID(ctx, "TMPL-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.Name != "Severe Weather Activation" {
		t.Errorf("expected name round-trip, got %s", record.Name)
	}
	if record.Tags != "eoc,activation" {
		t.Errorf("expected tags round-trip, got %s", record.Tags)
	}
	if record.CreatedAt == "" || record.UpdatedAt == "" {
		t.Error("expected timestamps populated")
	}
}

func TestTemplateRepository_GetNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)

	_, err := repo.GetByID(context.Background(), "TMPL-404")

	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if id != "TMPL-001" {
		t.Errorf("expected TMPL-001 on empty table, got %s", id)
	}

	seedTemplate(t, db, "TMPL-007", "Existing")
	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("next id: %v", err)
	}
	if id != "TMPL-008" {
		t.Errorf("expected TMPL-008 after TMPL-007, got %s", id)
	}
}

func TestTemplateRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, "TMPL-001", "Flood Response")
	seedTemplate(t, db, "TMPL-002", "Fire Response")
	if _, err := db.Exec("UPDATE templates SET archived = 1 WHERE id = 'TMPL-002'"); err != nil {
		t.Fatalf("archive seed: %v", err)
	}

	records, err := repo.List(ctx, secondary.TemplateFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != "TMPL-001" {
		t.Errorf("expected archived excluded by default, got %d records", len(records))
	}

	records, err = repo.List(ctx, secondary.TemplateFilters{IncludeArchived: true})
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 with archived, got %d", len(records))
	}

	records, err = repo.List(ctx, secondary.TemplateFilters{Name: "Flood"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(records) != 1 || records[0].ID != "TMPL-001" {
		t.Errorf("expected substring match on name, got %d records", len(records))
	}
}

func TestTemplateRepository_RecordUse(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplate(t, db, "TMPL-001", "")

	if err := repo.RecordUse(ctx, "TMPL-001"); err != nil {
		t.Fatalf("record use: %v", err)
	}

	record, err := repo.GetByID(ctx, "TMPL-001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.UsageCount != 1 {
		t.Errorf("expected usage count 1, got %d", record.UsageCount)
	}
	if record.LastUsedAt == "" {
		t.Error("expected last_used_at stamped")
	}
}

func TestTemplateRepository_ItemLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplate(t, db, "TMPL-001", "")

	for i, id := range []string{"TI-001", "TI-002"} {
		err := repo.AddItem(ctx, &secondary.TemplateItemRecord{
			ID:           id,
			TemplateID:   "TMPL-001",
			Text:         "Step",
			Type:         "checkbox",
			DisplayOrder: i + 1,
		})
		if err != nil {
			t.Fatalf("add item %s: %v", id, err)
		}
	}

	if err := repo.ReorderItems(ctx, "TMPL-001", []string{"TI-002", "TI-001"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	items, err := repo.ListItems(ctx, "TMPL-001")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if items[0].ID != "TI-002" {
		t.Errorf("expected TI-002 first after reorder, got %s", items[0].ID)
	}

	if err := repo.RemoveItem(ctx, "TMPL-001", "TI-001"); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if _, err := repo.GetItem(ctx, "TMPL-001", "TI-001"); !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected removed item gone, got %v", err)
	}
}
