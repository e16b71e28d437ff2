package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cobra/internal/core/checklist"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// ============================================================================
// Test Helper
// ============================================================================

func newTestLibraryService() (*LibraryServiceImpl, *mockLibraryRepository) {
	libraryRepo := newMockLibraryRepository()
	service := NewLibraryService(libraryRepo, newMockLogWriter())
	return service, libraryRepo
}

// ============================================================================
// CreateEntry Tests
// ============================================================================

func TestCreateEntry_Checkbox(t *testing.T) {
	service, _ := newTestLibraryService()

	entry, err := service.CreateEntry(userContext("planner@example.org"), primary.CreateLibraryEntryRequest{
		Text:       "Account for all personnel",
		Type:       checklist.TypeCheckbox,
		Category:   "safety",
		IsRequired: true,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.ID != "LIB-001" {
		t.Errorf("expected ID LIB-001, got %s", entry.ID)
	}
	if entry.UsageCount != 0 {
		t.Errorf("expected fresh usage count, got %d", entry.UsageCount)
	}
	if entry.CreatedBy != "planner@example.org" {
		t.Errorf("expected creator stamp, got %s", entry.CreatedBy)
	}
}

func TestCreateEntry_StatusWithConfig(t *testing.T) {
	service, _ := newTestLibraryService()

	entry, err := service.CreateEntry(context.Background(), primary.CreateLibraryEntryRequest{
		Text: "Shelter status",
		Type: checklist.TypeStatus,
		StatusConfig: []checklist.StatusOption{
			{Label: "Pending", IsCompletion: false},
			{Label: "Open", IsCompletion: true},
		},
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entry.StatusConfig) != 2 {
		t.Errorf("expected 2 status options, got %d", len(entry.StatusConfig))
	}
}

func TestCreateEntry_StatusWithoutCompletionOption(t *testing.T) {
	service, _ := newTestLibraryService()

	_, err := service.CreateEntry(context.Background(), primary.CreateLibraryEntryRequest{
		Text: "Shelter status",
		Type: checklist.TypeStatus,
		StatusConfig: []checklist.StatusOption{
			{Label: "Pending", IsCompletion: false},
		},
	})

	var verr *primary.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// ============================================================================
// UpdateEntry Tests
// ============================================================================

func TestUpdateEntry_PartialUpdate(t *testing.T) {
	service, libraryRepo := newTestLibraryService()
	libraryRepo.entries["LIB-001"] = &secondary.LibraryItemRecord{
		ID: "LIB-001", Text: "Old text", Type: checklist.TypeCheckbox, Category: "safety",
	}

	text := "New text"
	entry, err := service.UpdateEntry(context.Background(), primary.UpdateLibraryEntryRequest{
		EntryID: "LIB-001",
		Text:    &text,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Text != "New text" {
		t.Errorf("expected text updated, got %s", entry.Text)
	}
	if entry.Category != "safety" {
		t.Errorf("expected category untouched, got %s", entry.Category)
	}
}

func TestUpdateEntry_StatusConfigOnCheckbox(t *testing.T) {
	service, libraryRepo := newTestLibraryService()
	libraryRepo.entries["LIB-001"] = &secondary.LibraryItemRecord{
		ID: "LIB-001", Text: "Step", Type: checklist.TypeCheckbox,
	}

	config := []checklist.StatusOption{{Label: "Done", IsCompletion: true}}
	_, err := service.UpdateEntry(context.Background(), primary.UpdateLibraryEntryRequest{
		EntryID:      "LIB-001",
		StatusConfig: &config,
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

// ============================================================================
// DeleteEntry Tests
// ============================================================================

func TestDeleteEntry_Success(t *testing.T) {
	service, libraryRepo := newTestLibraryService()
	libraryRepo.entries["LIB-001"] = &secondary.LibraryItemRecord{
		ID: "LIB-001", Text: "Step", Type: checklist.TypeCheckbox,
	}

	if err := service.DeleteEntry(context.Background(), "LIB-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(libraryRepo.entries) != 0 {
		t.Error("expected entry removed")
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	service, _ := newTestLibraryService()

	err := service.DeleteEntry(context.Background(), "LIB-404")

	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// ============================================================================
// ListEntries Tests
// ============================================================================

func TestListEntries_CategoryFilter(t *testing.T) {
	service, libraryRepo := newTestLibraryService()
	libraryRepo.entries["LIB-001"] = &secondary.LibraryItemRecord{
		ID: "LIB-001", Text: "A", Type: checklist.TypeCheckbox, Category: "safety",
	}
	libraryRepo.entries["LIB-002"] = &secondary.LibraryItemRecord{
		ID: "LIB-002", Text: "B", Type: checklist.TypeCheckbox, Category: "comms",
	}

	entries, err := service.ListEntries(context.Background(), primary.LibraryFilters{Category: "safety"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "LIB-001" {
		t.Errorf("expected only safety entries, got %d", len(entries))
	}
}
