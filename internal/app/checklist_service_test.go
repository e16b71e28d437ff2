package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/example/cobra/internal/core/checklist"
	"github.com/example/cobra/internal/ports/primary"
	"github.com/example/cobra/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockChecklistRepository implements secondary.ChecklistRepository for testing.
type mockChecklistRepository struct {
	checklists map[string]*secondary.ChecklistRecord
	items      map[string]*secondary.ChecklistItemRecord
	nextID     int
	nextItem   int
	createErr  error
	listErr    error
}

func newMockChecklistRepository() *mockChecklistRepository {
	return &mockChecklistRepository{
		checklists: make(map[string]*secondary.ChecklistRecord),
		items:      make(map[string]*secondary.ChecklistItemRecord),
	}
}

func (m *mockChecklistRepository) Create(ctx context.Context, record *secondary.ChecklistRecord, items []*secondary.ChecklistItemRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.checklists[record.ID] = record
	for _, item := range items {
		m.nextItem++
		item.ID = fmt.Sprintf("CI-%03d", m.nextItem)
		item.ChecklistID = record.ID
		m.items[item.ID] = item
	}
	return nil
}

func (m *mockChecklistRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistRecord, error) {
	if record, ok := m.checklists[id]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("checklist %s: %w", id, secondary.ErrNotFound)
}

func (m *mockChecklistRepository) List(ctx context.Context, filters secondary.ChecklistFilters) ([]*secondary.ChecklistRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ChecklistRecord
	for _, c := range m.checklists {
		if c.Archived && !filters.IncludeArchived {
			continue
		}
		if filters.TemplateID != "" && c.TemplateID != filters.TemplateID {
			continue
		}
		if filters.EventRef != "" && c.EventRef != filters.EventRef {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockChecklistRepository) UpdateProgress(ctx context.Context, id string, progress secondary.ProgressRecord) error {
	record, ok := m.checklists[id]
	if !ok {
		return fmt.Errorf("checklist %s: %w", id, secondary.ErrNotFound)
	}
	record.ProgressPct = progress.ProgressPct
	record.TotalItems = progress.TotalItems
	record.CompletedItems = progress.CompletedItems
	record.RequiredItems = progress.RequiredItems
	record.RequiredItemsCompleted = progress.RequiredItemsCompleted
	return nil
}

func (m *mockChecklistRepository) SetArchived(ctx context.Context, id string, archived bool, actor string) error {
	record, ok := m.checklists[id]
	if !ok {
		return fmt.Errorf("checklist %s: %w", id, secondary.ErrNotFound)
	}
	record.Archived = archived
	record.ArchivedBy = actor
	return nil
}

func (m *mockChecklistRepository) UpdateAssignedPositions(ctx context.Context, id, positions string) error {
	record, ok := m.checklists[id]
	if !ok {
		return fmt.Errorf("checklist %s: %w", id, secondary.ErrNotFound)
	}
	record.AssignedPositions = positions
	return nil
}

func (m *mockChecklistRepository) GetItem(ctx context.Context, checklistID, itemID string) (*secondary.ChecklistItemRecord, error) {
	if item, ok := m.items[itemID]; ok && item.ChecklistID == checklistID {
		return item, nil
	}
	return nil, fmt.Errorf("checklist item %s: %w", itemID, secondary.ErrNotFound)
}

func (m *mockChecklistRepository) ListItems(ctx context.Context, checklistID string) ([]*secondary.ChecklistItemRecord, error) {
	var result []*secondary.ChecklistItemRecord
	for _, item := range m.items {
		if item.ChecklistID == checklistID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockChecklistRepository) UpdateItemCompletion(ctx context.Context, itemID string, completed bool, completedBy, completedAt string) error {
	item, ok := m.items[itemID]
	if !ok {
		return fmt.Errorf("checklist item %s: %w", itemID, secondary.ErrNotFound)
	}
	item.IsCompleted = completed
	item.CompletedBy = completedBy
	item.CompletedAt = completedAt
	return nil
}

func (m *mockChecklistRepository) UpdateItemStatus(ctx context.Context, itemID, status string) error {
	item, ok := m.items[itemID]
	if !ok {
		return fmt.Errorf("checklist item %s: %w", itemID, secondary.ErrNotFound)
	}
	item.CurrentStatus = status
	return nil
}

func (m *mockChecklistRepository) UpdateItemNotes(ctx context.Context, itemID string, notes *string) error {
	item, ok := m.items[itemID]
	if !ok {
		return fmt.Errorf("checklist item %s: %w", itemID, secondary.ErrNotFound)
	}
	if notes == nil {
		item.Notes = ""
	} else {
		item.Notes = *notes
	}
	return nil
}

func (m *mockChecklistRepository) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("CHK-%03d", m.nextID), nil
}

// ============================================================================
// Test Helper
// ============================================================================

func newTestChecklistService() (*ChecklistServiceImpl, *mockChecklistRepository, *mockTemplateRepository) {
	checklistRepo := newMockChecklistRepository()
	templateRepo := newMockTemplateRepository()
	service := NewChecklistService(checklistRepo, templateRepo, newMockLogWriter(), newMockNotifier())
	return service, checklistRepo, templateRepo
}

func seedActiveTemplate(templateRepo *mockTemplateRepository) {
	templateRepo.templates["TMPL-001"] = &secondary.TemplateRecord{
		ID: "TMPL-001", Name: "Flood Response", IsActive: true,
	}
	templateRepo.items["TI-001"] = &secondary.TemplateItemRecord{
		ID: "TI-001", TemplateID: "TMPL-001", Text: "Notify duty officer",
		Type: checklist.TypeCheckbox, DisplayOrder: 1, IsRequired: true,
	}
	templateRepo.items["TI-002"] = &secondary.TemplateItemRecord{
		ID: "TI-002", TemplateID: "TMPL-001", Text: "Open the EOC",
		Type: checklist.TypeCheckbox, DisplayOrder: 2,
	}
	templateRepo.items["TI-003"] = &secondary.TemplateItemRecord{
		ID: "TI-003", TemplateID: "TMPL-001", Text: "Shelter status",
		Type: checklist.TypeStatus, DisplayOrder: 3, IsRequired: true,
		StatusConfig: `[{"label":"Pending","isCompletion":false},{"label":"Open","isCompletion":true},{"label":"Closed","isCompletion":true}]`,
	}
}

// ============================================================================
// Instantiate Tests
// ============================================================================

func TestInstantiate_Success(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	seedActiveTemplate(templateRepo)
	ctx := userContext("ops@example.org", "Operations")

	result, err := service.Instantiate(ctx, primary.InstantiateRequest{
		TemplateID: "TMPL-001",
		EventRef:   "EVT-2026-017",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Name != "Flood Response" {
		t.Errorf("expected name defaulted from template, got %s", result.Name)
	}
	if result.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", result.TotalItems)
	}
	if result.CompletedItems != 0 {
		t.Errorf("expected 0 completed, got %d", result.CompletedItems)
	}
	if result.RequiredItems != 2 {
		t.Errorf("expected 2 required items, got %d", result.RequiredItems)
	}
	if result.CreatedBy != "ops@example.org" {
		t.Errorf("expected creator stamp, got %s", result.CreatedBy)
	}
	if templateRepo.templates["TMPL-001"].UsageCount != 1 {
		t.Errorf("expected template usage recorded, got %d", templateRepo.templates["TMPL-001"].UsageCount)
	}
	for _, item := range result.Items {
		if item.IsCompleted || item.CurrentStatus != "" {
			t.Error("expected all items to start incomplete")
		}
	}
}

func TestInstantiate_ArchivedTemplate(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	templateRepo.templates["TMPL-001"] = &secondary.TemplateRecord{
		ID: "TMPL-001", Name: "Old", IsActive: true, Archived: true,
	}

	_, err := service.Instantiate(context.Background(), primary.InstantiateRequest{TemplateID: "TMPL-001"})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestInstantiate_InactiveTemplate(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	templateRepo.templates["TMPL-001"] = &secondary.TemplateRecord{
		ID: "TMPL-001", Name: "Draft", IsActive: false,
	}

	_, err := service.Instantiate(context.Background(), primary.InstantiateRequest{TemplateID: "TMPL-001"})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestInstantiate_TemplateNotFound(t *testing.T) {
	service, _, _ := newTestChecklistService()

	_, err := service.Instantiate(context.Background(), primary.InstantiateRequest{TemplateID: "TMPL-404"})

	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// ============================================================================
// Visibility Tests
// ============================================================================

func TestListChecklists_FiltersByPosition(t *testing.T) {
	service, checklistRepo, _ := newTestChecklistService()
	checklistRepo.checklists["CHK-001"] = &secondary.ChecklistRecord{
		ID: "CHK-001", Name: "Ops Only", AssignedPositions: "Operations,Logistics",
	}
	checklistRepo.checklists["CHK-002"] = &secondary.ChecklistRecord{
		ID: "CHK-002", Name: "Everyone", AssignedPositions: "",
	}
	checklistRepo.checklists["CHK-003"] = &secondary.ChecklistRecord{
		ID: "CHK-003", Name: "Finance Only", AssignedPositions: "Finance",
	}

	result, err := service.ListChecklists(userContext("ops@example.org", "Operations"), primary.ChecklistFilters{})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 visible checklists, got %d", len(result))
	}
	for _, c := range result {
		if c.ID == "CHK-003" {
			t.Error("expected Finance checklist to be hidden")
		}
	}
}

func TestListChecklists_ShowAllRequiresAdmin(t *testing.T) {
	service, checklistRepo, _ := newTestChecklistService()
	checklistRepo.checklists["CHK-001"] = &secondary.ChecklistRecord{
		ID: "CHK-001", Name: "Finance Only", AssignedPositions: "Finance",
	}

	hidden, err := service.ListChecklists(userContext("ops@example.org", "Operations"), primary.ChecklistFilters{ShowAll: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(hidden) != 0 {
		t.Errorf("expected ShowAll ignored for non-admin, got %d checklists", len(hidden))
	}

	shown, err := service.ListChecklists(adminContext("admin@example.org"), primary.ChecklistFilters{ShowAll: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(shown) != 1 {
		t.Errorf("expected admin ShowAll to reveal checklist, got %d", len(shown))
	}
}

func TestListChecklists_CaseSensitivePositions(t *testing.T) {
	service, checklistRepo, _ := newTestChecklistService()
	checklistRepo.checklists["CHK-001"] = &secondary.ChecklistRecord{
		ID: "CHK-001", Name: "Ops", AssignedPositions: "Operations",
	}

	result, err := service.ListChecklists(userContext("ops@example.org", "operations"), primary.ChecklistFilters{})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected case-sensitive match to hide checklist, got %d", len(result))
	}
}

// ============================================================================
// Item Mutation and Progress Tests
// ============================================================================

// instantiateSeeded creates a checklist from the seeded three-item template.
func instantiateSeeded(t *testing.T, service *ChecklistServiceImpl, templateRepo *mockTemplateRepository) *primary.Checklist {
	t.Helper()
	seedActiveTemplate(templateRepo)
	result, err := service.Instantiate(userContext("ops@example.org", "Operations"), primary.InstantiateRequest{
		TemplateID: "TMPL-001",
	})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	return result
}

func TestUpdateCompletion_RecomputesProgress(t *testing.T) {
	service, checklistRepo, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org", "Operations")

	item, err := service.UpdateCompletion(ctx, primary.UpdateCompletionRequest{
		ChecklistID: created.ID,
		ItemID:      created.Items[0].ID,
		Completed:   true,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !item.IsCompleted {
		t.Error("expected item to be completed")
	}
	if item.CompletedBy != "ops@example.org" {
		t.Errorf("expected completion stamp, got %s", item.CompletedBy)
	}
	if item.CompletedAt == "" {
		t.Error("expected completion timestamp")
	}

	record := checklistRepo.checklists[created.ID]
	if record.CompletedItems != 1 {
		t.Errorf("expected 1 completed item, got %d", record.CompletedItems)
	}
	if record.ProgressPct != 33.33 {
		t.Errorf("expected progress 33.33, got %v", record.ProgressPct)
	}
	if record.RequiredItemsCompleted != 1 {
		t.Errorf("expected 1 required completed, got %d", record.RequiredItemsCompleted)
	}
}

func TestUpdateCompletion_UncheckClearsStamps(t *testing.T) {
	service, checklistRepo, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org", "Operations")
	itemID := created.Items[0].ID

	if _, err := service.UpdateCompletion(ctx, primary.UpdateCompletionRequest{
		ChecklistID: created.ID, ItemID: itemID, Completed: true,
	}); err != nil {
		t.Fatalf("check: %v", err)
	}

	item, err := service.UpdateCompletion(ctx, primary.UpdateCompletionRequest{
		ChecklistID: created.ID, ItemID: itemID, Completed: false,
	})

	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if item.IsCompleted || item.CompletedBy != "" || item.CompletedAt != "" {
		t.Error("expected uncheck to clear the completion stamps")
	}
	if checklistRepo.checklists[created.ID].CompletedItems != 0 {
		t.Error("expected progress to return to zero")
	}
}

func TestUpdateCompletion_StatusItemConflict(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)

	_, err := service.UpdateCompletion(userContext("ops@example.org"), primary.UpdateCompletionRequest{
		ChecklistID: created.ID,
		ItemID:      created.Items[2].ID, // status item
		Completed:   true,
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateStatus_CompletionEquivalentLabel(t *testing.T) {
	service, checklistRepo, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org", "Operations")
	statusItemID := created.Items[2].ID

	item, err := service.UpdateStatus(ctx, primary.UpdateStatusRequest{
		ChecklistID: created.ID, ItemID: statusItemID, Status: "Open",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.CurrentStatus != "Open" {
		t.Errorf("expected status Open, got %s", item.CurrentStatus)
	}
	if checklistRepo.checklists[created.ID].CompletedItems != 1 {
		t.Error("expected completion-equivalent status to count toward progress")
	}

	// Pending is not completion-equivalent; progress drops back.
	if _, err := service.UpdateStatus(ctx, primary.UpdateStatusRequest{
		ChecklistID: created.ID, ItemID: statusItemID, Status: "Pending",
	}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if checklistRepo.checklists[created.ID].CompletedItems != 0 {
		t.Error("expected non-completion status to reverse progress")
	}
}

func TestUpdateStatus_UnknownLabel(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)

	_, err := service.UpdateStatus(userContext("ops@example.org"), primary.UpdateStatusRequest{
		ChecklistID: created.ID, ItemID: created.Items[2].ID, Status: "Bogus",
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateStatus_CheckboxItemConflict(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)

	_, err := service.UpdateStatus(userContext("ops@example.org"), primary.UpdateStatusRequest{
		ChecklistID: created.ID, ItemID: created.Items[0].ID, Status: "Open",
	})

	if !errors.Is(err, primary.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateNotes_SetAndClear(t *testing.T) {
	service, checklistRepo, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org")
	itemID := created.Items[0].ID

	notes := "Duty officer paged at 0415"
	item, err := service.UpdateNotes(ctx, primary.UpdateNotesRequest{
		ChecklistID: created.ID, ItemID: itemID, Notes: &notes,
	})
	if err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if item.Notes != notes {
		t.Errorf("expected notes stored verbatim, got %q", item.Notes)
	}

	item, err = service.UpdateNotes(ctx, primary.UpdateNotesRequest{
		ChecklistID: created.ID, ItemID: itemID, Notes: nil,
	})
	if err != nil {
		t.Fatalf("clear notes: %v", err)
	}
	if item.Notes != "" {
		t.Errorf("expected notes cleared, got %q", item.Notes)
	}
	if checklistRepo.checklists[created.ID].CompletedItems != 0 {
		t.Error("expected notes changes to leave progress untouched")
	}
}

// ============================================================================
// Clone Tests
// ============================================================================

func TestCloneChecklist_ResetsStatus(t *testing.T) {
	service, checklistRepo, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org", "Operations")

	if _, err := service.UpdateCompletion(ctx, primary.UpdateCompletionRequest{
		ChecklistID: created.ID, ItemID: created.Items[0].ID, Completed: true,
	}); err != nil {
		t.Fatalf("complete item: %v", err)
	}

	clone, err := service.CloneChecklist(ctx, primary.CloneRequest{
		ChecklistID: created.ID,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if clone.ID == created.ID {
		t.Error("expected clone to get a new ID")
	}
	if clone.Name != created.Name+" (copy)" {
		t.Errorf("expected default copy name, got %s", clone.Name)
	}
	if clone.CompletedItems != 0 || clone.ProgressPct != 0 {
		t.Errorf("expected fresh clone to start at zero, got %d/%v", clone.CompletedItems, clone.ProgressPct)
	}
	for _, item := range clone.Items {
		if item.IsCompleted {
			t.Error("expected cloned items to be reset")
		}
	}
	if checklistRepo.checklists[created.ID].CompletedItems != 1 {
		t.Error("expected source checklist untouched")
	}
}

func TestCloneChecklist_PreserveStatus(t *testing.T) {
	service, _, templateRepo := newTestChecklistService()
	created := instantiateSeeded(t, service, templateRepo)
	ctx := userContext("ops@example.org", "Operations")

	if _, err := service.UpdateCompletion(ctx, primary.UpdateCompletionRequest{
		ChecklistID: created.ID, ItemID: created.Items[0].ID, Completed: true,
	}); err != nil {
		t.Fatalf("complete item: %v", err)
	}

	clone, err := service.CloneChecklist(ctx, primary.CloneRequest{
		ChecklistID:    created.ID,
		Name:           "Carried Forward",
		PreserveStatus: true,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if clone.CompletedItems != 1 {
		t.Errorf("expected preserved completion, got %d", clone.CompletedItems)
	}
	if clone.ProgressPct != 33.33 {
		t.Errorf("expected progress 33.33, got %v", clone.ProgressPct)
	}
}

// ============================================================================
// RecomputeProgress Tests
// ============================================================================

func TestRecomputeProgress_MissingChecklistIsBestEffort(t *testing.T) {
	service, _, _ := newTestChecklistService()

	if err := service.RecomputeProgress(context.Background(), "CHK-404"); err != nil {
		t.Fatalf("expected nil for missing checklist, got %v", err)
	}
}

func TestRecomputeProgress_SevenItems(t *testing.T) {
	service, checklistRepo, _ := newTestChecklistService()
	checklistRepo.checklists["CHK-001"] = &secondary.ChecklistRecord{ID: "CHK-001", Name: "Wide"}
	for i := 1; i <= 7; i++ {
		checklistRepo.items[fmt.Sprintf("CI-%03d", i)] = &secondary.ChecklistItemRecord{
			ID:          fmt.Sprintf("CI-%03d", i),
			ChecklistID: "CHK-001",
			Text:        fmt.Sprintf("Step %d", i),
			Type:        checklist.TypeCheckbox,
			IsCompleted: i == 1,
		}
	}

	if err := service.RecomputeProgress(context.Background(), "CHK-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := checklistRepo.checklists["CHK-001"].ProgressPct; got != 14.29 {
		t.Errorf("expected 1/7 to round to 14.29, got %v", got)
	}
}
