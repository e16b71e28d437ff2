package primary

import (
	"context"

	"github.com/example/cobra/internal/core/checklist"
)

// ChecklistService defines the primary port for checklist instance operations.
type ChecklistService interface {
	// Instantiate materializes a checklist from a template. Fails when the
	// template does not exist, is archived, or is inactive.
	Instantiate(ctx context.Context, req InstantiateRequest) (*Checklist, error)

	// GetChecklist retrieves a checklist with its items.
	GetChecklist(ctx context.Context, checklistID string) (*Checklist, error)

	// ListChecklists lists checklists visible to the calling user,
	// most recently created first.
	ListChecklists(ctx context.Context, filters ChecklistFilters) ([]*Checklist, error)

	// ArchiveChecklist soft-deletes a checklist.
	ArchiveChecklist(ctx context.Context, checklistID string) error

	// RestoreChecklist reverses an archive.
	RestoreChecklist(ctx context.Context, checklistID string) error

	// CloneChecklist creates a new checklist from an existing one.
	CloneChecklist(ctx context.Context, req CloneRequest) (*Checklist, error)

	// UpdateAssignedPositions replaces the checklist's visibility list.
	UpdateAssignedPositions(ctx context.Context, checklistID string, positions []string) error

	// UpdateCompletion sets a checkbox item's completion flag.
	UpdateCompletion(ctx context.Context, req UpdateCompletionRequest) (*ChecklistItem, error)

	// UpdateStatus sets a status item's current status label.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*ChecklistItem, error)

	// UpdateNotes replaces an item's notes verbatim; nil clears them.
	// Notes do not affect progress.
	UpdateNotes(ctx context.Context, req UpdateNotesRequest) (*ChecklistItem, error)

	// RecomputeProgress reloads the instance's items and persists the
	// aggregate counters. Best-effort: a missing instance logs a warning
	// and returns nil.
	RecomputeProgress(ctx context.Context, checklistID string) error
}

// InstantiateRequest contains parameters for creating a checklist from a
// template.
type InstantiateRequest struct {
	TemplateID           string   `json:"templateId"`
	Name                 string   `json:"name"` // optional; defaults to the template name
	EventRef             string   `json:"eventRef"`
	OperationalPeriodRef string   `json:"operationalPeriodRef"`
	AssignedPositions    []string `json:"assignedPositions"`
}

// CloneRequest contains parameters for cloning a checklist.
type CloneRequest struct {
	ChecklistID          string   `json:"-"`
	Name                 string   `json:"name"`
	EventRef             string   `json:"eventRef"`
	OperationalPeriodRef string   `json:"operationalPeriodRef"`
	AssignedPositions    []string `json:"assignedPositions"`
	PreserveStatus       bool     `json:"preserveStatus"`
}

// UpdateCompletionRequest contains parameters for a checkbox mutation.
type UpdateCompletionRequest struct {
	ChecklistID string `json:"-"`
	ItemID      string `json:"-"`
	Completed   bool   `json:"completed"`
}

// UpdateStatusRequest contains parameters for a status mutation.
type UpdateStatusRequest struct {
	ChecklistID string `json:"-"`
	ItemID      string `json:"-"`
	Status      string `json:"status"`
}

// UpdateNotesRequest contains parameters for a notes mutation.
type UpdateNotesRequest struct {
	ChecklistID string  `json:"-"`
	ItemID      string  `json:"-"`
	Notes       *string `json:"notes"`
}

// ChecklistFilters contains filter options for listing checklists.
type ChecklistFilters struct {
	TemplateID      string
	EventRef        string
	IncludeArchived bool
	ShowAll         bool // admin override for the position filter
	Limit           int
}

// Checklist represents a checklist instance at the port boundary.
type Checklist struct {
	ID                     string           `json:"id"`
	TemplateID             string           `json:"templateId"`
	Name                   string           `json:"name"`
	EventRef               string           `json:"eventRef,omitempty"`
	OperationalPeriodRef   string           `json:"operationalPeriodRef,omitempty"`
	AssignedPositions      []string         `json:"assignedPositions,omitempty"`
	ProgressPct            float64          `json:"progressPercentage"`
	TotalItems             int              `json:"totalItems"`
	CompletedItems         int              `json:"completedItems"`
	RequiredItems          int              `json:"requiredItems"`
	RequiredItemsCompleted int              `json:"requiredItemsCompleted"`
	Archived               bool             `json:"archived"`
	ArchivedAt             string           `json:"archivedAt,omitempty"`
	ArchivedBy             string           `json:"archivedBy,omitempty"`
	CreatedBy              string           `json:"createdBy"`
	CreatedAt              string           `json:"createdAt"`
	UpdatedAt              string           `json:"updatedAt"`
	Items                  []*ChecklistItem `json:"items,omitempty"`
}

// ChecklistItem represents one instantiated item at the port boundary.
type ChecklistItem struct {
	ID            string                   `json:"id"`
	ChecklistID   string                   `json:"checklistId"`
	Text          string                   `json:"text"`
	Type          string                   `json:"type"`
	DisplayOrder  int                      `json:"displayOrder"`
	IsRequired    bool                     `json:"isRequired"`
	StatusConfig  []checklist.StatusOption `json:"statusConfig,omitempty"`
	IsCompleted   bool                     `json:"isCompleted"`
	CurrentStatus string                   `json:"currentStatus,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	CompletedBy   string                   `json:"completedBy,omitempty"`
	CompletedAt   string                   `json:"completedAt,omitempty"`
}
