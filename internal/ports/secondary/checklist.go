package secondary

import "context"

// ChecklistRepository defines the secondary port for checklist instance
// persistence.
type ChecklistRepository interface {
	// Create persists a new checklist and its items in one transaction.
	// Item IDs are minted by the repository.
	Create(ctx context.Context, checklist *ChecklistRecord, items []*ChecklistItemRecord) error

	// GetByID retrieves a checklist by its ID.
	GetByID(ctx context.Context, id string) (*ChecklistRecord, error)

	// List retrieves checklists matching the given filters, most recently
	// created first. Position visibility is applied by the service layer.
	List(ctx context.Context, filters ChecklistFilters) ([]*ChecklistRecord, error)

	// UpdateProgress persists the aggregate counters onto the checklist row.
	UpdateProgress(ctx context.Context, id string, progress ProgressRecord) error

	// SetArchived archives or restores a checklist, stamping the actor.
	SetArchived(ctx context.Context, id string, archived bool, actor string) error

	// UpdateAssignedPositions replaces the checklist's visibility list.
	UpdateAssignedPositions(ctx context.Context, id, positions string) error

	// GetItem retrieves one item belonging to a checklist.
	GetItem(ctx context.Context, checklistID, itemID string) (*ChecklistItemRecord, error)

	// ListItems retrieves a checklist's items ordered by display order.
	ListItems(ctx context.Context, checklistID string) ([]*ChecklistItemRecord, error)

	// UpdateItemCompletion sets the completion flag and stamps. Empty
	// completedBy/completedAt clear the stamps.
	UpdateItemCompletion(ctx context.Context, itemID string, completed bool, completedBy, completedAt string) error

	// UpdateItemStatus sets a status item's current status label.
	UpdateItemStatus(ctx context.Context, itemID, status string) error

	// UpdateItemNotes replaces an item's notes verbatim; nil clears them.
	UpdateItemNotes(ctx context.Context, itemID string, notes *string) error

	// GetNextID returns the next available checklist ID.
	GetNextID(ctx context.Context) (string, error)
}

// ChecklistRecord represents a checklist instance as stored in persistence.
type ChecklistRecord struct {
	ID                     string
	TemplateID             string
	Name                   string
	EventRef               string
	OperationalPeriodRef   string
	AssignedPositions      string // comma-separated; empty means visible to all
	ProgressPct            float64
	TotalItems             int
	CompletedItems         int
	RequiredItems          int
	RequiredItemsCompleted int
	Archived               bool
	ArchivedAt             string
	ArchivedBy             string
	CreatedBy              string
	CreatedAt              string
	UpdatedAt              string
}

// ChecklistItemRecord represents one instantiated item as stored in
// persistence.
type ChecklistItemRecord struct {
	ID            string
	ChecklistID   string
	Text          string
	Type          string
	DisplayOrder  int
	IsRequired    bool
	StatusConfig  string
	IsCompleted   bool
	CurrentStatus string
	Notes         string
	CompletedBy   string
	CompletedAt   string
	CreatedAt     string
	UpdatedAt     string
}

// ProgressRecord carries the aggregate counters persisted after recompute.
type ProgressRecord struct {
	ProgressPct            float64
	TotalItems             int
	CompletedItems         int
	RequiredItems          int
	RequiredItemsCompleted int
}

// ChecklistFilters contains filter options for querying checklists.
type ChecklistFilters struct {
	TemplateID      string
	EventRef        string
	IncludeArchived bool
	Limit           int
}
