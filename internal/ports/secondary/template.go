// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import "context"

// TemplateRepository defines the secondary port for template persistence.
type TemplateRepository interface {
	// Create persists a new template.
	Create(ctx context.Context, template *TemplateRecord) error

	// GetByID retrieves a template by its ID.
	GetByID(ctx context.Context, id string) (*TemplateRecord, error)

	// Update updates an existing template's editable fields.
	Update(ctx context.Context, template *TemplateRecord) error

	// SetArchived archives or restores a template.
	SetArchived(ctx context.Context, id string, archived bool) error

	// List retrieves templates matching the given filters.
	List(ctx context.Context, filters TemplateFilters) ([]*TemplateRecord, error)

	// GetNextID returns the next available template ID.
	GetNextID(ctx context.Context) (string, error)

	// RecordUse increments the template's usage counter and stamps last_used_at.
	RecordUse(ctx context.Context, id string) error

	// AddItem persists a new template item.
	AddItem(ctx context.Context, item *TemplateItemRecord) error

	// GetItem retrieves one item belonging to a template.
	GetItem(ctx context.Context, templateID, itemID string) (*TemplateItemRecord, error)

	// UpdateItem updates an existing template item.
	UpdateItem(ctx context.Context, item *TemplateItemRecord) error

	// RemoveItem deletes a template item.
	RemoveItem(ctx context.Context, templateID, itemID string) error

	// ListItems retrieves a template's items ordered by display order.
	ListItems(ctx context.Context, templateID string) ([]*TemplateItemRecord, error)

	// ReorderItems resequences display order to match the given item IDs.
	ReorderItems(ctx context.Context, templateID string, orderedItemIDs []string) error

	// GetNextItemID returns the next available template item ID.
	GetNextItemID(ctx context.Context) (string, error)
}

// TemplateRecord represents a template as stored in persistence.
type TemplateRecord struct {
	ID          string
	Name        string
	Category    string
	Tags        string // comma-separated
	Description string
	IsActive    bool
	Archived    bool
	UsageCount  int
	LastUsedAt  string
	CreatedBy   string
	CreatedAt   string
	UpdatedAt   string
}

// TemplateItemRecord represents one template line as stored in persistence.
type TemplateItemRecord struct {
	ID           string
	TemplateID   string
	Text         string
	Type         string // "checkbox" or "status"
	DisplayOrder int
	IsRequired   bool
	StatusConfig string // JSON-encoded status options, empty for checkbox items
	CreatedAt    string
	UpdatedAt    string
}

// TemplateFilters contains filter options for querying templates.
type TemplateFilters struct {
	Category        string
	Name            string // substring match
	ActiveOnly      bool
	IncludeArchived bool
	Limit           int
}
