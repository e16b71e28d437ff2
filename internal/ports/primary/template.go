package primary

import (
	"context"

	"github.com/example/cobra/internal/core/checklist"
)

// TemplateService defines the primary port for checklist template operations.
type TemplateService interface {
	// CreateTemplate creates a new template, optionally with initial items.
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error)

	// GetTemplate retrieves a template with its items.
	GetTemplate(ctx context.Context, templateID string) (*Template, error)

	// ListTemplates lists templates with optional filters.
	ListTemplates(ctx context.Context, filters TemplateFilters) ([]*Template, error)

	// UpdateTemplate updates a template's editable fields.
	UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*Template, error)

	// ArchiveTemplate soft-deletes a template. Existing instances keep
	// referencing it; new instantiations are rejected.
	ArchiveTemplate(ctx context.Context, templateID string) error

	// RestoreTemplate reverses an archive.
	RestoreTemplate(ctx context.Context, templateID string) error

	// AddItem appends an item to a template.
	AddItem(ctx context.Context, req AddTemplateItemRequest) (*TemplateItem, error)

	// UpdateItem updates a template item.
	UpdateItem(ctx context.Context, req UpdateTemplateItemRequest) (*TemplateItem, error)

	// RemoveItem deletes a template item.
	RemoveItem(ctx context.Context, templateID, itemID string) error

	// ReorderItems resequences a template's items to the given ID order.
	ReorderItems(ctx context.Context, templateID string, orderedItemIDs []string) error

	// InsertLibraryItem copies a library entry into the template and
	// increments the entry's usage counter.
	InsertLibraryItem(ctx context.Context, templateID, libraryItemID string) (*TemplateItem, error)
}

// CreateTemplateRequest contains parameters for creating a template.
type CreateTemplateRequest struct {
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags"`
	Description string            `json:"description"`
	Items       []NewTemplateItem `json:"items"`
}

// NewTemplateItem describes one item in a create-template request.
type NewTemplateItem struct {
	Text         string                   `json:"text"`
	Type         string                   `json:"type"`
	IsRequired   bool                     `json:"isRequired"`
	StatusConfig []checklist.StatusOption `json:"statusConfig,omitempty"`
}

// UpdateTemplateRequest contains parameters for updating a template.
// Nil pointers leave the corresponding field unchanged.
type UpdateTemplateRequest struct {
	TemplateID  string    `json:"-"`
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Description *string   `json:"description"`
	IsActive    *bool     `json:"isActive"`
}

// AddTemplateItemRequest contains parameters for appending a template item.
type AddTemplateItemRequest struct {
	TemplateID   string                   `json:"-"`
	Text         string                   `json:"text"`
	Type         string                   `json:"type"`
	IsRequired   bool                     `json:"isRequired"`
	StatusConfig []checklist.StatusOption `json:"statusConfig,omitempty"`
}

// UpdateTemplateItemRequest contains parameters for updating a template item.
type UpdateTemplateItemRequest struct {
	TemplateID   string                    `json:"-"`
	ItemID       string                    `json:"-"`
	Text         *string                   `json:"text"`
	IsRequired   *bool                     `json:"isRequired"`
	StatusConfig *[]checklist.StatusOption `json:"statusConfig"`
}

// TemplateFilters contains filter options for listing templates.
type TemplateFilters struct {
	Category        string
	Name            string
	ActiveOnly      bool
	IncludeArchived bool
	Limit           int
}

// Template represents a checklist template at the port boundary.
type Template struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Tags        []string        `json:"tags"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	Archived    bool            `json:"archived"`
	UsageCount  int             `json:"usageCount"`
	LastUsedAt  string          `json:"lastUsedAt,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	Items       []*TemplateItem `json:"items,omitempty"`
}

// TemplateItem represents one template line at the port boundary.
type TemplateItem struct {
	ID           string                   `json:"id"`
	TemplateID   string                   `json:"templateId"`
	Text         string                   `json:"text"`
	Type         string                   `json:"type"`
	DisplayOrder int                      `json:"displayOrder"`
	IsRequired   bool                     `json:"isRequired"`
	StatusConfig []checklist.StatusOption `json:"statusConfig,omitempty"`
}
