package primary

import (
	"context"

	"github.com/example/cobra/internal/core/checklist"
)

// LibraryService defines the primary port for the reusable item library.
type LibraryService interface {
	// CreateEntry creates a new library entry.
	CreateEntry(ctx context.Context, req CreateLibraryEntryRequest) (*LibraryEntry, error)

	// GetEntry retrieves a library entry by ID.
	GetEntry(ctx context.Context, entryID string) (*LibraryEntry, error)

	// ListEntries lists library entries, most used first.
	ListEntries(ctx context.Context, filters LibraryFilters) ([]*LibraryEntry, error)

	// UpdateEntry updates a library entry.
	UpdateEntry(ctx context.Context, req UpdateLibraryEntryRequest) (*LibraryEntry, error)

	// DeleteEntry removes a library entry. Templates that already copied
	// the entry are unaffected.
	DeleteEntry(ctx context.Context, entryID string) error
}

// CreateLibraryEntryRequest contains parameters for creating a library entry.
type CreateLibraryEntryRequest struct {
	Text         string                   `json:"text"`
	Type         string                   `json:"type"`
	Category     string                   `json:"category"`
	IsRequired   bool                     `json:"isRequired"`
	StatusConfig []checklist.StatusOption `json:"statusConfig,omitempty"`
}

// UpdateLibraryEntryRequest contains parameters for updating a library entry.
type UpdateLibraryEntryRequest struct {
	EntryID      string                    `json:"-"`
	Text         *string                   `json:"text"`
	Category     *string                   `json:"category"`
	IsRequired   *bool                     `json:"isRequired"`
	StatusConfig *[]checklist.StatusOption `json:"statusConfig"`
}

// LibraryFilters contains filter options for listing library entries.
type LibraryFilters struct {
	Category string
	Limit    int
}

// LibraryEntry represents a reusable item at the port boundary.
type LibraryEntry struct {
	ID           string                   `json:"id"`
	Text         string                   `json:"text"`
	Type         string                   `json:"type"`
	Category     string                   `json:"category"`
	IsRequired   bool                     `json:"isRequired"`
	StatusConfig []checklist.StatusOption `json:"statusConfig,omitempty"`
	UsageCount   int                      `json:"usageCount"`
	CreatedBy    string                   `json:"createdBy"`
	CreatedAt    string                   `json:"createdAt"`
	UpdatedAt    string                   `json:"updatedAt"`
}
