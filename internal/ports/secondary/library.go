package secondary

import "context"

// LibraryRepository defines the secondary port for the reusable item library.
type LibraryRepository interface {
	// Create persists a new library entry.
	Create(ctx context.Context, entry *LibraryItemRecord) error

	// GetByID retrieves a library entry by its ID.
	GetByID(ctx context.Context, id string) (*LibraryItemRecord, error)

	// Update updates an existing library entry.
	Update(ctx context.Context, entry *LibraryItemRecord) error

	// Delete removes a library entry.
	Delete(ctx context.Context, id string) error

	// List retrieves library entries, most used first.
	List(ctx context.Context, filters LibraryFilters) ([]*LibraryItemRecord, error)

	// RecordUse increments the entry's usage counter.
	RecordUse(ctx context.Context, id string) error

	// GetNextID returns the next available library entry ID.
	GetNextID(ctx context.Context) (string, error)
}

// LibraryItemRecord represents a reusable item as stored in persistence.
type LibraryItemRecord struct {
	ID           string
	Text         string
	Type         string
	StatusConfig string
	Category     string
	IsRequired   bool
	UsageCount   int
	CreatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// LibraryFilters contains filter options for querying the item library.
type LibraryFilters struct {
	Category string
	Limit    int
}
