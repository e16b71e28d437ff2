package secondary

import "context"

// SettingRepository defines the secondary port for key-value settings.
type SettingRepository interface {
	// Upsert creates or replaces a setting by key.
	Upsert(ctx context.Context, setting *SettingRecord) error

	// Get retrieves a setting by key.
	Get(ctx context.Context, key string) (*SettingRecord, error)

	// List retrieves settings, optionally filtered by category.
	List(ctx context.Context, category string) ([]*SettingRecord, error)
}

// SettingRecord represents a configuration entry as stored in persistence.
type SettingRecord struct {
	Key       string
	Value     string
	Category  string
	IsSecret  bool
	Enabled   bool
	UpdatedBy string
	UpdatedAt string
}
