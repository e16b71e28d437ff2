package primary

import "context"

// SettingsService defines the primary port for admin settings.
type SettingsService interface {
	// UpsertSetting creates or replaces a setting. Admin only.
	UpsertSetting(ctx context.Context, req UpsertSettingRequest) (*Setting, error)

	// GetSetting retrieves a setting by key. Secret values are masked
	// unless the caller is an admin requesting reveal.
	GetSetting(ctx context.Context, key string, reveal bool) (*Setting, error)

	// ListSettings lists settings, optionally filtered by category.
	// Secret values are always masked in lists.
	ListSettings(ctx context.Context, category string) ([]*Setting, error)

	// IntegrationStatus reports per-platform configuration state.
	IntegrationStatus(ctx context.Context) ([]*IntegrationStatus, error)
}

// UpsertSettingRequest contains parameters for writing a setting.
type UpsertSettingRequest struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
	IsSecret bool   `json:"isSecret"`
	Enabled  bool   `json:"enabled"`
}

// Setting represents a configuration entry at the port boundary.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"` // masked for secrets
	Category  string `json:"category"`
	IsSecret  bool   `json:"isSecret"`
	Enabled   bool   `json:"enabled"`
	UpdatedBy string `json:"updatedBy"`
	UpdatedAt string `json:"updatedAt"`
}

// IntegrationStatus reports one chat platform's configuration state.
type IntegrationStatus struct {
	Platform   string `json:"platform"`
	Configured bool   `json:"configured"` // a channel is bound to the platform
	Enabled    bool   `json:"enabled"`    // at least one bound channel is enabled
	Channels   int    `json:"channels"`
}
