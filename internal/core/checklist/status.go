package checklist

import (
	"encoding/json"
	"fmt"
)

// Item types.
const (
	TypeCheckbox = "checkbox"
	TypeStatus   = "status"
)

// StatusOption is one labeled state a status-type item can take.
type StatusOption struct {
	Label        string `json:"label"`
	IsCompletion bool   `json:"isCompletion"`
}

// ValidItemType reports whether t is a known item type.
func ValidItemType(t string) bool {
	return t == TypeCheckbox || t == TypeStatus
}

// ParseStatusConfig decodes the stored JSON status configuration.
// An empty string yields an empty configuration.
func ParseStatusConfig(raw string) ([]StatusOption, error) {
	if raw == "" {
		return nil, nil
	}
	var opts []StatusOption
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("invalid status configuration: %w", err)
	}
	return opts, nil
}

// EncodeStatusConfig serializes a status configuration for storage.
func EncodeStatusConfig(opts []StatusOption) (string, error) {
	if len(opts) == 0 {
		return "", nil
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode status configuration: %w", err)
	}
	return string(data), nil
}

// ValidateStatusConfig checks that a status-type item carries a usable
// configuration: at least one option, no duplicate labels, and at least one
// option flagged as completion-equivalent (otherwise the item could never
// count toward progress).
func ValidateStatusConfig(opts []StatusOption) error {
	if len(opts) == 0 {
		return fmt.Errorf("status items require at least one status option")
	}
	seen := make(map[string]bool, len(opts))
	hasCompletion := false
	for _, opt := range opts {
		if opt.Label == "" {
			return fmt.Errorf("status option label must not be empty")
		}
		if seen[opt.Label] {
			return fmt.Errorf("duplicate status label %q", opt.Label)
		}
		seen[opt.Label] = true
		if opt.IsCompletion {
			hasCompletion = true
		}
	}
	if !hasCompletion {
		return fmt.Errorf("at least one status option must be completion-equivalent")
	}
	return nil
}

// HasStatus reports whether label is one of the configured options.
func HasStatus(opts []StatusOption, label string) bool {
	for _, opt := range opts {
		if opt.Label == label {
			return true
		}
	}
	return false
}
