// Package checklist contains the pure business logic for checklist progress
// and visibility. Functions here evaluate item state without side effects;
// persistence and notification live in the adapters.
package checklist

import "math"

// ItemState is the minimal item view needed to classify completion.
type ItemState struct {
	Type          string // "checkbox" or "status"
	IsRequired    bool
	IsCompleted   bool   // checkbox items
	CurrentStatus string // status items
	StatusConfig  []StatusOption
}

// Counters holds the aggregate progress of a checklist instance.
type Counters struct {
	TotalItems             int
	CompletedItems         int
	RequiredItems          int
	RequiredItemsCompleted int
	ProgressPct            float64
}

// IsComplete classifies a single item as completed.
// A checkbox item is complete iff its completion flag is set. A status item
// is complete iff its current status is flagged as completion-equivalent in
// the item's status configuration.
func IsComplete(item ItemState) bool {
	if item.Type == TypeStatus {
		for _, opt := range item.StatusConfig {
			if opt.Label == item.CurrentStatus {
				return opt.IsCompletion
			}
		}
		return false
	}
	return item.IsCompleted
}

// Aggregate recomputes the four progress counters and the percentage over
// the full item set of an instance.
func Aggregate(items []ItemState) Counters {
	c := Counters{TotalItems: len(items)}
	for _, item := range items {
		done := IsComplete(item)
		if done {
			c.CompletedItems++
		}
		if item.IsRequired {
			c.RequiredItems++
			if done {
				c.RequiredItemsCompleted++
			}
		}
	}
	c.ProgressPct = Percentage(c.CompletedItems, c.TotalItems)
	return c
}

// Percentage returns completed/total as a percentage rounded half-up to two
// decimal places. An empty item set yields 0.
func Percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	return math.Round(pct*100) / 100
}
