package checklist

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{name: "empty set is zero", completed: 0, total: 0, want: 0},
		{name: "none complete", completed: 0, total: 5, want: 0},
		{name: "all complete", completed: 5, total: 5, want: 100},
		{name: "one third rounds to 33.33", completed: 1, total: 3, want: 33.33},
		{name: "one seventh rounds to 14.29", completed: 1, total: 7, want: 14.29},
		{name: "two thirds rounds to 66.67", completed: 2, total: 3, want: 66.67},
		{name: "one of eight", completed: 1, total: 8, want: 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.completed, tt.total)
			if got != tt.want {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestIsComplete(t *testing.T) {
	statusConfig := []StatusOption{
		{Label: "Not Started", IsCompletion: false},
		{Label: "In Progress", IsCompletion: false},
		{Label: "Done", IsCompletion: true},
	}

	tests := []struct {
		name string
		item ItemState
		want bool
	}{
		{
			name: "checkbox unchecked",
			item: ItemState{Type: TypeCheckbox, IsCompleted: false},
			want: false,
		},
		{
			name: "checkbox checked",
			item: ItemState{Type: TypeCheckbox, IsCompleted: true},
			want: true,
		},
		{
			name: "status item on completion-flagged label",
			item: ItemState{Type: TypeStatus, CurrentStatus: "Done", StatusConfig: statusConfig},
			want: true,
		},
		{
			name: "status item on non-completion label",
			item: ItemState{Type: TypeStatus, CurrentStatus: "In Progress", StatusConfig: statusConfig},
			want: false,
		},
		{
			name: "status item with unknown label",
			item: ItemState{Type: TypeStatus, CurrentStatus: "Bogus", StatusConfig: statusConfig},
			want: false,
		},
		{
			name: "status item ignores completion flag",
			item: ItemState{Type: TypeStatus, IsCompleted: true, CurrentStatus: "Not Started", StatusConfig: statusConfig},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplete(tt.item); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	requiredChecked := ItemState{Type: TypeCheckbox, IsRequired: true, IsCompleted: true}
	requiredUnchecked := ItemState{Type: TypeCheckbox, IsRequired: true}
	optionalChecked := ItemState{Type: TypeCheckbox, IsCompleted: true}
	optionalUnchecked := ItemState{Type: TypeCheckbox}

	tests := []struct {
		name  string
		items []ItemState
		want  Counters
	}{
		{
			name:  "no items",
			items: nil,
			want:  Counters{},
		},
		{
			name:  "first of three complete",
			items: []ItemState{requiredChecked, requiredUnchecked, optionalUnchecked},
			want: Counters{
				TotalItems:             3,
				CompletedItems:         1,
				RequiredItems:          2,
				RequiredItemsCompleted: 1,
				ProgressPct:            33.33,
			},
		},
		{
			name:  "only the optional item complete",
			items: []ItemState{requiredUnchecked, requiredUnchecked, optionalChecked},
			want: Counters{
				TotalItems:             3,
				CompletedItems:         1,
				RequiredItems:          2,
				RequiredItemsCompleted: 0,
				ProgressPct:            33.33,
			},
		},
		{
			name: "mixed checkbox and status items",
			items: []ItemState{
				requiredChecked,
				{
					Type:       TypeStatus,
					IsRequired: true,
					StatusConfig: []StatusOption{
						{Label: "Open", IsCompletion: false},
						{Label: "Resolved", IsCompletion: true},
					},
					CurrentStatus: "Resolved",
				},
				optionalUnchecked,
			},
			want: Counters{
				TotalItems:             3,
				CompletedItems:         2,
				RequiredItems:          2,
				RequiredItemsCompleted: 2,
				ProgressPct:            66.67,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.items)
			if got != tt.want {
				t.Errorf("Aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregateInvariants(t *testing.T) {
	items := []ItemState{
		{Type: TypeCheckbox, IsRequired: true, IsCompleted: true},
		{Type: TypeCheckbox, IsRequired: true},
		{Type: TypeCheckbox, IsCompleted: true},
		{Type: TypeCheckbox},
	}
	c := Aggregate(items)

	if c.CompletedItems > c.TotalItems {
		t.Errorf("completed %d exceeds total %d", c.CompletedItems, c.TotalItems)
	}
	if c.RequiredItemsCompleted > c.RequiredItems {
		t.Errorf("required completed %d exceeds required %d", c.RequiredItemsCompleted, c.RequiredItems)
	}
	if c.RequiredItems > c.TotalItems {
		t.Errorf("required %d exceeds total %d", c.RequiredItems, c.TotalItems)
	}
}
