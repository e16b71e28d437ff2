package checklist

import "strings"

// VisibilityContext provides the inputs for the position-based filter.
type VisibilityContext struct {
	AssignedPositions string // comma-separated role names; empty means visible to all
	UserPositions     []string
	ShowAll           bool // admin override; bypasses the position check only
}

// Visible reports whether a checklist instance may be shown to the caller.
// Rules:
//   - empty assigned positions means visible to everyone
//   - otherwise at least one of the user's positions must match a token
//     in the comma-separated list (case-sensitive, whitespace-trimmed)
//   - ShowAll bypasses the position check entirely
func Visible(ctx VisibilityContext) bool {
	if ctx.ShowAll {
		return true
	}
	assigned := SplitPositions(ctx.AssignedPositions)
	if len(assigned) == 0 {
		return true
	}
	for _, have := range ctx.UserPositions {
		for _, want := range assigned {
			if have == want {
				return true
			}
		}
	}
	return false
}

// SplitPositions tokenizes a comma-separated position list, trimming
// whitespace and dropping empty entries.
func SplitPositions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
