package update

import (
	"log"
	"strings"

	"github.com/sandeepkv93/mindflow/internal/model"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func (m Model) logf(format string, args ...any) {
	log.Printf(format, args...)
}

func todoID(t model.Todo) string { return t.ID }

func todoIDs(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func matchesQuery(t model.Todo, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q)
}

func nextPriorityFilter(p model.Priority) model.Priority {
	switch p {
	case "":
		return model.PriorityHigh
	case model.PriorityHigh:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityLow
	default:
		return ""
	}
}

func filterLabel(f FilterState) string {
	parts := make([]string, 0, 2)
	if f.Priority != "" {
		parts = append(parts, "priority="+string(f.Priority))
	}
	if strings.TrimSpace(f.Query) != "" {
		parts = append(parts, "search="+f.Query)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}
