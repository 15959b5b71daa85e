package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid todo priority")
	ErrInvalidState    = errors.New("model: invalid todo state")
)

// OrderStep is the gap between consecutive sort keys inside a priority group.
const OrderStep = 10

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priority groups for display: high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	SortOrder   int        `json:"sort_order"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty"`
	Completed   bool       `json:"completed"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Sortable reports whether the todo may take part in drag reordering.
func (t Todo) Sortable() bool {
	return !t.Archived
}

// SameGroup reports whether two todos share a sort_order comparison group.
func (t Todo) SameGroup(other Todo) bool {
	return t.Priority == other.Priority && !t.Archived && !other.Archived
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: todo title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: todo created_at is required")
	}
	if t.Archived && !t.Completed {
		return fmt.Errorf("%w: archived todo must be completed", ErrInvalidState)
	}
	return nil
}

type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty"`
}

func (r CreateTodoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("model: todo title is required")
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, r.Priority)
	}
	return nil
}

// UpdateTodoRequest carries a partial update; nil fields are left untouched.
type UpdateTodoRequest struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ReminderAt  *time.Time `json:"reminder_at,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

func (r UpdateTodoRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("model: todo title is required")
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *r.Priority)
	}
	return nil
}

// Apply returns a copy of t with the request's fields merged in.
func (r UpdateTodoRequest) Apply(t Todo) Todo {
	out := t
	if r.Title != nil {
		out.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		out.Description = *r.Description
	}
	if r.Priority != nil {
		out.Priority = *r.Priority
	}
	if r.DueDate != nil {
		due := *r.DueDate
		out.DueDate = &due
	}
	if r.ReminderAt != nil {
		rem := *r.ReminderAt
		out.ReminderAt = &rem
	}
	if r.Completed != nil {
		out.Completed = *r.Completed
		// restoring from the archive un-archives; completing through update archives
		out.Archived = *r.Completed
	}
	return out
}

// OrderEntry is one (id, order) pair of an order batch.
type OrderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type TodoStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Archived  int `json:"archived"`
}
