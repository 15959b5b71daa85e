package storage

import "time"

type Todo struct {
	ID          string
	Title       string
	Description string
	Priority    string
	SortOrder   int
	DueDate     *time.Time
	ReminderAt  *time.Time
	Completed   bool
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Inspiration struct {
	ID        string
	Content   string
	Tags      []string
	CreatedAt time.Time
}

type OrderUpdate struct {
	ID    string
	Order int
}

type TodoStats struct {
	Total     int
	Completed int
	Pending   int
	Archived  int
}

type TodoListFilter struct {
	Archived *bool
	Priority string
	Limit    int
	Offset   int
}

type InspirationListFilter struct {
	Query  string
	Limit  int
	Offset int
}
