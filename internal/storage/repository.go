package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTodo(ctx context.Context, in Todo) error
	GetTodo(ctx context.Context, id string) (Todo, error)
	UpdateTodo(ctx context.Context, in Todo) error
	DeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error)
	NextSortOrder(ctx context.Context, priority string) (int, error)
	UpdateTodoOrder(ctx context.Context, updates []OrderUpdate, at time.Time) error
	TodoStats(ctx context.Context) (TodoStats, error)
	ListDueReminders(ctx context.Context, now time.Time) ([]Todo, error)

	CreateInspiration(ctx context.Context, in Inspiration) error
	GetInspiration(ctx context.Context, id string) (Inspiration, error)
	DeleteInspiration(ctx context.Context, id string) error
	ListInspirations(ctx context.Context, filter InspirationListFilter) ([]Inspiration, error)

	Path() string
	Close() error
}
