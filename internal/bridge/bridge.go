// Package bridge exposes the persistent store as named commands. The UI and
// the CLI only ever reach storage through it.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/storage"
)

type Bridge struct {
	repo  storage.Repository
	now   func() time.Time
	newID func() string
}

type Option func(*Bridge)

func WithClock(now func() time.Time) Option {
	return func(b *Bridge) { b.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Bridge) { b.newID = newID }
}

func New(repo storage.Repository, opts ...Option) *Bridge {
	b := &Bridge{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) GetTodos(ctx context.Context, archived bool) ([]model.Todo, error) {
	rows, err := b.repo.ListTodos(ctx, storage.TodoListFilter{Archived: &archived})
	if err != nil {
		return nil, wrapStorage("get todos", err)
	}
	return toModelTodos(rows), nil
}

func (b *Bridge) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	row, err := b.repo.GetTodo(ctx, strings.TrimSpace(id))
	if err != nil {
		return model.Todo{}, wrapStorage("get todo", err)
	}
	return toModelTodo(row), nil
}

// CreateTodo stores a new todo at the end of its priority group.
func (b *Bridge) CreateTodo(ctx context.Context, req model.CreateTodoRequest) (model.Todo, error) {
	if req.Priority == "" {
		req.Priority = model.PriorityMedium
	}
	if err := req.Validate(); err != nil {
		return model.Todo{}, invalidArgument(err)
	}
	order, err := b.repo.NextSortOrder(ctx, string(req.Priority))
	if err != nil {
		return model.Todo{}, wrapStorage("create todo", err)
	}
	now := b.now()
	todo := model.Todo{
		ID:          b.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    req.Priority,
		SortOrder:   order,
		DueDate:     utcPtr(req.DueDate),
		ReminderAt:  utcPtr(req.ReminderAt),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.repo.CreateTodo(ctx, toStorageTodo(todo)); err != nil {
		return model.Todo{}, wrapStorage("create todo", err)
	}
	return todo, nil
}

// UpdateTodo applies a partial update. A priority change moves the todo to
// the end of its new group.
func (b *Bridge) UpdateTodo(ctx context.Context, req model.UpdateTodoRequest) (model.Todo, error) {
	if err := req.Validate(); err != nil {
		return model.Todo{}, invalidArgument(err)
	}
	row, err := b.repo.GetTodo(ctx, req.ID)
	if err != nil {
		return model.Todo{}, wrapStorage("update todo", err)
	}
	current := toModelTodo(row)
	next := req.Apply(current)
	next.DueDate = utcPtr(next.DueDate)
	next.ReminderAt = utcPtr(next.ReminderAt)
	if next.Priority != current.Priority || (current.Archived && !next.Archived) {
		order, err := b.repo.NextSortOrder(ctx, string(next.Priority))
		if err != nil {
			return model.Todo{}, wrapStorage("update todo", err)
		}
		next.SortOrder = order
	}
	next.UpdatedAt = b.now()
	if err := b.repo.UpdateTodo(ctx, toStorageTodo(next)); err != nil {
		return model.Todo{}, wrapStorage("update todo", err)
	}
	return next, nil
}

// CompleteTodo marks the todo done and moves it to the archive.
func (b *Bridge) CompleteTodo(ctx context.Context, id string) (model.Todo, error) {
	done := true
	return b.UpdateTodo(ctx, model.UpdateTodoRequest{ID: id, Completed: &done})
}

// RestoreTodo brings an archived todo back to the active list.
func (b *Bridge) RestoreTodo(ctx context.Context, id string) (model.Todo, error) {
	done := false
	return b.UpdateTodo(ctx, model.UpdateTodoRequest{ID: id, Completed: &done})
}

func (b *Bridge) DeleteTodo(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &CommandError{Code: ErrCodeInvalidArgument, Message: "todo id is required"}
	}
	if err := b.repo.DeleteTodo(ctx, id); err != nil {
		return wrapStorage("delete todo", err)
	}
	return nil
}

// UpdateTodoOrder writes the whole batch in one transaction.
func (b *Bridge) UpdateTodoOrder(ctx context.Context, orders []model.OrderEntry) error {
	if len(orders) == 0 {
		return nil
	}
	updates := make([]storage.OrderUpdate, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		if strings.TrimSpace(o.ID) == "" {
			return &CommandError{Code: ErrCodeInvalidArgument, Message: "order entry id is required"}
		}
		if seen[o.ID] {
			return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("duplicate order entry: %s", o.ID)}
		}
		seen[o.ID] = true
		updates = append(updates, storage.OrderUpdate{ID: o.ID, Order: o.Order})
	}
	if err := b.repo.UpdateTodoOrder(ctx, updates, b.now()); err != nil {
		return wrapStorage("update todo order", err)
	}
	return nil
}

func (b *Bridge) GetTodoStats(ctx context.Context) (model.TodoStats, error) {
	stats, err := b.repo.TodoStats(ctx)
	if err != nil {
		return model.TodoStats{}, wrapStorage("get todo stats", err)
	}
	return model.TodoStats{
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
		Archived:  stats.Archived,
	}, nil
}

// GetTodosWithReminders returns open todos whose reminder time has passed.
func (b *Bridge) GetTodosWithReminders(ctx context.Context) ([]model.Todo, error) {
	rows, err := b.repo.ListDueReminders(ctx, b.now())
	if err != nil {
		return nil, wrapStorage("get todos with reminders", err)
	}
	return toModelTodos(rows), nil
}

// ClearReminder drops the reminder time so a fired reminder does not repeat.
func (b *Bridge) ClearReminder(ctx context.Context, id string) error {
	row, err := b.repo.GetTodo(ctx, id)
	if err != nil {
		return wrapStorage("clear reminder", err)
	}
	row.ReminderAt = nil
	row.UpdatedAt = b.now()
	if err := b.repo.UpdateTodo(ctx, row); err != nil {
		return wrapStorage("clear reminder", err)
	}
	return nil
}

func (b *Bridge) CreateInspiration(ctx context.Context, req model.CreateInspirationRequest) (model.Inspiration, error) {
	if err := req.Validate(); err != nil {
		return model.Inspiration{}, invalidArgument(err)
	}
	insp := model.Inspiration{
		ID:        b.newID(),
		Content:   strings.TrimSpace(req.Content),
		Tags:      model.NormalizeTags(req.Tags),
		CreatedAt: b.now(),
	}
	err := b.repo.CreateInspiration(ctx, storage.Inspiration{
		ID:        insp.ID,
		Content:   insp.Content,
		Tags:      insp.Tags,
		CreatedAt: insp.CreatedAt,
	})
	if err != nil {
		return model.Inspiration{}, wrapStorage("create inspiration", err)
	}
	return insp, nil
}

func (b *Bridge) GetInspirations(ctx context.Context) ([]model.Inspiration, error) {
	return b.SearchInspirations(ctx, "")
}

// SearchInspirations matches the query against content and tags.
func (b *Bridge) SearchInspirations(ctx context.Context, query string) ([]model.Inspiration, error) {
	rows, err := b.repo.ListInspirations(ctx, storage.InspirationListFilter{Query: strings.TrimSpace(query)})
	if err != nil {
		return nil, wrapStorage("get inspirations", err)
	}
	out := make([]model.Inspiration, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Inspiration{ID: row.ID, Content: row.Content, Tags: row.Tags, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (b *Bridge) DeleteInspiration(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &CommandError{Code: ErrCodeInvalidArgument, Message: "inspiration id is required"}
	}
	if err := b.repo.DeleteInspiration(ctx, id); err != nil {
		return wrapStorage("delete inspiration", err)
	}
	return nil
}

func (b *Bridge) DatabasePath() string {
	return b.repo.Path()
}

func invalidArgument(err error) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error(), Err: err}
}

func wrapStorage(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &CommandError{Code: ErrCodeNotFound, Message: op + ": not found", Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func utcPtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := v.UTC()
	return &t
}

func toModelTodo(row storage.Todo) model.Todo {
	return model.Todo{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    model.Priority(row.Priority),
		SortOrder:   row.SortOrder,
		DueDate:     row.DueDate,
		ReminderAt:  row.ReminderAt,
		Completed:   row.Completed,
		Archived:    row.Archived,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toModelTodos(rows []storage.Todo) []model.Todo {
	out := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		out = append(out, toModelTodo(row))
	}
	return out
}

func toStorageTodo(t model.Todo) storage.Todo {
	return storage.Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		SortOrder:   t.SortOrder,
		DueDate:     t.DueDate,
		ReminderAt:  t.ReminderAt,
		Completed:   t.Completed,
		Archived:    t.Archived,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
