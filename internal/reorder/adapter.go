package reorder

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/sandeepkv93/mindflow/internal/model"
)

// Backend is the slice of the command bridge the adapter needs.
type Backend interface {
	UpdateTodoOrder(ctx context.Context, orders []model.OrderEntry) error
	GetTodos(ctx context.Context, archived bool) ([]model.Todo, error)
}

// MergeVisible folds a reordered visible subset back into the full
// collection. Items of full that are not in visible keep their relative
// order; the visible block goes in front when visibleFirst is set and after
// them otherwise. The result is a new slice.
func MergeVisible(full, visible []model.Todo, visibleFirst bool) []model.Todo {
	inVisible := make(map[string]struct{}, len(visible))
	for _, todo := range visible {
		inVisible[todo.ID] = struct{}{}
	}
	out := make([]model.Todo, 0, len(full)+len(visible))
	if visibleFirst {
		out = append(out, visible...)
	}
	for _, todo := range full {
		if _, ok := inVisible[todo.ID]; ok {
			continue
		}
		out = append(out, todo)
	}
	if !visibleFirst {
		out = append(out, visible...)
	}
	return out
}

// BuildOrderBatch assigns index*OrderStep to every non-archived todo that
// shares the moved todo's priority, in sequence order. It returns nil when the
// moved todo is missing or archived.
func BuildOrderBatch(seq []model.Todo, movedID string) []model.OrderEntry {
	var moved *model.Todo
	for i := range seq {
		if seq[i].ID == movedID {
			moved = &seq[i]
			break
		}
	}
	if moved == nil || !moved.Sortable() {
		return nil
	}
	var batch []model.OrderEntry
	for _, todo := range seq {
		if !todo.SameGroup(*moved) {
			continue
		}
		batch = append(batch, model.OrderEntry{ID: todo.ID, Order: len(batch) * model.OrderStep})
	}
	return batch
}

// ApplyBatch copies the batch's order values onto the matching todos.
func ApplyBatch(seq []model.Todo, batch []model.OrderEntry) []model.Todo {
	orders := make(map[string]int, len(batch))
	for _, entry := range batch {
		orders[entry.ID] = entry.Order
	}
	out := append([]model.Todo(nil), seq...)
	for i := range out {
		if order, ok := orders[out[i].ID]; ok {
			out[i].SortOrder = order
		}
	}
	return out
}

type Adapter struct {
	backend Backend
	logger  *log.Logger
}

func NewAdapter(backend Backend, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Adapter{backend: backend, logger: logger}
}

// Persist submits the moved todo's group as a single batch. An empty batch is
// a no-op. Failures are logged and returned; they are never retried.
func (a *Adapter) Persist(ctx context.Context, seq []model.Todo, movedID string) ([]model.OrderEntry, error) {
	batch := BuildOrderBatch(seq, movedID)
	if len(batch) == 0 {
		return nil, nil
	}
	if err := a.backend.UpdateTodoOrder(ctx, batch); err != nil {
		a.logger.Printf("reorder: persist order for %s (%d entries): %v", movedID, len(batch), err)
		return batch, fmt.Errorf("persist order: %w", err)
	}
	return batch, nil
}

// Resync reloads the canonical active list.
func (a *Adapter) Resync(ctx context.Context) ([]model.Todo, error) {
	todos, err := a.backend.GetTodos(ctx, false)
	if err != nil {
		a.logger.Printf("reorder: resync: %v", err)
		return nil, fmt.Errorf("resync todos: %w", err)
	}
	return todos, nil
}

// Outcome is the result of PersistOrResync.
type Outcome struct {
	Batch     []model.OrderEntry
	Err       error
	Reloaded  []model.Todo
	ReloadErr error
}

// Failed reports whether the optimistic order must be replaced.
func (o Outcome) Failed() bool { return o.Err != nil }

// PersistOrResync persists the batch and, when the backend rejects it,
// reloads the canonical list so the caller can replace its optimistic state.
func (a *Adapter) PersistOrResync(ctx context.Context, seq []model.Todo, movedID string) Outcome {
	batch, err := a.Persist(ctx, seq, movedID)
	out := Outcome{Batch: batch, Err: err}
	if err == nil {
		return out
	}
	out.Reloaded, out.ReloadErr = a.Resync(ctx)
	return out
}
