package reorder

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/sandeepkv93/mindflow/internal/model"
)

type fakeBackend struct {
	todos     []model.Todo
	orderErr  error
	getErr    error
	submitted [][]model.OrderEntry
	gets      int
	// beforeFail mutates the stored list before a rejection is returned.
	beforeFail func(f *fakeBackend)
}

func (f *fakeBackend) UpdateTodoOrder(_ context.Context, orders []model.OrderEntry) error {
	f.submitted = append(f.submitted, slices.Clone(orders))
	if f.orderErr != nil {
		if f.beforeFail != nil {
			f.beforeFail(f)
		}
		return f.orderErr
	}
	byID := make(map[string]int, len(orders))
	for _, o := range orders {
		byID[o.ID] = o.Order
	}
	for i := range f.todos {
		if order, ok := byID[f.todos[i].ID]; ok {
			f.todos[i].SortOrder = order
		}
	}
	return nil
}

func (f *fakeBackend) GetTodos(_ context.Context, archived bool) ([]model.Todo, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []model.Todo
	for _, todo := range f.todos {
		if todo.Archived == archived {
			out = append(out, todo)
		}
	}
	return out, nil
}

func todo(id string, p model.Priority, order int) model.Todo {
	return model.Todo{ID: id, Title: id, Priority: p, SortOrder: order}
}

func todoIDs(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestReorderThreeHighItems(t *testing.T) {
	seq := []model.Todo{
		todo("A", model.PriorityHigh, 0),
		todo("B", model.PriorityHigh, 10),
		todo("C", model.PriorityHigh, 20),
	}
	backend := &fakeBackend{todos: slices.Clone(seq)}
	adapter := NewAdapter(backend, nil)

	moved, ok := MoveFunc(seq, func(t model.Todo) string { return t.ID }, "A", "C")
	if !ok || !slices.Equal(todoIDs(moved), []string{"B", "C", "A"}) {
		t.Fatalf("expected [B C A], got %v", todoIDs(moved))
	}

	batch, err := adapter.Persist(t.Context(), moved, "A")
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	want := []model.OrderEntry{{ID: "B", Order: 0}, {ID: "C", Order: 10}, {ID: "A", Order: 20}}
	if !slices.Equal(batch, want) {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if len(backend.submitted) != 1 || !slices.Equal(backend.submitted[0], want) {
		t.Fatalf("expected exactly one submission of %+v, got %+v", want, backend.submitted)
	}
}

func TestBuildOrderBatchScopesToGroup(t *testing.T) {
	seq := []model.Todo{
		todo("h1", model.PriorityHigh, 0),
		todo("l1", model.PriorityLow, 0),
		todo("h2", model.PriorityHigh, 10),
		{ID: "h3", Priority: model.PriorityHigh, Completed: true, Archived: true},
		todo("h4", model.PriorityHigh, 20),
	}
	batch := BuildOrderBatch(seq, "h2")
	want := []model.OrderEntry{{ID: "h1", Order: 0}, {ID: "h2", Order: 10}, {ID: "h4", Order: 20}}
	if !slices.Equal(batch, want) {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if again := BuildOrderBatch(seq, "h2"); !slices.Equal(again, batch) {
		t.Fatal("expected batch to be idempotent")
	}
	if BuildOrderBatch(seq, "h3") != nil {
		t.Fatal("expected archived moved item to yield no batch")
	}
	if BuildOrderBatch(seq, "missing") != nil {
		t.Fatal("expected unknown moved item to yield no batch")
	}
}

func TestPersistArchivedNeverCallsBackend(t *testing.T) {
	backend := &fakeBackend{}
	adapter := NewAdapter(backend, nil)
	seq := []model.Todo{
		{ID: "x", Priority: model.PriorityLow, Completed: true, Archived: true},
		{ID: "y", Priority: model.PriorityLow, Completed: true, Archived: true},
	}
	batch, err := adapter.Persist(t.Context(), seq, "x")
	if err != nil || batch != nil {
		t.Fatalf("expected no-op, got %+v err=%v", batch, err)
	}
	if len(backend.submitted) != 0 {
		t.Fatal("expected no backend call for archived todos")
	}
}

func TestPersistFailureResyncsFromBackend(t *testing.T) {
	canonical := []model.Todo{
		todo("A", model.PriorityHigh, 0),
		todo("B", model.PriorityHigh, 10),
		todo("C", model.PriorityHigh, 20),
	}
	backend := &fakeBackend{todos: slices.Clone(canonical), orderErr: errors.New("disk full")}
	adapter := NewAdapter(backend, nil)

	optimistic, _ := MoveFunc(canonical, func(t model.Todo) string { return t.ID }, "A", "C")
	out := adapter.PersistOrResync(t.Context(), optimistic, "A")
	if !out.Failed() {
		t.Fatal("expected failure")
	}
	if out.ReloadErr != nil {
		t.Fatalf("unexpected reload error: %v", out.ReloadErr)
	}
	fresh, _ := backend.GetTodos(t.Context(), false)
	if !slices.Equal(todoIDs(out.Reloaded), todoIDs(fresh)) {
		t.Fatalf("expected reload to match backend snapshot, got %v want %v", todoIDs(out.Reloaded), todoIDs(fresh))
	}
	if len(backend.submitted) != 1 {
		t.Fatalf("expected a single attempt without retry, got %d", len(backend.submitted))
	}
}

func TestPersistFailureReloadsChangedBackendState(t *testing.T) {
	before := []model.Todo{
		todo("A", model.PriorityHigh, 0),
		todo("B", model.PriorityHigh, 10),
		todo("C", model.PriorityHigh, 20),
	}
	backend := &fakeBackend{
		todos:    slices.Clone(before),
		orderErr: errors.New("database is locked"),
		beforeFail: func(f *fakeBackend) {
			f.todos = []model.Todo{
				todo("C", model.PriorityHigh, 0),
				todo("A", model.PriorityHigh, 10),
				todo("B", model.PriorityHigh, 20),
				todo("D", model.PriorityHigh, 30),
			}
		},
	}
	adapter := NewAdapter(backend, nil)

	optimistic, _ := MoveFunc(before, func(t model.Todo) string { return t.ID }, "A", "C")
	out := adapter.PersistOrResync(t.Context(), optimistic, "A")
	if !out.Failed() || out.ReloadErr != nil {
		t.Fatalf("expected a failed save with a clean reload, got %+v", out)
	}
	if got := todoIDs(out.Reloaded); !slices.Equal(got, []string{"C", "A", "B", "D"}) {
		t.Fatalf("expected the changed backend order, got %v", got)
	}
}

func TestPersistOrResyncSuccessSkipsReload(t *testing.T) {
	backend := &fakeBackend{todos: []model.Todo{todo("A", model.PriorityLow, 0), todo("B", model.PriorityLow, 10)}}
	adapter := NewAdapter(backend, nil)
	out := adapter.PersistOrResync(t.Context(), backend.todos, "B")
	if out.Failed() || backend.gets != 0 || out.Reloaded != nil {
		t.Fatalf("expected no reload on success, got %+v gets=%d", out, backend.gets)
	}
}

func TestMergeVisiblePreservesComplement(t *testing.T) {
	full := []model.Todo{
		todo("a", model.PriorityHigh, 0),
		todo("x", model.PriorityLow, 0),
		todo("b", model.PriorityHigh, 10),
		{ID: "z", Priority: model.PriorityHigh, Completed: true, Archived: true},
		todo("y", model.PriorityLow, 10),
	}
	visible := []model.Todo{todo("b", model.PriorityHigh, 10), todo("a", model.PriorityHigh, 0)}

	got := MergeVisible(full, visible, true)
	if !slices.Equal(todoIDs(got), []string{"b", "a", "x", "z", "y"}) {
		t.Fatalf("unexpected prepend merge: %v", todoIDs(got))
	}
	got = MergeVisible(full, visible, false)
	if !slices.Equal(todoIDs(got), []string{"x", "z", "y", "b", "a"}) {
		t.Fatalf("unexpected append merge: %v", todoIDs(got))
	}
	if !slices.Equal(todoIDs(full), []string{"a", "x", "b", "z", "y"}) {
		t.Fatal("merge must not modify its input")
	}
}

func TestApplyBatch(t *testing.T) {
	seq := []model.Todo{todo("a", model.PriorityHigh, 50), todo("b", model.PriorityHigh, 5)}
	out := ApplyBatch(seq, []model.OrderEntry{{ID: "a", Order: 0}, {ID: "b", Order: 10}})
	if out[0].SortOrder != 0 || out[1].SortOrder != 10 {
		t.Fatalf("unexpected orders: %+v", out)
	}
	if seq[0].SortOrder != 50 {
		t.Fatal("apply must not modify its input")
	}
}
