package update

import (
	"sort"

	"github.com/sandeepkv93/mindflow/internal/model"
)

// AppState is the cached view of the backend. Todos holds the active list in
// display order: grouped by priority, then by sort order inside a group.
// Only the methods below mutate it.
type AppState struct {
	Todos        []model.Todo
	Archived     []model.Todo
	Inspirations []model.Inspiration
	Stats        model.TodoStats
}

func (s *AppState) SetTodos(todos []model.Todo) {
	s.Todos = append([]model.Todo(nil), todos...)
}

func (s *AppState) SetArchived(todos []model.Todo) {
	s.Archived = append([]model.Todo(nil), todos...)
}

func (s *AppState) SetStats(stats model.TodoStats) {
	s.Stats = stats
}

func (s *AppState) SetInspirations(items []model.Inspiration) {
	s.Inspirations = append([]model.Inspiration(nil), items...)
}

// AddTodo inserts an active todo at the end of its priority group.
func (s *AppState) AddTodo(todo model.Todo) {
	s.RemoveTodo(todo.ID)
	if todo.Archived {
		s.Archived = append([]model.Todo{todo}, s.Archived...)
		return
	}
	at := len(s.Todos)
	for i, existing := range s.Todos {
		if existing.Priority.Rank() > todo.Priority.Rank() {
			at = i
			break
		}
	}
	s.Todos = append(s.Todos[:at:at], append([]model.Todo{todo}, s.Todos[at:]...)...)
}

// ReplaceTodo swaps in a changed todo, moving it between the active and
// archived lists when its archived flag changed.
func (s *AppState) ReplaceTodo(todo model.Todo) {
	for i := range s.Todos {
		if s.Todos[i].ID == todo.ID && !todo.Archived && s.Todos[i].Priority == todo.Priority {
			s.Todos[i] = todo
			return
		}
	}
	s.AddTodo(todo)
}

func (s *AppState) RemoveTodo(id string) {
	s.Todos = removeTodo(s.Todos, id)
	s.Archived = removeTodo(s.Archived, id)
}

// ApplyReorder replaces the active list with a reordered full sequence,
// keeping priority groups contiguous.
func (s *AppState) ApplyReorder(full []model.Todo) {
	next := append([]model.Todo(nil), full...)
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Priority.Rank() < next[j].Priority.Rank()
	})
	s.Todos = next
}

func (s *AppState) Todo(id string) (model.Todo, bool) {
	for _, list := range [][]model.Todo{s.Todos, s.Archived} {
		for _, t := range list {
			if t.ID == id {
				return t, true
			}
		}
	}
	return model.Todo{}, false
}

func (s *AppState) AddInspiration(item model.Inspiration) {
	s.Inspirations = append([]model.Inspiration{item}, s.Inspirations...)
}

func (s *AppState) RemoveInspiration(id string) {
	out := s.Inspirations[:0:0]
	for _, item := range s.Inspirations {
		if item.ID != id {
			out = append(out, item)
		}
	}
	s.Inspirations = out
}

func (s *AppState) Inspiration(id string) (model.Inspiration, bool) {
	for _, item := range s.Inspirations {
		if item.ID == id {
			return item, true
		}
	}
	return model.Inspiration{}, false
}

func removeTodo(list []model.Todo, id string) []model.Todo {
	out := list[:0:0]
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
