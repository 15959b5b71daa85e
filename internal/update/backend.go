package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mindflow/internal/model"
)

func (m Model) loadTodosCmd() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		active, err := m.backend.GetTodos(ctx, false)
		if err != nil {
			return TodosLoadedMsg{Err: err}
		}
		archived, err := m.backend.GetTodos(ctx, true)
		return TodosLoadedMsg{Todos: active, Archived: archived, Err: err}
	}
}

func (m Model) loadInspirationsCmd(query string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		items, err := m.backend.SearchInspirations(ctx, query)
		return InspirationsLoadedMsg{Query: query, Items: items, Err: err}
	}
}

func (m Model) refreshStatsCmd() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		stats, err := m.backend.GetTodoStats(ctx)
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (m Model) createTodoCmd(req model.CreateTodoRequest) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		todo, err := m.backend.CreateTodo(ctx, req)
		return TodoCreatedMsg{Todo: todo, Err: err}
	}
}

func (m Model) completeTodoCmd(id string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		todo, err := m.backend.CompleteTodo(ctx, id)
		return TodoChangedMsg{Todo: todo, Err: err}
	}
}

func (m Model) restoreTodoCmd(id string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		todo, err := m.backend.RestoreTodo(ctx, id)
		return TodoChangedMsg{Todo: todo, Err: err}
	}
}

func (m Model) deleteTodoCmd(id string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		return TodoDeletedMsg{ID: id, Err: m.backend.DeleteTodo(ctx, id)}
	}
}

func (m Model) createInspirationCmd(req model.CreateInspirationRequest) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		item, err := m.backend.CreateInspiration(ctx, req)
		return InspirationCreatedMsg{Inspiration: item, Err: err}
	}
}

func (m Model) deleteInspirationCmd(id string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		return InspirationDeletedMsg{ID: id, Err: m.backend.DeleteInspiration(ctx, id)}
	}
}

// persistOrderCmd submits the batch for movedID's group. On rejection it
// reloads the canonical list in the same command.
func (m Model) persistOrderCmd(seq []model.Todo, movedID string) tea.Cmd {
	if m.backend == nil {
		return nil
	}
	snapshot := append([]model.Todo(nil), seq...)
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		out := m.adapter.PersistOrResync(ctx, snapshot, movedID)
		if out.Failed() {
			return OrderPersistFailedMsg{MovedID: movedID, Err: out.Err, Reloaded: out.Reloaded, ReloadErr: out.ReloadErr}
		}
		return OrderPersistedMsg{MovedID: movedID, Batch: out.Batch}
	}
}

func (m Model) clearReminderCmd(todoID string) tea.Cmd {
	if m.backend == nil || todoID == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.backendContext()
		defer cancel()
		return ReminderClearedMsg{TodoID: todoID, Err: m.backend.ClearReminder(ctx, todoID)}
	}
}
