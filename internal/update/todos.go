package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/reorder"
	"github.com/sandeepkv93/mindflow/internal/views"
)

// visibleTodos is the filtered active sequence, the one a drag reorders.
func (m Model) visibleTodos() []model.Todo {
	out := make([]model.Todo, 0, len(m.State.Todos))
	for _, t := range m.State.Todos {
		if m.Filter.Priority != "" && t.Priority != m.Filter.Priority {
			continue
		}
		if !matchesQuery(t, m.Filter.Query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (m Model) visibleArchived() []model.Todo {
	out := make([]model.Todo, 0, len(m.State.Archived))
	for _, t := range m.State.Archived {
		if matchesQuery(t, m.Filter.Query) {
			out = append(out, t)
		}
	}
	return out
}

// currentIDs lists the selectable ids of the current view in display order.
func (m Model) currentIDs() []string {
	switch m.CurrentView {
	case ViewArchived:
		return todoIDs(m.visibleArchived())
	case ViewInspirations:
		out := make([]string, 0, len(m.State.Inspirations))
		for _, item := range m.State.Inspirations {
			out = append(out, item.ID)
		}
		return out
	default:
		return todoIDs(m.visibleTodos())
	}
}

func (m *Model) ensureSelection() {
	ids := m.currentIDs()
	for _, id := range ids {
		if id == m.SelectedID {
			return
		}
	}
	m.SelectedID = ""
	if len(ids) > 0 {
		m.SelectedID = ids[0]
	}
}

func (m *Model) moveCursor(delta int) {
	ids := m.currentIDs()
	if len(ids) == 0 {
		m.SelectedID = ""
		return
	}
	idx := 0
	for i, id := range ids {
		if id == m.SelectedID {
			idx = i + delta
			break
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	m.SelectedID = ids[idx]
}

func (m *Model) switchView(v View) {
	if !isKnownView(v) {
		return
	}
	m.CurrentView = v
	m.drag.SetEnabled(v == ViewTodos)
	m.ensureSelection()
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "esc":
		if m.drag.Active() {
			m.drag.Cancel()
			m.Status = StatusBar{Text: "drag cancelled"}
			return m, nil
		}
		m.Filter = FilterState{}
		m.ensureSelection()
		m.Status = StatusBar{Text: "filters cleared"}
		if m.CurrentView == ViewInspirations {
			return m, m.loadInspirationsCmd("")
		}
		return m, nil
	}

	switch m.CurrentView {
	case ViewTodos:
		switch msg.String() {
		case "enter", " ", "c":
			return m.runAction(views.ActionComplete, m.SelectedID)
		case "d", "x", "delete":
			return m.runAction(views.ActionDelete, m.SelectedID)
		case "K", "shift+up":
			return m.moveSelected(-1)
		case "J", "shift+down":
			return m.moveSelected(1)
		case "f":
			m.Filter.Priority = nextPriorityFilter(m.Filter.Priority)
			m.ensureSelection()
			m.Status = StatusBar{Text: "filter: " + filterLabel(m.Filter)}
			return m, nil
		}
	case ViewArchived:
		switch msg.String() {
		case "enter", "r":
			return m.runAction(views.ActionRestore, m.SelectedID)
		case "d", "x", "delete":
			return m.runAction(views.ActionDelete, m.SelectedID)
		}
	case ViewInspirations:
		switch msg.String() {
		case "d", "x", "delete":
			return m.runAction(views.ActionDeleteInspiration, m.SelectedID)
		}
	}
	return m, nil
}

// runAction performs a row button action. It never touches gesture state.
func (m Model) runAction(action, id string) (Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	m.SelectedID = id
	switch action {
	case views.ActionComplete:
		return m, m.completeTodoCmd(id)
	case views.ActionRestore:
		return m, m.restoreTodoCmd(id)
	case views.ActionDelete:
		return m, m.deleteTodoCmd(id)
	case views.ActionDeleteInspiration:
		return m, m.deleteInspirationCmd(id)
	}
	return m, nil
}

// moveSelected swaps the selected todo with its visible neighbour in the same
// priority group through the same pipeline a drag uses.
func (m Model) moveSelected(delta int) (Model, tea.Cmd) {
	visible := m.visibleTodos()
	from := -1
	for i, t := range visible {
		if t.ID == m.SelectedID {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(visible) || visible[to].Priority != visible[from].Priority {
		m.Status = StatusBar{Text: "cannot move further within this priority"}
		return m, nil
	}
	seq, ok := reorder.Move(todoIDs(visible), visible[from].ID, visible[to].ID)
	if !ok {
		return m, nil
	}
	return m.commitReorder(visible, seq, visible[from].ID)
}

// commitReorder folds the reordered visible ids back into the full list,
// applies the new sort keys optimistically and persists the moved group.
func (m Model) commitReorder(visible []model.Todo, seq []string, movedID string) (Model, tea.Cmd) {
	reordered := reorder.Arrange(visible, todoID, seq)
	m.State.ApplyReorder(reorder.MergeVisible(m.State.Todos, reordered, true))
	batch := reorder.BuildOrderBatch(m.State.Todos, movedID)
	if len(batch) == 0 {
		return m, nil
	}
	m.State.ApplyReorder(reorder.ApplyBatch(m.State.Todos, batch))
	m.SelectedID = movedID

	cmds := []tea.Cmd{m.persistOrderCmd(m.State.Todos, movedID)}
	if m.inFlight == 0 {
		cmds = append(cmds, m.syncSpinner.Tick)
	}
	m.inFlight++
	m.Status = StatusBar{Text: "saving order..."}
	return m, tea.Batch(cmds...)
}

// screenLayout is the hit-test layout of the left pane in screen cells.
func (m Model) screenLayout() *reorder.Layout {
	_, layout := m.renderLeftPane()
	return layout.Translate(views.PaneOriginX, views.PaneOriginY)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	layout := m.screenLayout()
	m.drag.SetHitTester(layout)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.moveCursor(1)
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		if ctrl, ok := layout.InteractiveAt(msg.X, msg.Y); ok {
			return m.runAction(ctrl.Action, ctrl.Parent)
		}
		if row, ok := layout.ClosestAt(msg.X, msg.Y, "", func(n reorder.Node) bool { return n.Parent == views.ListNodeID }); ok {
			m.SelectedID = row.ID
		}
		m.drag.BeginDrag(msg.X, msg.Y)
		return m, nil
	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag.UpdateDrag(msg.X, msg.Y)
		}
		return m, nil
	case tea.MouseActionRelease:
		if !m.drag.Active() {
			return m, nil
		}
		moved := m.drag.Dragged()
		visible := m.visibleTodos()
		seq, ok := m.drag.EndDrag(todoIDs(visible))
		if !ok {
			return m, nil
		}
		return m.commitReorder(visible, seq, moved)
	}
	return m, nil
}

func (m Model) onOrderPersisted(msg OrderPersistedMsg) Model {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.Status = StatusBar{Text: fmt.Sprintf("order saved (%d items)", len(msg.Batch))}
	return m
}

// onOrderPersistFailed replaces the optimistic list with the reloaded one.
func (m Model) onOrderPersistFailed(msg OrderPersistFailedMsg) Model {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.LastError = msg.Err
	if msg.ReloadErr != nil {
		m.logf("update: reload after failed order save: %v", msg.ReloadErr)
		m.Status = StatusBar{Text: "order not saved and reload failed: " + msg.ReloadErr.Error(), IsError: true}
		return m
	}
	m.State.SetTodos(msg.Reloaded)
	m.ensureSelection()
	m.Status = StatusBar{Text: "order not saved; list reloaded", IsError: true}
	return m
}
