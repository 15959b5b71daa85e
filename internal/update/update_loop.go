package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mindflow/internal/scheduler"
	"github.com/sandeepkv93/mindflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadTodosCmd(), m.loadInspirationsCmd(""), m.refreshStatsCmd()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg:
		if m.Palette.Active {
			return m, nil
		}
		return m.handleMouse(typed)
	case spinner.TickMsg:
		if m.inFlight > 0 {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchViewMsg:
		m.switchView(typed.View)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		return m.fail("Error", typed.Err), nil
	case TodosLoadedMsg:
		if typed.Err != nil {
			return m.fail("Load Failed", typed.Err), nil
		}
		m.State.SetTodos(typed.Todos)
		m.State.SetArchived(typed.Archived)
		m.ensureSelection()
		return m, nil
	case InspirationsLoadedMsg:
		if typed.Err != nil {
			return m.fail("Search Failed", typed.Err), nil
		}
		m.State.SetInspirations(typed.Items)
		m.ensureSelection()
		return m, nil
	case StatsLoadedMsg:
		if typed.Err != nil {
			m.logf("update: load stats: %v", typed.Err)
			return m, nil
		}
		m.State.SetStats(typed.Stats)
		return m, nil
	case TodoCreatedMsg:
		if typed.Err != nil {
			return m.fail("Add Failed", typed.Err), nil
		}
		m.State.AddTodo(typed.Todo)
		m.SelectedID = typed.Todo.ID
		m.ensureSelection()
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", typed.Todo.Title)}
		return m, m.refreshStatsCmd()
	case TodoChangedMsg:
		if typed.Err != nil {
			return m.fail("Update Failed", typed.Err), nil
		}
		m.State.ReplaceTodo(typed.Todo)
		m.ensureSelection()
		if typed.Todo.Archived {
			m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", typed.Todo.Title)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("restored: %s", typed.Todo.Title)}
		}
		return m, m.refreshStatsCmd()
	case TodoDeletedMsg:
		if typed.Err != nil {
			return m.fail("Delete Failed", typed.Err), nil
		}
		m.State.RemoveTodo(typed.ID)
		if m.Scheduler != nil {
			m.Scheduler.Cancel(scheduler.ReminderEventID(typed.ID))
		}
		m.ensureSelection()
		m.Status = StatusBar{Text: "todo deleted"}
		return m, m.refreshStatsCmd()
	case InspirationCreatedMsg:
		if typed.Err != nil {
			return m.fail("Note Failed", typed.Err), nil
		}
		m.State.AddInspiration(typed.Inspiration)
		m.ensureSelection()
		m.Status = StatusBar{Text: "inspiration saved"}
		return m, nil
	case InspirationDeletedMsg:
		if typed.Err != nil {
			return m.fail("Delete Failed", typed.Err), nil
		}
		m.State.RemoveInspiration(typed.ID)
		m.ensureSelection()
		m.Status = StatusBar{Text: "inspiration deleted"}
		return m, nil
	case OrderPersistedMsg:
		return m.onOrderPersisted(typed), nil
	case OrderPersistFailedMsg:
		m = m.onOrderPersistFailed(typed)
		m.notify("Reorder Failed", m.Status.Text, "error")
		return m, nil
	case ReminderDueMsg:
		return m.onReminderDue(typed.Event)
	case ReminderClearedMsg:
		return m.onReminderCleared(typed), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case "/":
		m.drag.Cancel()
		return m.openPalette(), nil
	case m.Keys.Todos:
		m.switchView(ViewTodos)
		return m, nil
	case m.Keys.Inspirations:
		m.switchView(ViewInspirations)
		return m, nil
	case m.Keys.Archived:
		m.switchView(ViewArchived)
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case "ctrl+r":
		m.Status = StatusBar{Text: "reloading"}
		return m, tea.Batch(m.loadTodosCmd(), m.loadInspirationsCmd(m.Filter.Query), m.refreshStatsCmd())
	case "ctrl+c", m.Keys.Quit:
		return m.quit()
	}
	return m.handleListKey(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if err := m.persistUIState(); err != nil {
		m.logf("update: persist ui state: %v", err)
	}
	m.Quitting = true
	return m, tea.Quit
}

// fail records a backend error in the status line and the notification log.
func (m Model) fail(title string, err error) Model {
	if err == nil {
		return m
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify(title, err.Error(), "error")
	m.logf("update: %s: %v", strings.ToLower(title), err)
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane, _ := m.renderLeftPane()

	notificationView := ""
	if m.inFlight > 0 {
		notificationView = fmt.Sprintf("sync: %s saving order (%d pending)", m.syncSpinner.View(), m.inFlight)
	}
	notificationView = strings.TrimSpace(strings.Join([]string{
		notificationView,
		strings.TrimSpace(m.renderNotificationsView()),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("mindflow | view: %s | filter: %s", m.CurrentView, filterLabel(m.Filter)),
		LeftPane:     leftPane,
		RightPane:    m.renderRightPane(),
		StatusLine:   status,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s todos | %s ideas | %s archive | / cmd | %s help | %s quit",
			m.Keys.Todos, m.Keys.Inspirations, m.Keys.Archived, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTodos, ViewInspirations, ViewArchived:
		return true
	default:
		return false
	}
}
