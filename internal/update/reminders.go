package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mindflow/internal/scheduler"
)

const reminderLogSize = 20

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// onReminderDue logs and announces a fired reminder, clears it in the
// backend so it does not fire again, and re-arms the listener.
func (m Model) onReminderDue(ev scheduler.ReminderEvent) (Model, tea.Cmd) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderLogSize {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogSize:]
	}
	title := ev.Title
	if title == "" {
		title = ev.TodoID
	}
	m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", title)}
	m.notify("Reminder", title, "info")

	cmds := []tea.Cmd{m.clearReminderCmd(ev.TodoID)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onReminderCleared(msg ReminderClearedMsg) Model {
	if msg.Err != nil {
		m.logf("update: clear reminder %s: %v", msg.TodoID, msg.Err)
		return m
	}
	if todo, ok := m.State.Todo(msg.TodoID); ok {
		todo.ReminderAt = nil
		m.State.ReplaceTodo(todo)
	}
	return m
}

func (m Model) lastReminderLine() string {
	if len(m.ReminderLog) == 0 {
		return ""
	}
	last := m.ReminderLog[len(m.ReminderLog)-1]
	title := last.Title
	if title == "" {
		title = last.TodoID
	}
	return fmt.Sprintf("last reminder: %s @ %s", title, last.TriggerAt.Local().Format("15:04"))
}
