package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/reorder"
	"github.com/sandeepkv93/mindflow/internal/views"
)

func (m Model) renderLeftPane() (string, *reorder.Layout) {
	switch m.CurrentView {
	case ViewArchived:
		archived := m.visibleArchived()
		rows := make([]views.TodoRowData, 0, len(archived))
		for _, t := range archived {
			rows = append(rows, views.TodoRowData{Todo: t, Selected: t.ID == m.SelectedID})
		}
		return views.RenderTodoList(views.TodoListData{
			Title:     fmt.Sprintf("Archived (%d)", len(archived)),
			Rows:      rows,
			Archived:  true,
			EmptyText: "(nothing archived)",
		})
	case ViewInspirations:
		rows := make([]views.InspirationRowData, 0, len(m.State.Inspirations))
		for _, item := range m.State.Inspirations {
			rows = append(rows, views.InspirationRowData{Inspiration: item, Selected: item.ID == m.SelectedID})
		}
		return views.RenderInspirationList(views.InspirationListData{
			Title: fmt.Sprintf("Inspirations (%d)", len(rows)),
			Query: m.Filter.Query,
			Rows:  rows,
		})
	default:
		visible := m.visibleTodos()
		rows := make([]views.TodoRowData, 0, len(visible))
		for _, t := range visible {
			rows = append(rows, views.TodoRowData{
				Todo:       t,
				Selected:   t.ID == m.SelectedID,
				Decoration: m.drag.Decoration(t.ID),
			})
		}
		return views.RenderTodoList(views.TodoListData{
			Title:       fmt.Sprintf("Todos (%d) · filter: %s", len(visible), filterLabel(m.Filter)),
			Rows:        rows,
			Reorderable: m.drag.Enabled(),
			EmptyText:   "(no todos, press / and type add <title>)",
			Now:         time.Now(),
		})
	}
}

func (m Model) renderRightPane() string {
	data := views.DetailData{
		Stats:        m.State.Stats,
		Progress:     m.doneBar.ViewAs(completionRatio(m.State.Stats)),
		PaletteView:  m.renderCommandPalette(),
		HelpView:     m.renderHelpIfVisible(),
		ReminderLine: m.lastReminderLine(),
	}
	if m.CurrentView == ViewInspirations {
		if item, ok := m.State.Inspiration(m.SelectedID); ok {
			data.Inspiration = &item
		}
	} else if todo, ok := m.State.Todo(m.SelectedID); ok {
		data.Todo = &todo
		data.Description = views.RenderMarkdown(todo.Description)
	}
	return views.RenderDetailPane(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logf("update: desktop notification: %v", err)
		}
	}
}

// completionRatio is the share of all todos that are done.
func completionRatio(stats model.TodoStats) float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.Total-stats.Pending) / float64(stats.Total)
}
