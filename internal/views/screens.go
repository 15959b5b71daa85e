package views

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/reorder"
)

// Row columns inside the pane content. Every list row is exactly
// ContentWidth cells wide so the buttons always sit in the same cells.
const (
	markWidth    = 2
	buttonWidth  = 3
	firstButton  = ContentWidth - 2*buttonWidth - 1
	secondButton = ContentWidth - buttonWidth
	textWidth    = firstButton - markWidth - 1
)

// Interactive node actions published in the list layout.
const (
	ActionComplete          = "complete"
	ActionRestore           = "restore"
	ActionDelete            = "delete"
	ActionDeleteInspiration = "delete-inspiration"
)

// ListNodeID is the container node every row hangs off.
const ListNodeID = "list"

type TodoRowData struct {
	Todo       model.Todo
	Selected   bool
	Decoration reorder.Decoration
}

type TodoListData struct {
	Title       string
	Rows        []TodoRowData
	Archived    bool
	Reorderable bool
	EmptyText   string
	Now         time.Time
}

type InspirationRowData struct {
	Inspiration model.Inspiration
	Selected    bool
}

type InspirationListData struct {
	Title string
	Query string
	Rows  []InspirationRowData
}

type DetailData struct {
	Todo         *model.Todo
	Inspiration  *model.Inspiration
	Description  string
	Stats        model.TodoStats
	Progress     string
	PaletteView  string
	HelpView     string
	ReminderLine string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

// ControlNodeID names the interactive node for an action on an item.
func ControlNodeID(action, id string) string {
	return action + ":" + id
}

// RenderTodoList renders the todo rows grouped by priority and returns the
// hit-test layout in pane-content coordinates.
func RenderTodoList(data TodoListData) (string, *reorder.Layout) {
	layout := reorder.NewLayout()
	lines := []string{clipLine(data.Title)}
	if len(data.Rows) == 0 {
		empty := data.EmptyText
		if empty == "" {
			empty = "(no todos)"
		}
		lines = append(lines, mutedStyle.Render(empty))
		return strings.Join(lines, "\n"), layout
	}

	rowLines := make(map[int]TodoRowData, len(data.Rows))
	current := model.Priority("")
	for _, row := range data.Rows {
		if !data.Archived && row.Todo.Priority != current {
			current = row.Todo.Priority
			lines = append(lines, groupStyle.Render(strings.ToUpper(string(current))))
		}
		rowLines[len(lines)] = row
		lines = append(lines, renderTodoRow(row, data.Archived, data.Now))
	}

	layout.Add(reorder.Node{ID: ListNodeID, Rect: reorder.Rect{X: 0, Y: 0, W: ContentWidth, H: len(lines)}})
	for y := 0; y < len(lines); y++ {
		row, ok := rowLines[y]
		if !ok {
			continue
		}
		id := row.Todo.ID
		layout.Add(reorder.Node{
			ID:       id,
			Parent:   ListNodeID,
			Rect:     reorder.Rect{X: 0, Y: y, W: ContentWidth, H: 1},
			Sortable: data.Reorderable && row.Todo.Sortable(),
			Group:    string(row.Todo.Priority),
		})
		first := ActionComplete
		if data.Archived {
			first = ActionRestore
		}
		layout.Add(reorder.Node{
			ID:          ControlNodeID(first, id),
			Parent:      id,
			Rect:        reorder.Rect{X: firstButton, Y: y, W: buttonWidth, H: 1},
			Interactive: true,
			Action:      first,
		})
		layout.Add(reorder.Node{
			ID:          ControlNodeID(ActionDelete, id),
			Parent:      id,
			Rect:        reorder.Rect{X: secondButton, Y: y, W: buttonWidth, H: 1},
			Interactive: true,
			Action:      ActionDelete,
		})
	}
	return strings.Join(lines, "\n"), layout
}

func renderTodoRow(row TodoRowData, archived bool, now time.Time) string {
	mark := "  "
	switch {
	case row.Decoration == reorder.DecorationDragging:
		mark = "≡ "
	case row.Decoration == reorder.DecorationDropTarget:
		mark = "→ "
	case row.Selected:
		mark = "> "
	}

	text := singleLine(row.Todo.Title)
	if row.Todo.DueDate != nil {
		text += " " + dueLabel(*row.Todo.DueDate, now)
	}
	if row.Todo.ReminderAt != nil && !archived {
		text += " ⏰"
	}
	text = padding.String(truncate.StringWithTail(text, uint(textWidth), "…"), uint(textWidth))

	first := "[✓]"
	if archived {
		first = "[↺]"
	}
	line := mark + text + " " + first + " " + "[x]"

	switch row.Decoration {
	case reorder.DecorationDragging:
		return draggingStyle.Render(line)
	case reorder.DecorationDropTarget:
		return targetStyle.Render(line)
	}
	if archived {
		return mutedStyle.Render(line)
	}
	if row.Selected {
		return selectedStyle.Render(line)
	}
	return line
}

// singleLine flattens user text onto one terminal line: escape sequences are
// dropped and control characters become spaces.
func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, xansi.Strip(s))
}

// clipLine keeps a pane line within ContentWidth so the panel never wraps it.
func clipLine(s string) string {
	return xansi.Truncate(singleLine(s), ContentWidth, "…")
}

func dueLabel(due, now time.Time) string {
	if now.IsZero() {
		return "due:" + due.Format("2006-01-02")
	}
	if due.Before(now) {
		return "overdue:" + due.Format("01-02")
	}
	return "due:" + due.Format("01-02")
}

// RenderInspirationList renders notes newest first with a delete button per
// row. Inspirations are never sortable.
func RenderInspirationList(data InspirationListData) (string, *reorder.Layout) {
	layout := reorder.NewLayout()
	title := data.Title
	if data.Query != "" {
		title += fmt.Sprintf(" · search: %q", data.Query)
	}
	lines := []string{clipLine(title)}
	if len(data.Rows) == 0 {
		lines = append(lines, mutedStyle.Render("(no inspirations)"))
		return strings.Join(lines, "\n"), layout
	}
	layout.Add(reorder.Node{ID: ListNodeID, Rect: reorder.Rect{X: 0, Y: 0, W: ContentWidth, H: len(data.Rows) + 1}})
	for _, row := range data.Rows {
		y := len(lines)
		mark := "  "
		if row.Selected {
			mark = "> "
		}
		text := singleLine(row.Inspiration.Content)
		if len(row.Inspiration.Tags) > 0 {
			text += " #" + singleLine(strings.Join(row.Inspiration.Tags, " #"))
		}
		text = padding.String(truncate.StringWithTail(text, uint(textWidth), "…"), uint(textWidth))
		line := mark + text + " " + strings.Repeat(" ", buttonWidth) + " " + "[x]"
		if row.Selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)

		id := row.Inspiration.ID
		layout.Add(reorder.Node{ID: id, Parent: ListNodeID, Rect: reorder.Rect{X: 0, Y: y, W: ContentWidth, H: 1}})
		layout.Add(reorder.Node{
			ID:          ControlNodeID(ActionDeleteInspiration, id),
			Parent:      id,
			Rect:        reorder.Rect{X: secondButton, Y: y, W: buttonWidth, H: 1},
			Interactive: true,
			Action:      ActionDeleteInspiration,
		})
	}
	return strings.Join(lines, "\n"), layout
}

func RenderDetailPane(data DetailData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("stats: %d total · %d pending · %d done · %d archived\n",
		data.Stats.Total, data.Stats.Pending, data.Stats.Completed, data.Stats.Archived))
	if data.Progress != "" {
		b.WriteString(data.Progress + "\n")
	}

	switch {
	case data.Todo != nil:
		t := data.Todo
		b.WriteString("\n" + selectedStyle.Render(t.Title) + "\n")
		b.WriteString(fmt.Sprintf("priority: %s · order: %d\n", t.Priority, t.SortOrder))
		if t.DueDate != nil {
			b.WriteString("due: " + t.DueDate.Local().Format("2006-01-02 15:04") + "\n")
		}
		if t.ReminderAt != nil {
			b.WriteString("reminder: " + t.ReminderAt.Local().Format("2006-01-02 15:04") + "\n")
		}
		if data.Description != "" {
			b.WriteString("\n" + data.Description + "\n")
		}
	case data.Inspiration != nil:
		in := data.Inspiration
		b.WriteString("\n" + in.Content + "\n")
		if len(in.Tags) > 0 {
			b.WriteString("tags: " + strings.Join(in.Tags, ", ") + "\n")
		}
		b.WriteString("noted: " + in.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	default:
		b.WriteString("\n" + mutedStyle.Render("(no selection)") + "\n")
	}

	if data.ReminderLine != "" {
		b.WriteString("\n" + data.ReminderLine + "\n")
	}
	if data.PaletteView != "" {
		b.WriteString("\n" + data.PaletteView + "\n")
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	line := fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
	return xansi.Truncate(line, ContentWidth, "…")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
