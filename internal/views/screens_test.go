package views

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/reorder"
)

func rows(todos ...model.Todo) []TodoRowData {
	out := make([]TodoRowData, 0, len(todos))
	for _, t := range todos {
		out = append(out, TodoRowData{Todo: t})
	}
	return out
}

func TestRenderTodoListGroupsAndLayout(t *testing.T) {
	data := TodoListData{
		Title:       "Todos",
		Reorderable: true,
		Rows: rows(
			model.Todo{ID: "h1", Title: "ship release", Priority: model.PriorityHigh},
			model.Todo{ID: "h2", Title: "write notes", Priority: model.PriorityHigh},
			model.Todo{ID: "l1", Title: "tidy desk", Priority: model.PriorityLow},
		),
	}
	out, layout := RenderTodoList(data)
	lines := strings.Split(out, "\n")
	// title, HIGH, h1, h2, LOW, l1
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "HIGH") || !strings.Contains(lines[4], "LOW") {
		t.Fatalf("expected group headers, got:\n%s", out)
	}
	if !strings.Contains(lines[2], "ship release") || !strings.Contains(lines[2], "[✓]") || !strings.Contains(lines[2], "[x]") {
		t.Fatalf("unexpected row: %q", lines[2])
	}

	node, ok := layout.SortableAt(4, 3, "")
	if !ok || node.ID != "h2" || node.Group != "high" {
		t.Fatalf("expected h2 at line 3, got %+v ok=%v", node, ok)
	}
	if _, ok := layout.SortableAt(4, 1, ""); ok {
		t.Fatal("expected group header to be non-sortable")
	}
	ctrl, ok := layout.InteractiveAt(secondButton+1, 5)
	if !ok || ctrl.Action != ActionDelete || ctrl.ID != ControlNodeID(ActionDelete, "l1") {
		t.Fatalf("expected delete button of l1, got %+v ok=%v", ctrl, ok)
	}
	ctrl, ok = layout.InteractiveAt(firstButton, 2)
	if !ok || ctrl.Action != ActionComplete {
		t.Fatalf("expected complete button of h1, got %+v ok=%v", ctrl, ok)
	}
}

func TestRenderTodoListArchivedIsNotSortable(t *testing.T) {
	_, layout := RenderTodoList(TodoListData{
		Title:       "Archived",
		Archived:    true,
		Reorderable: true,
		Rows: rows(model.Todo{
			ID: "a1", Title: "old", Priority: model.PriorityLow, Completed: true, Archived: true,
		}),
	})
	if _, ok := layout.SortableAt(4, 1, ""); ok {
		t.Fatal("expected archived rows to be non-sortable")
	}
	ctrl, ok := layout.InteractiveAt(firstButton+1, 1)
	if !ok || ctrl.Action != ActionRestore {
		t.Fatalf("expected restore button, got %+v ok=%v", ctrl, ok)
	}
}

func TestRenderTodoRowDecorationsAndWidth(t *testing.T) {
	long := strings.Repeat("very long title ", 10)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out, _ := RenderTodoList(TodoListData{
		Title: "Todos",
		Now:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Rows: []TodoRowData{
			{Todo: model.Todo{ID: "a", Title: long, Priority: model.PriorityMedium, DueDate: &due}, Decoration: reorder.DecorationDragging},
			{Todo: model.Todo{ID: "b", Title: "target", Priority: model.PriorityMedium}, Decoration: reorder.DecorationDropTarget},
		},
	})
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[2], "≡ ") && !strings.Contains(lines[2], "≡ ") {
		t.Fatalf("expected dragging mark, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "…") {
		t.Fatalf("expected truncated title, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "→ ") {
		t.Fatalf("expected drop target mark, got %q", lines[3])
	}
}

func TestRenderEmptyList(t *testing.T) {
	out, layout := RenderTodoList(TodoListData{Title: "Todos", EmptyText: "nothing here"})
	if !strings.Contains(out, "nothing here") || layout.Len() != 0 {
		t.Fatalf("unexpected empty render: %q nodes=%d", out, layout.Len())
	}
}

func TestRenderInspirationList(t *testing.T) {
	out, layout := RenderInspirationList(InspirationListData{
		Title: "Inspirations",
		Query: "walk",
		Rows: []InspirationRowData{
			{Inspiration: model.Inspiration{ID: "i1", Content: "walk more", Tags: []string{"health"}}, Selected: true},
		},
	})
	if !strings.Contains(out, `search: "walk"`) || !strings.Contains(out, "#health") {
		t.Fatalf("unexpected inspiration render:\n%s", out)
	}
	if _, ok := layout.SortableAt(4, 1, ""); ok {
		t.Fatal("expected inspirations to be non-sortable")
	}
	ctrl, ok := layout.InteractiveAt(secondButton, 1)
	if !ok || ctrl.Action != ActionDeleteInspiration {
		t.Fatalf("expected delete-inspiration button, got %+v ok=%v", ctrl, ok)
	}
}

func TestRenderDetailPane(t *testing.T) {
	todo := model.Todo{ID: "a", Title: "Plan trip", Priority: model.PriorityHigh, SortOrder: 20}
	out := RenderDetailPane(DetailData{
		Todo:        &todo,
		Stats:       model.TodoStats{Total: 4, Pending: 3, Completed: 1, Archived: 1},
		PaletteView: RenderCommandPalette(true, "/add milk"),
	})
	for _, want := range []string{"4 total", "3 pending", "Plan trip", "priority: high", "command: /add milk"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in detail pane:\n%s", want, out)
		}
	}
	if !strings.Contains(RenderDetailPane(DetailData{}), "(no selection)") {
		t.Fatal("expected empty selection placeholder")
	}
}

func TestRenderAppPutsPaneContentAtOrigin(t *testing.T) {
	out := RenderApp(AppData{Header: "mindflow", LeftPane: "first\nsecond", RightPane: "r"})
	lines := strings.Split(out, "\n")
	if len(lines) < PaneOriginY+2 {
		t.Fatalf("unexpected app render:\n%s", out)
	}
	plain := xansi.Strip(lines[PaneOriginY])
	idx := strings.Index(plain, "first")
	if idx < 0 {
		t.Fatalf("expected first content line at row %d, got %q", PaneOriginY, plain)
	}
	if col := xansi.StringWidth(plain[:idx]); col != PaneOriginX {
		t.Fatalf("expected pane content at column %d, got %d in %q", PaneOriginX, col, plain)
	}
}

func TestRenderNotificationTruncates(t *testing.T) {
	out := RenderNotification("error", strings.Repeat("x", 200))
	if w := xansi.StringWidth(out); w > ContentWidth {
		t.Fatalf("expected notification clipped to %d cells, got %d", ContentWidth, w)
	}
	if !strings.HasPrefix(out, "notification: [ERROR]") {
		t.Fatalf("unexpected notification: %q", out)
	}
	if RenderNotification("info", "  ") != "" {
		t.Fatal("expected blank body to render nothing")
	}
}

func TestApplyColorProfileHonorsNoColor(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
	t.Setenv("NO_COLOR", "1")
	ApplyColorProfile()
	if lipgloss.ColorProfile() != termenv.Ascii {
		t.Fatalf("expected ascii profile with NO_COLOR, got %v", lipgloss.ColorProfile())
	}
}

func TestRenderAppKeepsRowsOnTheirLayoutLines(t *testing.T) {
	left, layout := RenderTodoList(TodoListData{
		Title:       "Todos (3) · filter: search=" + strings.Repeat("alpha beta ", 8),
		Reorderable: true,
		Rows: rows(
			model.Todo{ID: "a", Title: "first\nline", Priority: model.PriorityHigh},
			model.Todo{ID: "b", Title: "tab\there\x1b[31mred", Priority: model.PriorityHigh},
			model.Todo{ID: "c", Title: "third", Priority: model.PriorityLow},
		),
	})
	lines := strings.Split(RenderApp(AppData{Header: "mindflow", LeftPane: left, RightPane: "r"}), "\n")
	want := map[string]string{"a": "first line", "b": "tab here", "c": "third"}
	for id, text := range want {
		node, ok := layout.Node(id)
		if !ok {
			t.Fatalf("row %s missing from layout", id)
		}
		y := PaneOriginY + node.Rect.Y
		if y >= len(lines) || !strings.Contains(xansi.Strip(lines[y]), text) {
			t.Fatalf("expected %q on screen line %d, got %q", text, y, xansi.Strip(lines[y]))
		}
	}
	for i, line := range strings.Split(left, "\n") {
		if w := xansi.StringWidth(line); w > ContentWidth {
			t.Fatalf("pane line %d is %d cells wide, max %d: %q", i, w, ContentWidth, line)
		}
	}
}

func TestRenderInspirationListClipsTitleAndCoversTitleLine(t *testing.T) {
	out, layout := RenderInspirationList(InspirationListData{
		Title: "Inspirations",
		Query: strings.Repeat("garden ", 12),
		Rows: []InspirationRowData{
			{Inspiration: model.Inspiration{ID: "i1", Content: "roof\ngarden"}},
			{Inspiration: model.Inspiration{ID: "i2", Content: "quiet mornings"}},
		},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title plus two rows, got %d lines:\n%s", len(lines), out)
	}
	if w := xansi.StringWidth(lines[0]); w > ContentWidth {
		t.Fatalf("expected clipped title, got %d cells", w)
	}
	if !strings.Contains(lines[1], "roof garden") {
		t.Fatalf("expected flattened content, got %q", lines[1])
	}
	list, ok := layout.Node(ListNodeID)
	if !ok || list.Rect.Y != 0 || list.Rect.H != len(lines) {
		t.Fatalf("expected list container over every line, got %+v ok=%v", list, ok)
	}
	row, ok := layout.ClosestAt(4, 2, "", func(n reorder.Node) bool { return n.Parent == ListNodeID })
	if !ok || row.ID != "i2" {
		t.Fatalf("expected i2 on line 2, got %+v ok=%v", row, ok)
	}
}
