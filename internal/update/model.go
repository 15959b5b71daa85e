package update

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/mindflow/internal/model"
	"github.com/sandeepkv93/mindflow/internal/reorder"
	"github.com/sandeepkv93/mindflow/internal/scheduler"
)

type View string

const (
	ViewTodos        View = "Todos"
	ViewInspirations View = "Inspirations"
	ViewArchived     View = "Archived"
)

// Backend is the command surface the UI uses. *bridge.Bridge satisfies it.
type Backend interface {
	reorder.Backend
	CreateTodo(ctx context.Context, req model.CreateTodoRequest) (model.Todo, error)
	CompleteTodo(ctx context.Context, id string) (model.Todo, error)
	RestoreTodo(ctx context.Context, id string) (model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	GetTodoStats(ctx context.Context) (model.TodoStats, error)
	ClearReminder(ctx context.Context, id string) error
	CreateInspiration(ctx context.Context, req model.CreateInspirationRequest) (model.Inspiration, error)
	SearchInspirations(ctx context.Context, query string) ([]model.Inspiration, error)
	DeleteInspiration(ctx context.Context, id string) error
}

type FilterState struct {
	Priority model.Priority
	Query    string
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Todos        string
	Inspirations string
	Archived     string
	Help         string
	Quit         string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView    View
	SelectedID     string
	Filter         FilterState
	State          AppState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	ReminderLog    []scheduler.ReminderEvent
	DesktopEnabled bool
	Scheduler      *scheduler.Engine
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	backend  Backend
	adapter  *reorder.Adapter
	drag     reorder.Controller
	notifier DesktopNotifier
	timeout  time.Duration
	// order submissions that have not reported back yet
	inFlight      int
	stateFilePath string

	commandInput textinput.Model
	syncSpinner  spinner.Model
	helpModel    help.Model
	doneBar      progress.Model
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type TodosLoadedMsg struct {
	Todos    []model.Todo
	Archived []model.Todo
	Err      error
}

type InspirationsLoadedMsg struct {
	Query string
	Items []model.Inspiration
	Err   error
}

type StatsLoadedMsg struct {
	Stats model.TodoStats
	Err   error
}

type TodoCreatedMsg struct {
	Todo model.Todo
	Err  error
}

// TodoChangedMsg reports a completed or restored todo.
type TodoChangedMsg struct {
	Todo model.Todo
	Err  error
}

type TodoDeletedMsg struct {
	ID  string
	Err error
}

type InspirationCreatedMsg struct {
	Inspiration model.Inspiration
	Err         error
}

type InspirationDeletedMsg struct {
	ID  string
	Err error
}

type OrderPersistedMsg struct {
	MovedID string
	Batch   []model.OrderEntry
}

// OrderPersistFailedMsg carries the canonical list reloaded after the
// backend rejected an order batch.
type OrderPersistFailedMsg struct {
	MovedID   string
	Err       error
	Reloaded  []model.Todo
	ReloadErr error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type ReminderClearedMsg struct {
	TodoID string
	Err    error
}

// NewModel builds a model with default settings and no UI state file.
func NewModel(backend Backend) Model {
	cfg := DefaultRuntimeConfig()
	cfg.StatePath = ""
	return NewModelWithConfig(backend, nil, nil, cfg)
}

func NewModelWithConfig(backend Backend, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView:    ViewTodos,
		Scheduler:      engine,
		DesktopEnabled: cfg.DesktopNotifications,
		backend:        backend,
		adapter:        reorder.NewAdapter(backend, log.Default()),
		drag:           reorder.NewController(nil, nil),
		notifier:       NoopDesktopNotifier{},
		timeout:        cfg.BackendTimeout(),
		stateFilePath:  strings.TrimSpace(cfg.StatePath),
		Keys: GlobalKeyMap{
			Todos:        "1",
			Inspirations: "2",
			Archived:     "3",
			Help:         "?",
			Quit:         "q",
		},
	}
	if notifier != nil {
		m.notifier = notifier
	}
	if m.timeout <= 0 {
		m.timeout = 5 * time.Second
	}
	if state, err := loadUIState(m.stateFilePath); err != nil {
		log.Printf("update: load ui state: %v", err)
	} else {
		if state.View != "" {
			m.CurrentView = state.View
		}
		m.Filter.Priority = state.Priority
	}
	m.drag.SetEnabled(m.CurrentView == ViewTodos)
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add, note, search, priority, clear"
	m.commandInput.CharLimit = 200

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.MiniDot

	m.helpModel = help.New()
	m.helpModel.ShowAll = true

	m.doneBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(32))
}

func (m Model) backendContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

// DragState exposes the active gesture for tests and rendering.
func (m Model) DragState() (dragged, target string) {
	return m.drag.Dragged(), m.drag.Target()
}

// InFlight reports how many order batches have not reported back yet.
func (m Model) InFlight() int {
	return m.inFlight
}
