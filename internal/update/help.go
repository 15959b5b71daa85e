package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/mindflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Todos, Action: "switch to Todos"},
		{Key: m.Keys.Inspirations, Action: "switch to Inspirations"},
		{Key: m.Keys.Archived, Action: "switch to Archived"},
		{Key: "/", Action: "open command palette"},
		{Key: "ctrl+r", Action: "reload from database"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTodos:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move todo within its priority"},
			{Key: "drag", Action: "reorder within a priority"},
			{Key: "enter/c", Action: "complete todo"},
			{Key: "d", Action: "delete todo"},
			{Key: "f", Action: "cycle priority filter"},
			{Key: "esc", Action: "cancel drag or clear filters"},
		}
	case ViewArchived:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter/r", Action: "restore todo"},
			{Key: "d", Action: "delete todo"},
		}
	case ViewInspirations:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "d", Action: "delete inspiration"},
			{Key: "esc", Action: "clear search"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
