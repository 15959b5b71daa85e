package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/mindflow/internal/commands"
	"github.com/sandeepkv93/mindflow/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	parsed, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette(), nil
	}

	var cmd tea.Cmd
	res, err := commands.Execute(parsed, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			cmd = m.createTodoCmd(model.CreateTodoRequest{Title: a.Title, Priority: a.Priority})
			return commands.Result{Message: fmt.Sprintf("adding %s todo: %s", a.Priority, a.Title)}, nil
		},
		Note: func(n commands.NoteArgs) (commands.Result, error) {
			cmd = m.createInspirationCmd(model.CreateInspirationRequest{Content: n.Content, Tags: n.Tags})
			return commands.Result{Message: fmt.Sprintf("noting: %s", n.Content)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Filter.Query = strings.TrimSpace(s.Query)
			m.ensureSelection()
			if m.CurrentView == ViewInspirations {
				cmd = m.loadInspirationsCmd(m.Filter.Query)
			}
			if m.Filter.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", m.Filter.Query)}, nil
		},
		Priority: func(p commands.PriorityArgs) (commands.Result, error) {
			m.Filter.Priority = p.Priority
			m.ensureSelection()
			return commands.Result{Message: "filter: " + filterLabel(m.Filter)}, nil
		},
		Clear: func() (commands.Result, error) {
			hadQuery := m.Filter.Query != ""
			m.Filter = FilterState{}
			m.ensureSelection()
			if hadQuery && m.CurrentView == ViewInspirations {
				cmd = m.loadInspirationsCmd("")
			}
			return commands.Result{Message: "filters cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	return m.closePalette(), cmd
}
