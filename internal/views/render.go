package views

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Geometry of the left pane. Mouse hit-testing depends on these staying in
// step with RenderApp: one header line, then a bordered panel with one cell
// of horizontal padding.
const (
	PanelWidth   = 58
	ContentWidth = PanelWidth - 2
	PaneOriginX  = 2
	PaneOriginY  = 2
	// ScreenWidth is both panels side by side, borders included.
	ScreenWidth  = 2 * (PanelWidth + 2)
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	selectedStyle = lipgloss.NewStyle().Bold(true)
	draggingStyle = lipgloss.NewStyle().Reverse(true)
	targetStyle   = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("14"))
	groupStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(PanelWidth).Render(data.LeftPane)
	right := panelStyle.Width(PanelWidth).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	header := xansi.Truncate(singleLine(data.Header), ScreenWidth, "…")
	lines := []string{
		headerStyle.Render(header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(ContentWidth-4))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// ApplyColorProfile picks the lipgloss color profile for the interactive UI.
// NO_COLOR forces plain output; otherwise the terminal's reported profile is
// used, upgraded to 256 colors when TERM advertises it.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	if profile == termenv.ANSI && strings.Contains(os.Getenv("TERM"), "256color") {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}
