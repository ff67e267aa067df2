package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	Chart       string
	Details     string
	StatusLine  string
	StatusError bool
	Toasts      []ToastData
	Palette     string
	Help        string
	Footer      string
}

type ToastData struct {
	Text    string
	IsError bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	toastStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
	errToast    = toastStyle.BorderForeground(lipgloss.Color("9"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp stacks the screen top to bottom. The chart starts on line
// ChartTop-1 so mouse rows map straight onto task rows.
func RenderApp(data AppData) string {
	lines := []string{
		headerStyle.Render(data.Header),
		data.Chart,
	}
	if data.Details != "" {
		lines = append(lines, panelStyle.Render(data.Details))
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if len(data.Toasts) > 0 {
		boxes := make([]string, 0, len(data.Toasts))
		for _, t := range data.Toasts {
			if t.IsError {
				boxes = append(boxes, errToast.Render(t.Text))
			} else {
				boxes = append(boxes, toastStyle.Render(t.Text))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, data.Help)
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
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
