package views

import (
	"fmt"
	"strings"
)

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
	Commands []string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Help (%s)\n", data.Mode))
	if data.HelpView != "" {
		b.WriteString(data.HelpView)
		b.WriteString("\n")
	}
	for _, line := range data.Bindings {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(data.Commands) > 0 {
		b.WriteString("\nCommands (/)\n")
		for _, c := range data.Commands {
			b.WriteString("  /")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

type DetailsData struct {
	Name        string
	Start       string
	End         string
	Duration    int
	Milestone   bool
	Status      string
	Priority    string
	Progress    int
	Critical    bool
	ChainLength int
	Predecessor []string
	Successor   []string
	Description string
	Selected    int
}

// DetailsMarkdown formats the selected task for the details pane.
func DetailsMarkdown(d DetailsData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## %s\n\n", d.Name))
	if d.Selected > 1 {
		b.WriteString(fmt.Sprintf("_%d tasks selected_\n\n", d.Selected))
	}
	b.WriteString(fmt.Sprintf("- **Dates:** %s → %s\n", d.Start, d.End))
	if d.Milestone {
		b.WriteString("- **Duration:** milestone\n")
	} else {
		b.WriteString(fmt.Sprintf("- **Duration:** %d days\n", d.Duration))
	}
	b.WriteString(fmt.Sprintf("- **Status:** %s, **Priority:** %s, **Progress:** %d%%\n", d.Status, d.Priority, d.Progress))
	if d.Critical {
		b.WriteString(fmt.Sprintf("- **Critical path:** chain of %d days\n", d.ChainLength))
	}
	if len(d.Predecessor) > 0 {
		b.WriteString(fmt.Sprintf("- **After:** %s\n", strings.Join(d.Predecessor, ", ")))
	}
	if len(d.Successor) > 0 {
		b.WriteString(fmt.Sprintf("- **Before:** %s\n", strings.Join(d.Successor, ", ")))
	}
	if strings.TrimSpace(d.Description) != "" {
		b.WriteString("\n")
		b.WriteString(d.Description)
		b.WriteString("\n")
	}
	return b.String()
}
