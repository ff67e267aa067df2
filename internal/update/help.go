package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/ganttd/internal/commands"
	"github.com/sandeepkv93/ganttd/internal/views"
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
	for _, kb := range m.mouseBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     m.Controller.Mode().String(),
		Bindings: plain,
		HelpView: m.helpModel.FullHelpView([][]key.Binding{bindings[:len(bindings)/2], bindings[len(bindings)/2:]}),
		Commands: commands.Usage(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.PrevPeriod + "/" + m.Keys.NextPeriod, Action: "previous/next period"},
		{Key: m.Keys.ZoomDay + "/" + m.Keys.ZoomWeek + "/" + m.Keys.ZoomMonth, Action: "day/week/month zoom"},
		{Key: m.Keys.ScaleUp + "/" + m.Keys.ScaleDown, Action: "wider/narrower days"},
		{Key: m.Keys.Critical, Action: "toggle critical path"},
		{Key: m.Keys.Today, Action: "jump to today"},
		{Key: "H/L", Action: "scroll timeline"},
		{Key: "j/k", Action: "scroll rows"},
		{Key: m.Keys.Reload, Action: "reload from store"},
		{Key: "esc", Action: "cancel drag / clear selection"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) mouseBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "click", Action: "select task"},
		{Key: "shift+click", Action: "add to or remove from selection"},
		{Key: "drag bar", Action: "move selected tasks"},
		{Key: "drag bar end", Action: "change start or end date"},
		{Key: "wheel", Action: "scroll rows"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) shortBindings() []key.Binding {
	all := m.helpBindings()
	return []key.Binding{all[0], all[1], all[3], all[9], all[10], all[11]}
}
