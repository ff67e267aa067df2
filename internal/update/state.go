package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

// viewState is the part of the screen that survives a restart.
type viewState struct {
	Zoom         string `json:"zoom"`
	Scale        string `json:"scale"`
	Reference    string `json:"reference"`
	ShowCritical bool   `json:"show_critical"`
	Project      string `json:"project,omitempty"`
	Sort         string `json:"sort,omitempty"`
}

func (m Model) currentViewState() viewState {
	return viewState{
		Zoom:         string(m.TimeView.Zoom),
		Scale:        string(m.TimeView.Scale),
		Reference:    m.TimeView.Reference.Format(model.DateLayout),
		ShowCritical: m.Critical.Enabled(),
		Project:      m.projectRef(),
		Sort:         string(m.Sort),
	}
}

func (m *Model) persistViewState() error {
	if strings.TrimSpace(m.stateFilePath) == "" {
		return nil
	}
	dir := filepath.Dir(m.stateFilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(m.currentViewState(), "", "  ")
	if err != nil {
		return err
	}
	tmp := m.stateFilePath + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.stateFilePath)
}

// saveView persists the view and logs instead of failing the keypress.
func (m *Model) saveView() {
	if err := m.persistViewState(); err != nil {
		m.Logger.Warn("persist view state", "path", m.stateFilePath, "error", err)
	}
}

func loadViewState(path string) (viewState, bool, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return viewState{}, false, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return viewState{}, false, nil
		}
		return viewState{}, false, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return viewState{}, false, nil
	}
	var state viewState
	if err := json.Unmarshal(raw, &state); err != nil {
		return viewState{}, false, err
	}
	return state, true, nil
}

// applyViewState overrides the configured view with saved values. Invalid
// fields are ignored one by one.
func (m *Model) applyViewState(s viewState) {
	if z, err := timeaxis.ParseZoom(s.Zoom); err == nil {
		m.TimeView.Zoom = z
	}
	if sc, err := timeaxis.ParseScale(s.Scale); err == nil {
		m.TimeView.Scale = sc
	}
	if ref, err := model.ParseDate(s.Reference); err == nil {
		m.TimeView.Reference = ref
	}
	m.Critical.SetEnabled(s.ShowCritical)
	if s.Project != "" {
		m.pendingName = s.Project
	}
	if order, ok := layout.ParseSortOrder(s.Sort); ok {
		m.Sort = order
	}
}
