package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ganttd/internal/interaction"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/views"
)

// edgeTolerance is how close to a bar end, in layout pixels, a press
// grabs that edge instead of the body.
const edgeTolerance = views.CellPixels

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.Palette.Active {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollY--
			m.clampScroll()
		case tea.MouseButtonWheelDown:
			m.scrollY++
			m.clampScroll()
		case tea.MouseButtonWheelLeft:
			m.scrollX -= 4
			m.clampScroll()
		case tea.MouseButtonWheelRight:
			m.scrollX += 4
			m.clampScroll()
		case tea.MouseButtonLeft:
			return m.pressAt(msg)
		}
		return m, nil
	case tea.MouseActionMotion:
		if m.Controller.Mode() == interaction.ModeIdle {
			return m, nil
		}
		if m.Controller.Move(m.pointerX(msg.X)) {
			m.rebuild()
		}
		return m, nil
	case tea.MouseActionRelease:
		if m.Controller.Mode() == interaction.ModeIdle {
			return m, nil
		}
		changes := m.Controller.Release(m.pointerX(msg.X))
		return m.commit(changes)
	}
	return m, nil
}

func (m Model) pressAt(msg tea.MouseMsg) (Model, tea.Cmd) {
	row, ok := m.pointerRow(msg.Y)
	if !ok {
		if !msg.Shift {
			m.Controller.ClearSelection()
			m.rebuild()
		}
		return m, nil
	}
	id := m.rows[row].ID

	if msg.X < labelWidth {
		m.Controller.Select(id, msg.Shift)
		m.rebuild()
		return m, nil
	}

	x := m.pointerX(msg.X)
	hit, ok := m.chart.HitTest(x, row, edgeTolerance)
	if !ok {
		if !msg.Shift {
			m.Controller.ClearSelection()
			m.rebuild()
		}
		return m, nil
	}

	switch hit.Zone {
	case layout.ZoneStartEdge:
		m.Controller.PressEdge(hit.TaskID, interaction.EdgeStart, x, m)
	case layout.ZoneEndEdge:
		m.Controller.PressEdge(hit.TaskID, interaction.EdgeEnd, x, m)
	default:
		m.Controller.Press(hit.TaskID, x, msg.Shift, m)
	}
	m.rebuild()
	return m, nil
}

// commit applies the changes optimistically and emits one persistence
// command per changed task.
func (m Model) commit(changes []interaction.Change) (Model, tea.Cmd) {
	if len(changes) == 0 {
		m.rebuild()
		return m, nil
	}
	if m.Repo == nil {
		m.rebuild()
		m.Status = StatusBar{Text: "no task store configured: change not saved", IsError: true}
		return m, nil
	}
	cmds := make([]tea.Cmd, 0, len(changes)+1)
	for _, c := range changes {
		if !m.applyChange(c.TaskID, c.Start, c.End) {
			m.Logger.Warn("change for unknown task dropped", "task", c.TaskID)
			continue
		}
		m.pending[c.TaskID]++
		m.inflight[c.TaskID] = c
		m.Logger.Info("commit task dates",
			"task", c.TaskID,
			"start", c.Start.Format(model.DateLayout),
			"end", c.End.Format(model.DateLayout),
			"duration_days", c.DurationDays())
		cmds = append(cmds, commitCmd(m.Repo, c, m.commitTimeout))
	}
	m.rebuild()
	if len(cmds) == 0 {
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("saving %d task(s)", len(cmds))}
	if !m.spinnerActive {
		m.spinnerActive = true
		cmds = append(cmds, m.commitSpinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// onCommitResult keeps the optimistic dates on success. On failure the
// task returns to its pre-gesture dates unless a later gesture has already
// moved it again.
func (m Model) onCommitResult(msg CommitResultMsg) Model {
	id := msg.Change.TaskID
	if m.pending[id] > 0 {
		m.pending[id]--
		if m.pending[id] == 0 {
			delete(m.pending, id)
			delete(m.inflight, id)
		}
	}
	if len(m.pending) == 0 {
		m.spinnerActive = false
	}

	if msg.Err == nil {
		m.Logger.Debug("commit ok", "task", id)
		if len(m.pending) == 0 {
			m.Status = StatusBar{Text: "saved"}
		}
		return m
	}

	m.LastError = msg.Err
	m.Logger.Error("commit failed", "task", id, "error", msg.Err)
	current, ok := m.TaskByID(id)
	if ok && current.Start.Equal(msg.Change.Start) && current.End.Equal(msg.Change.End) {
		prev := msg.Change.Previous
		m.applyChange(id, prev.Start, prev.End)
		m.Logger.Info("rolled back task dates",
			"task", id,
			"start", prev.Start.Format(model.DateLayout),
			"end", prev.End.Format(model.DateLayout))
	}
	m.rebuild()
	text := fmt.Sprintf("could not save %s: %v", m.taskName(id), msg.Err)
	m.Status = StatusBar{Text: text, IsError: true}
	m.pushToast(text, true)
	return m
}
