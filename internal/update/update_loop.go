package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ganttd/internal/interaction"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
	"github.com/sandeepkv93/ganttd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCmd(m.Repo, m.commitTimeout)}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForExpiryCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.detailsViewport.Width = max(typed.Width-4, 20)
		m.clampScroll()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.commitSpinner, cmd = m.commitSpinner.Update(typed)
			return m, cmd
		}
	case DataLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Logger.Error("load chart data", "error", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.pushToast(typed.Err.Error(), true)
			return m, nil
		}
		m.applyLoaded(typed)
		m.rebuild()
		return m, nil
	case CommitResultMsg:
		return m.onCommitResult(typed), nil
	case MutationResultMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Logger.Error("palette command failed", "error", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.pushToast(typed.Err.Error(), true)
			return m, nil
		}
		m.Status = StatusBar{Text: typed.Message}
		m.pushToast(typed.Message, false)
		return m, loadCmd(m.Repo, m.commitTimeout)
	case ToastExpiredMsg:
		m.dismissToast(typed.Event.ID)
		if m.Scheduler != nil {
			return m, waitForExpiryCmd(m.Scheduler.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.pushToast(typed.Err.Error(), true)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.Focus()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case "esc":
		if m.Controller.Cancel() {
			m.Status = StatusBar{Text: "change cancelled"}
		} else {
			m.Controller.ClearSelection()
			m.Status = StatusBar{}
		}
		m.rebuild()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		m.Controller.Cancel()
		return m, tea.Quit
	}

	// View changes are refused mid-gesture so the live preview stays on
	// the axis it started on.
	if m.Controller.Mode() != interaction.ModeIdle {
		return m, nil
	}

	switch msg.String() {
	case m.Keys.PrevPeriod, "left":
		m.shiftPeriod(-1)
	case m.Keys.NextPeriod, "right":
		m.shiftPeriod(1)
	case "H":
		m.scrollX -= 8
		m.clampScroll()
		return m, nil
	case "L":
		m.scrollX += 8
		m.clampScroll()
		return m, nil
	case "j", "down":
		m.scrollY++
		m.clampScroll()
		return m, nil
	case "k", "up":
		m.scrollY--
		m.clampScroll()
		return m, nil
	case m.Keys.ZoomDay:
		m.setZoom(timeaxis.ZoomDay)
	case m.Keys.ZoomWeek:
		m.setZoom(timeaxis.ZoomWeek)
	case m.Keys.ZoomMonth:
		m.setZoom(timeaxis.ZoomMonth)
	case m.Keys.ScaleUp, "=":
		m.setScale(m.TimeView.Scale.Larger())
	case m.Keys.ScaleDown:
		m.setScale(m.TimeView.Scale.Smaller())
	case m.Keys.Critical:
		m.setCritical(!m.Critical.Enabled())
	case m.Keys.Today:
		m.gotoDate(model.Day(m.now()))
	case m.Keys.Reload:
		m.Status = StatusBar{Text: "reloading"}
		return m, loadCmd(m.Repo, m.commitTimeout)
	default:
		return m, nil
	}
	m.saveView()
	return m, nil
}

// periodStep is how many zoom units h and l move the reference date.
func periodStep(zoom timeaxis.Zoom) int {
	switch zoom {
	case timeaxis.ZoomWeek:
		return 4
	case timeaxis.ZoomMonth:
		return 3
	default:
		return 7
	}
}

func (m *Model) shiftPeriod(dir int) {
	ref := timeaxis.Shift(m.TimeView.Reference, m.TimeView.Zoom, dir*periodStep(m.TimeView.Zoom))
	m.gotoDate(ref)
}

func (m *Model) gotoDate(date time.Time) {
	m.TimeView.Reference = model.Day(date)
	m.rebuild()
	m.recenter()
	m.Status = StatusBar{Text: "showing " + m.TimeView.Reference.Format(model.DateLayout)}
}

func (m *Model) setZoom(z timeaxis.Zoom) {
	m.TimeView.Zoom = z
	m.syncAxis()
	m.Status = StatusBar{Text: "zoom " + string(z)}
}

func (m *Model) setScale(s timeaxis.Scale) {
	m.TimeView.Scale = s
	m.syncAxis()
	m.Status = StatusBar{Text: "scale " + string(s)}
}

func (m *Model) syncAxis() {
	m.Controller.SetAxis(m.TimeView.Zoom, timeaxis.ColumnWidth(m.TimeView.Zoom, m.TimeView.Scale))
	m.rebuild()
	m.recenter()
}

func (m *Model) setCritical(on bool) {
	m.Critical.SetEnabled(on)
	m.cycleKey = ""
	m.rebuild()
	if !on {
		m.Status = StatusBar{Text: "critical path hidden"}
		return
	}
	if m.path.Empty() {
		m.Status = StatusBar{Text: "critical path: no tasks"}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("critical path: %d days through %d task(s)", m.path.Length, len(m.path.Path))}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	header := fmt.Sprintf("ganttd  zoom:%s  scale:%s  ref:%s  project:%s  sort:%s",
		m.TimeView.Zoom, m.TimeView.Scale, m.TimeView.Reference.Format(model.DateLayout), m.projectLabel(), m.Sort)
	if m.Critical.Enabled() {
		header += "  critical:on"
	}
	if mode := m.Controller.Mode(); mode != interaction.ModeIdle {
		header += "  " + mode.String()
	}
	if m.spinnerActive {
		header += "  " + m.commitSpinner.View() + " saving"
	}

	palette := ""
	if m.Palette.Active {
		palette = m.commandInput.View()
	}
	details := ""
	if m.detailsKey != "" {
		details = m.detailsViewport.View()
	}
	return views.RenderApp(views.AppData{
		Header:      header,
		Chart:       m.renderChart(),
		Details:     details,
		StatusLine:  m.Status.Text,
		StatusError: m.Status.IsError,
		Toasts:      m.toastViews(),
		Palette:     palette,
		Help:        m.renderHelpIfVisible(),
		Footer:      m.helpModel.View(helpKeyMap{short: m.shortBindings()}),
	})
}

func (m Model) projectLabel() string {
	if ref := m.projectRef(); strings.TrimSpace(ref) != "" {
		return ref
	}
	return "all"
}
