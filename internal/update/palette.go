package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/commands"
	"github.com/sandeepkv93/ganttd/internal/export"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

// svgRowHeight is the row height of exported SVG charts.
const svgRowHeight = 28

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	viewChanged := false
	res, err := commands.Execute(cmd, commands.Handlers{
		Zoom: func(a commands.ZoomArgs) (commands.Result, error) {
			m.setZoom(a.Zoom)
			viewChanged = true
			return commands.Result{Message: "zoom " + string(a.Zoom)}, nil
		},
		Scale: func(a commands.ScaleArgs) (commands.Result, error) {
			m.setScale(a.Scale)
			viewChanged = true
			return commands.Result{Message: "scale " + string(a.Scale)}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			m.gotoDate(a.Date)
			viewChanged = true
			return commands.Result{Message: "showing " + a.Date.Format(model.DateLayout)}, nil
		},
		Today: func() (commands.Result, error) {
			m.gotoDate(model.Day(m.now()))
			viewChanged = true
			return commands.Result{Message: "showing today"}, nil
		},
		Critical: func(a commands.CriticalArgs) (commands.Result, error) {
			on := m.Critical.Enabled()
			switch a.Mode {
			case commands.CriticalOn:
				on = true
			case commands.CriticalOff:
				on = false
			default:
				on = !on
			}
			m.setCritical(on)
			viewChanged = true
			return commands.Result{Message: m.Status.Text}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			if err := m.exportCSV(a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d task(s) to %s", len(m.rows), a.Path)}, nil
		},
		SVG: func(a commands.ExportArgs) (commands.Result, error) {
			if err := m.exportSVG(a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "rendered chart to " + a.Path}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			projectID, err := m.targetProject()
			if err != nil {
				return commands.Result{}, err
			}
			task := model.Task{
				ID:        uuid.NewString(),
				ProjectID: projectID,
				Name:      a.Name,
				Start:     a.Start,
				End:       a.End,
				Status:    model.StatusNotStarted,
				Priority:  model.PriorityMedium,
				CreatedAt: m.now().UTC(),
			}
			if err := task.Validate(); err != nil {
				return commands.Result{}, err
			}
			followUp = m.mutate(fmt.Sprintf("added %s", task.Name), func(ctx context.Context, repo storage.Repository) error {
				return repo.CreateTask(ctx, task)
			})
			return commands.Result{Message: "adding " + task.Name}, nil
		},
		Link: func(a commands.LinkArgs) (commands.Result, error) {
			pred, err := m.resolveTask(a.Predecessor)
			if err != nil {
				return commands.Result{}, err
			}
			succ, err := m.resolveTask(a.Successor)
			if err != nil {
				return commands.Result{}, err
			}
			dep := model.Dependency{
				ID:            uuid.NewString(),
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
				Type:          a.Type,
				LagDays:       a.LagDays,
				CreatedAt:     m.now().UTC(),
			}
			if err := dep.Validate(); err != nil {
				return commands.Result{}, err
			}
			followUp = m.mutate(fmt.Sprintf("linked %s → %s", pred.Name, succ.Name), func(ctx context.Context, repo storage.Repository) error {
				return repo.CreateDependency(ctx, dep)
			})
			return commands.Result{Message: "linking " + pred.Name + " → " + succ.Name}, nil
		},
		Unlink: func(a commands.UnlinkArgs) (commands.Result, error) {
			pred, err := m.resolveTask(a.Predecessor)
			if err != nil {
				return commands.Result{}, err
			}
			succ, err := m.resolveTask(a.Successor)
			if err != nil {
				return commands.Result{}, err
			}
			var ids []string
			for _, d := range m.Deps {
				if d.PredecessorID == pred.ID && d.SuccessorID == succ.ID {
					ids = append(ids, d.ID)
				}
			}
			if len(ids) == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not linked to %s", pred.Name, succ.Name)}
			}
			followUp = m.mutate(fmt.Sprintf("unlinked %s → %s", pred.Name, succ.Name), func(ctx context.Context, repo storage.Repository) error {
				var errs []error
				for _, id := range ids {
					errs = append(errs, repo.DeleteDependency(ctx, id))
				}
				return errors.Join(errs...)
			})
			return commands.Result{Message: "unlinking " + pred.Name + " → " + succ.Name}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			task, err := m.resolveTask(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			followUp = m.mutate("removed "+task.Name, func(ctx context.Context, repo storage.Repository) error {
				return repo.DeleteTask(ctx, task.ID)
			})
			return commands.Result{Message: "removing " + task.Name}, nil
		},
		Project: func(a commands.ProjectArgs) (commands.Result, error) {
			if a.Name == "" {
				m.ProjectID = ""
				m.pendingName = ""
				m.rebuild()
				viewChanged = true
				return commands.Result{Message: "showing all projects"}, nil
			}
			p, ok := m.findProject(a.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown project: " + a.Name}
			}
			m.ProjectID = p.ID
			m.scrollY = 0
			m.rebuild()
			viewChanged = true
			return commands.Result{Message: "showing project " + p.Name}, nil
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			m.Sort = a.Order
			m.rebuild()
			viewChanged = true
			return commands.Result{Message: "sorted by " + string(a.Order)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Logger.Warn("palette command rejected", "command", raw, "error", err)
		return m, nil
	}
	if viewChanged {
		m.saveView()
	}
	m.Status = StatusBar{Text: res.Message}
	return m, followUp
}

func (m Model) mutate(message string, fn func(context.Context, storage.Repository) error) tea.Cmd {
	if m.Repo == nil {
		return func() tea.Msg { return MutationResultMsg{Err: errors.New("no task store configured")} }
	}
	return mutateCmd(m.Repo, m.commitTimeout, message, fn)
}

// targetProject picks the project new tasks join: the filtered project,
// or the only project when there is exactly one.
func (m Model) targetProject() (string, error) {
	if m.ProjectID != "" {
		return m.ProjectID, nil
	}
	switch len(m.Projects) {
	case 0:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no projects yet: create one with ganttd project add NAME"}
	case 1:
		return m.Projects[0].ID, nil
	default:
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "several projects: pick one with /project NAME first"}
	}
}

func (m Model) exportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, m.rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (m Model) exportSVG(path string) error {
	chart := layout.Plan(m.rows, timeaxis.New(m.TimeView), svgRowHeight)
	curves := arrows.Build(m.Deps, chart, m.path.Set, m.Critical.Enabled())

	opts := export.DefaultSVGOptions()
	opts.Title = "ganttd: " + m.projectLabel()
	opts.Buckets = m.buckets
	opts.Critical = m.path.Set
	opts.ShowCritical = m.Critical.Enabled()
	opts.Today = m.now()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteSVG(f, chart, curves, m.Colors, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
