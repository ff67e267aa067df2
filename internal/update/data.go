package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ganttd/internal/interaction"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
)

func loadCmd(repo storage.Repository, timeout time.Duration) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		projects, err := repo.ListProjects(ctx)
		if err != nil {
			return DataLoadedMsg{Err: fmt.Errorf("load projects: %w", err)}
		}
		tasks, err := repo.ListTasks(ctx, storage.TaskListFilter{})
		if err != nil {
			return DataLoadedMsg{Err: fmt.Errorf("load tasks: %w", err)}
		}
		deps, err := repo.ListDependencies(ctx, storage.DependencyListFilter{})
		if err != nil {
			return DataLoadedMsg{Err: fmt.Errorf("load dependencies: %w", err)}
		}
		return DataLoadedMsg{Projects: projects, Tasks: tasks, Deps: deps}
	}
}

// commitCmd persists one change under its own timeout. Commands for the
// tasks of a release are batched and run concurrently.
func commitCmd(repo storage.Repository, change interaction.Change, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := repo.UpdateTaskDates(ctx, change.TaskID, change.Start, change.End)
		return CommitResultMsg{Change: change, Err: err}
	}
}

func mutateCmd(repo storage.Repository, timeout time.Duration, message string, fn func(context.Context, storage.Repository) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := fn(ctx, repo); err != nil {
			return MutationResultMsg{Err: err}
		}
		return MutationResultMsg{Message: message}
	}
}

func (m *Model) applyLoaded(msg DataLoadedMsg) {
	m.Projects = msg.Projects
	m.Tasks = msg.Tasks
	m.Deps = msg.Deps
	m.Loaded = true

	// a load can race a commit still in flight; keep its dates on screen
	for id, c := range m.inflight {
		m.applyChange(id, c.Start, c.End)
	}

	if m.pendingName != "" {
		if p, ok := m.findProject(m.pendingName); ok {
			m.ProjectID = p.ID
		} else {
			m.Logger.Warn("unknown project filter", "project", m.pendingName)
		}
		m.pendingName = ""
	}
	if m.ProjectID != "" {
		if _, ok := m.findProject(m.ProjectID); !ok {
			m.ProjectID = ""
		}
	}

	known := make(map[string]bool, len(m.Tasks))
	for _, t := range m.Tasks {
		known[t.ID] = true
	}
	m.Controller.Retain(func(id string) bool { return known[id] })
}

// applyChange writes optimistic dates into the task list.
func (m *Model) applyChange(id string, start, end time.Time) bool {
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			m.Tasks[i] = m.Tasks[i].WithDates(start, end)
			return true
		}
	}
	return false
}

func (m Model) findProject(ref string) (model.Project, bool) {
	ref = strings.TrimSpace(ref)
	for _, p := range m.Projects {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return model.Project{}, false
}

func (m Model) projectRef() string {
	if m.ProjectID == "" {
		return m.pendingName
	}
	if p, ok := m.findProject(m.ProjectID); ok {
		return p.Name
	}
	return m.ProjectID
}

// resolveTask finds a task by 1-based row number, exact id, unique id
// prefix, or case-insensitive name, in that order.
func (m Model) resolveTask(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(m.rows) {
			return model.Task{}, fmt.Errorf("row %d is out of range", n)
		}
		return m.rows[n-1], nil
	}
	if t, ok := m.TaskByID(ref); ok {
		return t, nil
	}
	var match []model.Task
	for _, t := range m.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}
	if len(match) > 1 {
		return model.Task{}, fmt.Errorf("task id prefix %q is ambiguous", ref)
	}
	for _, t := range m.Tasks {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("no task matches %q", ref)
}
