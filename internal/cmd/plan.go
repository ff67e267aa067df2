package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
)

// plan is one load of the store, filtered to a project when one is named.
type plan struct {
	Projects []model.Project
	Project  model.Project
	Tasks    []model.Task
	Rows     []model.Task
	Deps     []model.Dependency
}

func loadPlan(ctx context.Context, repo storage.Repository, projectRef string, order layout.SortOrder) (plan, error) {
	var p plan
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return p, fmt.Errorf("list projects: %w", err)
	}
	p.Projects = projects
	if projectRef != "" {
		proj, err := findProject(projects, projectRef)
		if err != nil {
			return p, err
		}
		p.Project = proj
	}
	p.Tasks, err = repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return p, fmt.Errorf("list tasks: %w", err)
	}
	p.Deps, err = repo.ListDependencies(ctx, storage.DependencyListFilter{})
	if err != nil {
		return p, fmt.Errorf("list dependencies: %w", err)
	}
	p.Rows = layout.Rows(p.Tasks, p.Project.ID, order)
	return p, nil
}

func findProject(projects []model.Project, ref string) (model.Project, error) {
	ref = strings.TrimSpace(ref)
	for _, p := range projects {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("unknown project: %s", ref)
}

// findTask resolves ref as a task id, a unique id prefix or a unique
// case-insensitive name.
func findTask(tasks []model.Task, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, fmt.Errorf("task reference is required")
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	var hits []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		for _, t := range tasks {
			if strings.EqualFold(t.Name, ref) {
				hits = append(hits, t)
			}
		}
	}
	switch len(hits) {
	case 0:
		return model.Task{}, fmt.Errorf("unknown task: %s", ref)
	case 1:
		return hits[0], nil
	default:
		return model.Task{}, fmt.Errorf("task %q is ambiguous: %d matches", ref, len(hits))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
