package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateProject(ctx context.Context, in model.Project) error
	ListProjects(ctx context.Context) ([]model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)
	// UpdateTaskDates rewrites a task's interval and its stored duration.
	UpdateTaskDates(ctx context.Context, id string, start, end time.Time) error
	DeleteTask(ctx context.Context, id string) error

	CreateDependency(ctx context.Context, in model.Dependency) error
	DeleteDependency(ctx context.Context, id string) error
	ListDependencies(ctx context.Context, filter DependencyListFilter) ([]model.Dependency, error)
}
