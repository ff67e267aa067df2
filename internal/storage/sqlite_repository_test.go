package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ganttd-test.db")
	repo, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

var created = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func seedProject(t *testing.T, repo *SQLiteRepository, id string) {
	t.Helper()
	if err := repo.CreateProject(context.Background(), model.Project{ID: id, Name: "Project " + id, CreatedAt: created}); err != nil {
		t.Fatalf("create project: %v", err)
	}
}

func seedTask(t *testing.T, repo *SQLiteRepository, id, project string, start, end time.Time) model.Task {
	t.Helper()
	task := model.Task{
		ID:        id,
		ProjectID: project,
		Name:      "Task " + id,
		Start:     start,
		End:       end,
		Status:    model.StatusNotStarted,
		Priority:  model.PriorityMedium,
		CreatedAt: created,
	}
	if err := repo.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", id, err)
	}
	return task
}

func TestProjectCreateListDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedProject(t, repo, "p1")
	seedProject(t, repo, "p2")

	projects, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 2 || projects[0].ID != "p1" {
		t.Fatalf("unexpected projects: %#v", projects)
	}

	if err := repo.DeleteProject(ctx, "p2"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if err := repo.DeleteProject(ctx, "p2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedProject(t, repo, "p1")
	seedProject(t, repo, "p2")

	task := seedTask(t, repo, "task-1", "p1", model.Date(2026, 3, 9), model.Date(2026, 3, 11))
	seedTask(t, repo, "task-2", "p1", model.Date(2026, 3, 2), model.Date(2026, 3, 2))
	seedTask(t, repo, "task-3", "p2", model.Date(2026, 3, 1), model.Date(2026, 3, 5))

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Name != task.Name || !got.Start.Equal(task.Start) || !got.End.Equal(task.End) {
		t.Fatalf("unexpected task get result: %#v", got)
	}
	if got.Status != model.StatusNotStarted || got.Priority != model.PriorityMedium {
		t.Fatalf("enums not round-tripped: %#v", got)
	}

	p1, err := repo.ListTasks(ctx, TaskListFilter{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(p1) != 2 || p1[0].ID != "task-2" || p1[1].ID != "task-1" {
		t.Fatalf("unexpected p1 list: %#v", p1)
	}

	all, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}

	page, err := repo.ListTasks(ctx, TaskListFilter{Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected offset page of 2, got %d", len(page))
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	_, err = repo.GetTask(ctx, task.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCreateTaskRejectsInvalid(t *testing.T) {
	repo := setupRepo(t)
	seedProject(t, repo, "p1")

	bad := model.Task{
		ID:        "bad",
		ProjectID: "p1",
		Name:      "Backwards",
		Start:     model.Date(2026, 3, 5),
		End:       model.Date(2026, 3, 1),
		Status:    model.StatusNotStarted,
		Priority:  model.PriorityLow,
	}
	if err := repo.CreateTask(context.Background(), bad); !errors.Is(err, model.ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates, got: %v", err)
	}
}

func TestUpdateTaskDatesWritesDuration(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedProject(t, repo, "p1")
	seedTask(t, repo, "t1", "p1", model.Date(2026, 3, 2), model.Date(2026, 3, 4))

	if err := repo.UpdateTaskDates(ctx, "t1", model.Date(2026, 3, 9), model.Date(2026, 3, 15)); err != nil {
		t.Fatalf("update dates: %v", err)
	}

	got, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.Start.Equal(model.Date(2026, 3, 9)) || !got.End.Equal(model.Date(2026, 3, 15)) {
		t.Fatalf("dates not updated: %s..%s", got.Start, got.End)
	}

	var duration int
	if err := repo.db.QueryRowContext(ctx, `SELECT duration_days FROM tasks WHERE id = ?`, "t1").Scan(&duration); err != nil {
		t.Fatalf("read duration: %v", err)
	}
	if duration != 7 {
		t.Fatalf("expected duration 7, got %d", duration)
	}

	if err := repo.UpdateTaskDates(ctx, "missing", model.Date(2026, 3, 9), model.Date(2026, 3, 9)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.UpdateTaskDates(ctx, "t1", model.Date(2026, 3, 9), model.Date(2026, 3, 8)); !errors.Is(err, model.ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates, got: %v", err)
	}
}

func TestDependencyCRUDAndFilter(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedProject(t, repo, "p1")
	for _, id := range []string{"a", "b", "c"} {
		seedTask(t, repo, id, "p1", model.Date(2026, 3, 2), model.Date(2026, 3, 3))
	}

	links := []model.Dependency{
		{ID: "ab", PredecessorID: "a", SuccessorID: "b", Type: model.FinishToStart, CreatedAt: created},
		{ID: "bc", PredecessorID: "b", SuccessorID: "c", Type: model.StartToStart, LagDays: 2, CreatedAt: created.Add(time.Minute)},
	}
	for _, d := range links {
		if err := repo.CreateDependency(ctx, d); err != nil {
			t.Fatalf("create dependency %s: %v", d.ID, err)
		}
	}

	dup := model.Dependency{ID: "ab2", PredecessorID: "a", SuccessorID: "b", Type: model.FinishToStart, CreatedAt: created}
	if err := repo.CreateDependency(ctx, dup); err == nil {
		t.Fatal("expected duplicate link to fail")
	}

	all, err := repo.ListDependencies(ctx, DependencyListFilter{})
	if err != nil {
		t.Fatalf("list dependencies: %v", err)
	}
	if len(all) != 2 || all[1].Type != model.StartToStart || all[1].LagDays != 2 {
		t.Fatalf("unexpected dependencies: %#v", all)
	}

	fromB, err := repo.ListDependencies(ctx, DependencyListFilter{PredecessorIDs: []string{"b", "zzz"}})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(fromB) != 1 || fromB[0].ID != "bc" {
		t.Fatalf("unexpected filtered list: %#v", fromB)
	}

	none, err := repo.ListDependencies(ctx, DependencyListFilter{PredecessorIDs: []string{}})
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %#v, %v", none, err)
	}

	if err := repo.DeleteDependency(ctx, "ab"); err != nil {
		t.Fatalf("delete dependency: %v", err)
	}
	if err := repo.DeleteDependency(ctx, "ab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteTaskCascadesToLinks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedProject(t, repo, "p1")
	seedTask(t, repo, "a", "p1", model.Date(2026, 3, 2), model.Date(2026, 3, 3))
	seedTask(t, repo, "b", "p1", model.Date(2026, 3, 4), model.Date(2026, 3, 5))
	if err := repo.CreateDependency(ctx, model.Dependency{ID: "ab", PredecessorID: "a", SuccessorID: "b", Type: model.FinishToStart, CreatedAt: created}); err != nil {
		t.Fatalf("create dependency: %v", err)
	}

	if err := repo.DeleteTask(ctx, "b"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	deps, err := repo.ListDependencies(ctx, DependencyListFilter{})
	if err != nil {
		t.Fatalf("list dependencies: %v", err)
	}
	if len(deps) != 0 {
		t.Fatalf("expected cascade delete, got %#v", deps)
	}

	if err := repo.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	tasks, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected project cascade, got %#v", tasks)
	}
}

func TestDefaultPathUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if path != filepath.Join(dir, "ganttd", "ganttd.db") {
		t.Fatalf("unexpected path: %s", path)
	}
}
