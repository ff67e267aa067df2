package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/ganttd/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SchemaVersion reports the newest migration applied to the database.
func (r *SQLiteRepository) SchemaVersion() (string, error) {
	return SchemaVersion(r.db)
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in model.Project) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		in.ID, in.Name, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM projects ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		var created string
		if err := rows.Scan(&p.ID, &p.Name, &created); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = parseRequiredTime(created); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

const taskColumns = `id, project_id, parent_id, name, description, start_date, end_date, progress, status, priority, assignee_id, created_at`

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`, duration_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.ProjectID, in.ParentID, in.Name, in.Description,
		formatDate(in.Start), formatDate(in.End), in.Progress, string(in.Status), string(in.Priority),
		in.AssigneeID, mustTime(in.CreatedAt), in.DurationDays(),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := make([]any, 0, 3)
	if filter.ProjectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, filter.ProjectID)
	}
	query += ` ORDER BY start_date ASC, created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateTaskDates(ctx context.Context, id string, start, end time.Time) error {
	start, end = model.Day(start), model.Day(end)
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return model.ErrInvalidDates
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET start_date = ?, end_date = ?, duration_days = ? WHERE id = ?`,
		formatDate(start), formatDate(end), model.DaysBetween(start, end)+1, id,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) CreateDependency(ctx context.Context, in model.Dependency) error {
	if err := in.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dependencies (id, predecessor_id, successor_id, type, lag_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.PredecessorID, in.SuccessorID, string(in.Type), in.LagDays, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) DeleteDependency(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListDependencies(ctx context.Context, filter DependencyListFilter) ([]model.Dependency, error) {
	query := `SELECT id, predecessor_id, successor_id, type, lag_days, created_at FROM dependencies`
	args := make([]any, 0, len(filter.PredecessorIDs))
	if filter.PredecessorIDs != nil {
		if len(filter.PredecessorIDs) == 0 {
			return []model.Dependency{}, nil
		}
		placeholders := make([]string, 0, len(filter.PredecessorIDs))
		for _, id := range filter.PredecessorIDs {
			placeholders = append(placeholders, "?")
			args = append(args, id)
		}
		query += ` WHERE predecessor_id IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Dependency, 0)
	for rows.Next() {
		var d model.Dependency
		var kind, created string
		if err := rows.Scan(&d.ID, &d.PredecessorID, &d.SuccessorID, &kind, &d.LagDays, &created); err != nil {
			return nil, err
		}
		d.Type = model.DependencyType(kind)
		if d.CreatedAt, err = parseRequiredTime(created); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var start, end, status, priority, created string
	if err := s.Scan(&out.ID, &out.ProjectID, &out.ParentID, &out.Name, &out.Description,
		&start, &end, &out.Progress, &status, &priority, &out.AssigneeID, &created); err != nil {
		return model.Task{}, err
	}
	var err error
	if out.Start, err = model.ParseDate(start); err != nil {
		return model.Task{}, err
	}
	if out.End, err = model.ParseDate(end); err != nil {
		return model.Task{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return model.Task{}, err
	}
	out.Status = model.Status(status)
	out.Priority = model.Priority(priority)
	return out, nil
}

func formatDate(v time.Time) string {
	return model.Day(v).Format(model.DateLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
