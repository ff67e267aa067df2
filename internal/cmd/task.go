package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}
	c.AddCommand(newTaskAddCmd(a), newTaskListCmd(a), newTaskMoveCmd(a), newTaskRmCmd(a))
	return c
}

func newTaskAddCmd(a *app) *cobra.Command {
	var project, status, priority, description string
	var progress int
	c := &cobra.Command{
		Use:   "add NAME START END",
		Short: "Create a task",
		Long: `Create a task running from START to END inclusive (YYYY-MM-DD).

A task whose start and end fall on the same day is a milestone.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := model.ParseDate(args[1])
			if err != nil {
				return err
			}
			end, err := model.ParseDate(args[2])
			if err != nil {
				return err
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				projects, err := repo.ListProjects(cmd.Context())
				if err != nil {
					return fmt.Errorf("list projects: %w", err)
				}
				var proj model.Project
				switch {
				case project != "":
					if proj, err = findProject(projects, project); err != nil {
						return err
					}
				case len(projects) == 1:
					proj = projects[0]
				case len(projects) == 0:
					return fmt.Errorf("no projects yet: create one with ganttd project add NAME")
				default:
					return fmt.Errorf("several projects: pick one with --project")
				}

				t := model.Task{
					ID:          uuid.NewString(),
					ProjectID:   proj.ID,
					Name:        strings.TrimSpace(args[0]),
					Description: description,
					Start:       start,
					End:         end,
					Progress:    progress,
					Status:      model.Status(status),
					Priority:    model.Priority(priority),
					CreatedAt:   time.Now().UTC(),
				}
				if err := t.Validate(); err != nil {
					return err
				}
				if err := repo.CreateTask(cmd.Context(), t); err != nil {
					return fmt.Errorf("create task: %w", err)
				}
				log.Info("task created", "id", t.ID, "project", proj.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "created task %s (%s) in %s\n", t.Name, shortID(t.ID), proj.Name)
				return nil
			})
		},
	}
	c.Flags().StringVarP(&project, "project", "p", "", "project id or name (optional with a single project)")
	c.Flags().StringVar(&status, "status", string(model.StatusNotStarted), "not_started, in_progress, completed or on_hold")
	c.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "low, medium, high or critical")
	c.Flags().IntVar(&progress, "progress", 0, "percent complete, 0 to 100")
	c.Flags().StringVar(&description, "description", "", "free-form notes")
	return c
}

func newTaskListCmd(a *app) *cobra.Command {
	var project, sortOrder string
	c := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in chart row order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.sortOrder(sortOrder)
			if err != nil {
				return err
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := loadPlan(cmd.Context(), repo, project, order)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(p.Rows))
				for _, t := range p.Rows {
					rows = append(rows, []string{
						shortID(t.ID),
						t.Name,
						t.Start.Format(model.DateLayout),
						t.End.Format(model.DateLayout),
						fmt.Sprintf("%dd", t.DurationDays()),
						fmt.Sprintf("%d%%", t.Progress),
						t.Status.Label(),
					})
				}
				printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "START", "END", "DAYS", "DONE", "STATUS"}, rows)
				return nil
			})
		},
	}
	c.Flags().StringVarP(&project, "project", "p", "", "only tasks of this project (id or name)")
	c.Flags().StringVar(&sortOrder, "sort", "", "row order: start or name (default from config)")
	return c
}

func newTaskMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move TASK START END",
		Short: "Change a task's dates",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := model.ParseDate(args[1])
			if err != nil {
				return err
			}
			end, err := model.ParseDate(args[2])
			if err != nil {
				return err
			}
			if end.Before(start) {
				return fmt.Errorf("%w: end %s is before start %s", model.ErrInvalidDates, args[2], args[1])
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				tasks, err := repo.ListTasks(cmd.Context(), storage.TaskListFilter{})
				if err != nil {
					return fmt.Errorf("list tasks: %w", err)
				}
				t, err := findTask(tasks, args[0])
				if err != nil {
					return err
				}
				if err := repo.UpdateTaskDates(cmd.Context(), t.ID, start, end); err != nil {
					return fmt.Errorf("update task: %w", err)
				}
				log.Info("task moved", "id", t.ID, "start", args[1], "end", args[2])
				fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s..%s\n", t.Name, args[1], args[2])
				return nil
			})
		},
	}
}

func newTaskRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm TASK",
		Short: "Delete a task and its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				tasks, err := repo.ListTasks(cmd.Context(), storage.TaskListFilter{})
				if err != nil {
					return fmt.Errorf("list tasks: %w", err)
				}
				t, err := findTask(tasks, args[0])
				if err != nil {
					return err
				}
				if err := repo.DeleteTask(cmd.Context(), t.ID); err != nil {
					return fmt.Errorf("delete task: %w", err)
				}
				log.Info("task deleted", "id", t.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "deleted task %s\n", t.Name)
				return nil
			})
		},
	}
}
