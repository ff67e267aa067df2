package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/spf13/cobra"
)

func newLinkCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:     "link",
		Aliases: []string{"links", "dep"},
		Short:   "Manage dependencies between tasks",
	}

	var depType string
	var lag int
	add := &cobra.Command{
		Use:   "add PREDECESSOR SUCCESSOR",
		Short: "Link two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := model.ParseDependencyType(depType)
			if err != nil {
				return err
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				tasks, err := repo.ListTasks(cmd.Context(), storage.TaskListFilter{})
				if err != nil {
					return fmt.Errorf("list tasks: %w", err)
				}
				pred, err := findTask(tasks, args[0])
				if err != nil {
					return err
				}
				succ, err := findTask(tasks, args[1])
				if err != nil {
					return err
				}
				d := model.Dependency{
					ID:            uuid.NewString(),
					PredecessorID: pred.ID,
					SuccessorID:   succ.ID,
					Type:          typ,
					LagDays:       lag,
					CreatedAt:     time.Now().UTC(),
				}
				if err := d.Validate(); err != nil {
					return err
				}
				if err := repo.CreateDependency(cmd.Context(), d); err != nil {
					return fmt.Errorf("create dependency: %w", err)
				}
				log.Info("dependency created", "id", d.ID, "type", d.Type)
				fmt.Fprintf(cmd.OutOrStdout(), "linked %s -> %s (%s)\n", pred.Name, succ.Name, d.Type)
				return nil
			})
		},
	}
	add.Flags().StringVarP(&depType, "type", "t", "fs", "fs, ss, ff or sf")
	add.Flags().IntVar(&lag, "lag", 0, "lag in days")

	rm := &cobra.Command{
		Use:   "rm PREDECESSOR SUCCESSOR",
		Short: "Remove every link between two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				tasks, err := repo.ListTasks(cmd.Context(), storage.TaskListFilter{})
				if err != nil {
					return fmt.Errorf("list tasks: %w", err)
				}
				pred, err := findTask(tasks, args[0])
				if err != nil {
					return err
				}
				succ, err := findTask(tasks, args[1])
				if err != nil {
					return err
				}
				deps, err := repo.ListDependencies(cmd.Context(), storage.DependencyListFilter{PredecessorIDs: []string{pred.ID}})
				if err != nil {
					return fmt.Errorf("list dependencies: %w", err)
				}
				var errs []error
				removed := 0
				for _, d := range deps {
					if d.SuccessorID != succ.ID {
						continue
					}
					if err := repo.DeleteDependency(cmd.Context(), d.ID); err != nil {
						errs = append(errs, err)
						continue
					}
					removed++
				}
				if err := errors.Join(errs...); err != nil {
					return fmt.Errorf("delete dependency: %w", err)
				}
				if removed == 0 {
					return fmt.Errorf("%s is not linked to %s", pred.Name, succ.Name)
				}
				log.Info("dependencies deleted", "predecessor", pred.ID, "successor", succ.ID, "count", removed)
				fmt.Fprintf(cmd.OutOrStdout(), "unlinked %s -> %s\n", pred.Name, succ.Name)
				return nil
			})
		},
	}

	var project string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := loadPlan(cmd.Context(), repo, project, "")
				if err != nil {
					return err
				}
				names := make(map[string]string, len(p.Rows))
				for _, t := range p.Rows {
					names[t.ID] = t.Name
				}
				var rows [][]string
				for _, d := range p.Deps {
					pred, ok1 := names[d.PredecessorID]
					succ, ok2 := names[d.SuccessorID]
					if !ok1 || !ok2 {
						continue
					}
					rows = append(rows, []string{pred, succ, string(d.Type), fmt.Sprintf("%dd", d.LagDays)})
				}
				printTable(cmd.OutOrStdout(), []string{"FROM", "TO", "TYPE", "LAG"}, rows)
				return nil
			})
		},
	}
	list.Flags().StringVarP(&project, "project", "p", "", "only links inside this project (id or name)")

	c.AddCommand(add, rm, list)
	return c
}
