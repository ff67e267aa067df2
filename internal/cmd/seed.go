package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/spf13/cobra"
)

type seedTask struct {
	name     string
	offset   int
	days     int
	progress int
	status   model.Status
}

type seedLink struct {
	from, to int
	typ      model.DependencyType
}

var demoTasks = []seedTask{
	{"Kickoff", 0, 1, 100, model.StatusCompleted},
	{"Requirements", 1, 5, 100, model.StatusCompleted},
	{"Design", 6, 6, 60, model.StatusInProgress},
	{"Backend", 12, 10, 0, model.StatusNotStarted},
	{"Frontend", 12, 8, 0, model.StatusNotStarted},
	{"Docs", 14, 6, 0, model.StatusNotStarted},
	{"Testing", 22, 5, 0, model.StatusNotStarted},
	{"Launch", 27, 1, 0, model.StatusNotStarted},
}

var demoLinks = []seedLink{
	{0, 1, model.FinishToStart},
	{1, 2, model.FinishToStart},
	{2, 3, model.FinishToStart},
	{2, 4, model.FinishToStart},
	{4, 5, model.StartToStart},
	{3, 6, model.FinishToStart},
	{4, 6, model.FinishToStart},
	{6, 7, model.FinishToStart},
}

func newSeedCmd(a *app) *cobra.Command {
	var name, start string
	c := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := model.Day(time.Now())
			if start != "" {
				d, err := model.ParseDate(start)
				if err != nil {
					return err
				}
				base = d
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := seedDemo(cmd.Context(), repo, name, base)
				if err != nil {
					return err
				}
				log.Info("demo project seeded", "id", p.ID, "tasks", len(demoTasks))
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s with %d tasks and %d links\n", p.Name, len(demoTasks), len(demoLinks))
				return nil
			})
		},
	}
	c.Flags().StringVar(&name, "name", "Website relaunch", "project name")
	c.Flags().StringVar(&start, "start", "", "first day of the plan, YYYY-MM-DD (default today)")
	return c
}

func seedDemo(ctx context.Context, repo storage.Repository, name string, base time.Time) (model.Project, error) {
	now := time.Now().UTC()
	p := model.Project{ID: uuid.NewString(), Name: name, CreatedAt: now}
	if err := repo.CreateProject(ctx, p); err != nil {
		return p, fmt.Errorf("create project: %w", err)
	}
	ids := make([]string, len(demoTasks))
	for i, st := range demoTasks {
		start := base.AddDate(0, 0, st.offset)
		t := model.Task{
			ID:        uuid.NewString(),
			ProjectID: p.ID,
			Name:      st.name,
			Start:     start,
			End:       start.AddDate(0, 0, st.days-1),
			Progress:  st.progress,
			Status:    st.status,
			Priority:  model.PriorityMedium,
			CreatedAt: now,
		}
		if err := repo.CreateTask(ctx, t); err != nil {
			return p, fmt.Errorf("create task %s: %w", st.name, err)
		}
		ids[i] = t.ID
	}
	for _, l := range demoLinks {
		d := model.Dependency{
			ID:            uuid.NewString(),
			PredecessorID: ids[l.from],
			SuccessorID:   ids[l.to],
			Type:          l.typ,
			CreatedAt:     now,
		}
		if err := repo.CreateDependency(ctx, d); err != nil {
			return p, fmt.Errorf("create dependency: %w", err)
		}
	}
	return p, nil
}
