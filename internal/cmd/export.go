package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/critpath"
	"github.com/sandeepkv93/ganttd/internal/export"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
	"github.com/spf13/cobra"
)

const svgRowHeight = 28

func newExportCmd(a *app) *cobra.Command {
	var project, output, sortOrder string
	c := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as CSV",
		Long:  "Write one CSV row per task (name, start, end, status) in chart row order.",
		Args:  cobra.NoArgs,
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
				err = writeOutput(cmd, output, func(w io.Writer) error {
					return export.WriteCSV(w, p.Rows)
				})
				if err != nil {
					return err
				}
				log.Info("csv exported", "tasks", len(p.Rows), "output", output)
				return nil
			})
		},
	}
	c.Flags().StringVarP(&project, "project", "p", "", "only tasks of this project (id or name)")
	c.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	c.Flags().StringVar(&sortOrder, "sort", "", "row order: start or name (default from config)")
	return c
}

func newRenderCmd(a *app) *cobra.Command {
	var project, output, zoom, scale, ref, sortOrder string
	var critical bool
	c := &cobra.Command{
		Use:   "render",
		Short: "Render the chart as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.sortOrder(sortOrder)
			if err != nil {
				return err
			}
			view := a.cfg.AxisView(time.Now())
			if zoom != "" {
				if view.Zoom, err = timeaxis.ParseZoom(zoom); err != nil {
					return err
				}
			}
			if scale != "" {
				if view.Scale, err = timeaxis.ParseScale(scale); err != nil {
					return err
				}
			}
			if ref != "" {
				d, err := model.ParseDate(ref)
				if err != nil {
					return err
				}
				view.Reference = d
			}
			showCritical := a.cfg.View.ShowCritical
			if cmd.Flags().Changed("critical") {
				showCritical = critical
			}
			colors, err := a.palette()
			if err != nil {
				return err
			}

			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := loadPlan(cmd.Context(), repo, project, order)
				if err != nil {
					return err
				}
				chart := layout.Plan(p.Rows, timeaxis.New(view), svgRowHeight)
				path := critpath.Compute(p.Rows, p.Deps)
				curves := arrows.Build(p.Deps, chart, path.Set, showCritical)

				opts := export.DefaultSVGOptions()
				opts.Title = "ganttd: all projects"
				if p.Project.ID != "" {
					opts.Title = "ganttd: " + p.Project.Name
				}
				opts.Buckets = layout.ProjectBuckets(p.Projects, len(colors.Bars))
				opts.Critical = path.Set
				opts.ShowCritical = showCritical
				opts.Today = time.Now()

				err = writeOutput(cmd, output, func(w io.Writer) error {
					return export.WriteSVG(w, chart, curves, colors, opts)
				})
				if err != nil {
					return err
				}
				log.Info("svg rendered", "tasks", len(p.Rows), "zoom", view.Zoom, "output", output)
				return nil
			})
		},
	}
	c.Flags().StringVarP(&project, "project", "p", "", "only tasks of this project (id or name)")
	c.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	c.Flags().StringVar(&zoom, "zoom", "", "day, week or month (default from config)")
	c.Flags().StringVar(&scale, "scale", "", "small, medium or large (default from config)")
	c.Flags().StringVar(&ref, "ref", "", "reference date YYYY-MM-DD the window centers on")
	c.Flags().StringVar(&sortOrder, "sort", "", "row order: start or name (default from config)")
	c.Flags().BoolVar(&critical, "critical", false, "highlight the critical path")
	return c
}

func newCriticalCmd(a *app) *cobra.Command {
	var project string
	c := &cobra.Command{
		Use:   "critical",
		Short: "Print the critical path",
		Long: `Print the longest chain of finish-to-start linked tasks.

Chain length is the sum of task durations in days, counting start and end
days. Other link types and lag do not lengthen a chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := loadPlan(cmd.Context(), repo, project, layout.SortByStart)
				if err != nil {
					return err
				}
				res := critpath.Compute(p.Rows, p.Deps)
				out := cmd.OutOrStdout()
				for _, d := range res.CycleEdges {
					log.Warn("dependency cycle", "predecessor", d.PredecessorID, "successor", d.SuccessorID)
					fmt.Fprintf(out, "warning: cycle through %s -> %s ignored\n", shortID(d.PredecessorID), shortID(d.SuccessorID))
				}
				if res.Empty() {
					fmt.Fprintln(out, "no tasks")
					return nil
				}
				byID := make(map[string]model.Task, len(p.Rows))
				for _, t := range p.Rows {
					byID[t.ID] = t
				}
				fmt.Fprintf(out, "critical path: %d days through %d task(s)\n", res.Length, len(res.Path))
				for i, id := range res.Path {
					t := byID[id]
					fmt.Fprintf(out, "%2d. %s  %s..%s  %dd\n", i+1, t.Name,
						t.Start.Format(model.DateLayout), t.End.Format(model.DateLayout), t.DurationDays())
				}
				return nil
			})
		},
	}
	c.Flags().StringVarP(&project, "project", "p", "", "only tasks of this project (id or name)")
	return c
}

func (a *app) sortOrder(raw string) (layout.SortOrder, error) {
	if raw == "" {
		raw = a.cfg.View.Sort
	}
	order, ok := layout.ParseSortOrder(raw)
	if !ok {
		return "", fmt.Errorf("unsupported sort order %q", raw)
	}
	return order, nil
}

// writeOutput runs fn against stdout for "-" and otherwise against a
// freshly created file.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
