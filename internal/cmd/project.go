package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	c.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.Project{
				ID:        uuid.NewString(),
				Name:      strings.Join(args, " "),
				CreatedAt: time.Now().UTC(),
			}
			if err := p.Validate(); err != nil {
				return err
			}
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				if err := repo.CreateProject(cmd.Context(), p); err != nil {
					return fmt.Errorf("create project: %w", err)
				}
				log.Info("project created", "id", p.ID, "name", p.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "created project %s (%s)\n", p.Name, shortID(p.ID))
				return nil
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				p, err := loadPlan(cmd.Context(), repo, "", "")
				if err != nil {
					return err
				}
				counts := make(map[string]int)
				for _, t := range p.Tasks {
					counts[t.ProjectID]++
				}
				rows := make([][]string, 0, len(p.Projects))
				for _, proj := range p.Projects {
					rows = append(rows, []string{shortID(proj.ID), proj.Name, fmt.Sprint(counts[proj.ID])})
				}
				printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TASKS"}, rows)
				return nil
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "rm PROJECT",
		Short: "Delete a project with its tasks and links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd, func(repo *storage.SQLiteRepository, log *logging.Logger) error {
				projects, err := repo.ListProjects(cmd.Context())
				if err != nil {
					return fmt.Errorf("list projects: %w", err)
				}
				p, err := findProject(projects, args[0])
				if err != nil {
					return err
				}
				if err := repo.DeleteProject(cmd.Context(), p.ID); err != nil {
					return fmt.Errorf("delete project: %w", err)
				}
				log.Info("project deleted", "id", p.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s\n", p.Name)
				return nil
			})
		},
	})
	return c
}

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "nothing yet")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	fmt.Fprintln(w, t.Render())
}
