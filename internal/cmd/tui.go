package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ganttd/internal/scheduler"
	"github.com/sandeepkv93/ganttd/internal/update"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) runTUI(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("ganttd needs a terminal; use export or render for scripted output")
	}

	log, err := a.logger(nil)
	if err != nil {
		return err
	}
	defer log.Close()

	repo, err := a.openRepo(log)
	if err != nil {
		return err
	}
	defer repo.Close()

	colors, err := a.palette()
	if err != nil {
		return err
	}

	rc := update.RuntimeConfigFrom(a.cfg, time.Now())
	engine := scheduler.NewEngine(rc.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModelWithConfig(repo, engine, log, colors, rc)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
		m = next.(update.Model)
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	final, err := program.Run()
	if err != nil {
		log.Error("tui exited", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := final.(update.Model); ok && fm.PendingCommits() > 0 {
		log.Warn("quit with unsaved changes", "pending", fm.PendingCommits())
	}
	log.Info("tui exited")
	return nil
}
