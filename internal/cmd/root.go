// Package cmd holds the ganttd command tree.
package cmd

import (
	"fmt"
	"io"

	"github.com/sandeepkv93/ganttd/internal/config"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/palette"
	"github.com/sandeepkv93/ganttd/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand shares once the config is loaded.
type app struct {
	cfgFile string
	dbPath  string
	verbose bool
	cfg     *config.Config
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ganttd",
		Short: "Terminal Gantt chart editor",
		Long: `ganttd lays out projects as a Gantt chart in the terminal.

Drag bars to move tasks, drag their ends to resize them, and toggle the
critical path. Subcommands manage the task store and export CSV or SVG.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/ganttd/config.yaml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "task database (default is $XDG_DATA_HOME/ganttd/ganttd.db)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "also write log records to stderr")
	_ = viper.BindPFlag("database.path", root.PersistentFlags().Lookup("db"))

	root.AddCommand(
		newExportCmd(a),
		newRenderCmd(a),
		newCriticalCmd(a),
		newProjectCmd(a),
		newTaskCmd(a),
		newLinkCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) load() error {
	if err := config.Init(a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.Path == "" {
		path, err := storage.DefaultPath()
		if err != nil {
			return err
		}
		cfg.Database.Path = path
	}
	a.cfg = cfg
	return nil
}

// logger opens the configured log. Without a log path records go to
// fallback, which is nil for the TUI so nothing reaches its screen.
func (a *app) logger(fallback io.Writer) (*logging.Logger, error) {
	return logging.New(a.cfg.Log.Path, a.cfg.Log.Level, fallback)
}

func (a *app) openRepo(log *logging.Logger) (*storage.SQLiteRepository, error) {
	repo, err := storage.OpenSQLite(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.cfg.Database.Path, err)
	}
	version, err := repo.SchemaVersion()
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	log.Info("storage opened", "path", a.cfg.Database.Path, "schema", version)
	return repo, nil
}

// withRepo opens the store and a logger around fn. With --verbose and no
// log file the records go to the command's stderr.
func (a *app) withRepo(cmd *cobra.Command, fn func(*storage.SQLiteRepository, *logging.Logger) error) error {
	var fallback io.Writer
	if a.verbose {
		fallback = cmd.ErrOrStderr()
	}
	log, err := a.logger(fallback)
	if err != nil {
		return err
	}
	defer log.Close()
	repo, err := a.openRepo(log)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo, log)
}

func (a *app) palette() (palette.Palette, error) {
	if a.cfg.Palette.File == "" {
		return palette.Default(), nil
	}
	return palette.Load(a.cfg.Palette.File)
}
