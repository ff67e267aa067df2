// Package config loads ganttd settings from defaults, an optional YAML
// file and GANTTD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/logging"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

const EnvPrefix = "GANTTD"

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	View     ViewConfig     `mapstructure:"view"`
	Palette  PaletteConfig  `mapstructure:"palette"`
	UI       UIConfig       `mapstructure:"ui"`
}

type DatabaseConfig struct {
	// Path of the SQLite file. Empty uses the XDG data directory.
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	// Path of the JSON log file. Empty discards TUI logs.
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type ViewConfig struct {
	Zoom         string `mapstructure:"zoom"`
	Scale        string `mapstructure:"scale"`
	ShowCritical bool   `mapstructure:"show_critical"`
	// ReferenceDate centers the axis window. Empty means today.
	ReferenceDate string `mapstructure:"reference_date"`
	Sort          string `mapstructure:"sort"`
	Project       string `mapstructure:"project"`
}

type PaletteConfig struct {
	File string `mapstructure:"file"`
}

type UIConfig struct {
	ToastTTL      time.Duration `mapstructure:"toast_ttl"`
	CommitTimeout time.Duration `mapstructure:"commit_timeout"`
	// StateFile keeps the last view between runs. Empty disables it.
	StateFile string `mapstructure:"state_file"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: logging.LevelInfo},
		View: ViewConfig{
			Zoom:         string(timeaxis.ZoomDay),
			Scale:        string(timeaxis.ScaleMedium),
			ShowCritical: false,
			Sort:         string(layout.SortByStart),
		},
		UI: UIConfig{
			ToastTTL:      4 * time.Second,
			CommitTimeout: 5 * time.Second,
			StateFile:     filepath.Join(ConfigDir(), "state.json"),
		},
	}
}

// SetDefaults registers every default with viper so that env overrides
// resolve even for keys absent from the config file.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("database.path", defaults.Database.Path)

	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("log.level", defaults.Log.Level)

	viper.SetDefault("view.zoom", defaults.View.Zoom)
	viper.SetDefault("view.scale", defaults.View.Scale)
	viper.SetDefault("view.show_critical", defaults.View.ShowCritical)
	viper.SetDefault("view.reference_date", defaults.View.ReferenceDate)
	viper.SetDefault("view.sort", defaults.View.Sort)
	viper.SetDefault("view.project", defaults.View.Project)

	viper.SetDefault("palette.file", defaults.Palette.File)

	viper.SetDefault("ui.toast_ttl", defaults.UI.ToastTTL)
	viper.SetDefault("ui.commit_timeout", defaults.UI.CommitTimeout)
	viper.SetDefault("ui.state_file", defaults.UI.StateFile)
}

// Init wires defaults, the config file and the environment into viper.
// An explicit file that cannot be read is an error; a missing default file
// is not.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix(EnvPrefix)
	// GANTTD_VIEW_ZOOM overrides view.zoom
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from viper into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := timeaxis.ParseZoom(c.View.Zoom); err != nil {
		errs = append(errs, fmt.Errorf("view.zoom: %w", err))
	}
	if _, err := timeaxis.ParseScale(c.View.Scale); err != nil {
		errs = append(errs, fmt.Errorf("view.scale: %w", err))
	}
	if _, ok := layout.ParseSortOrder(c.View.Sort); !ok {
		errs = append(errs, fmt.Errorf("view.sort: unsupported order %q", c.View.Sort))
	}
	if c.View.ReferenceDate != "" {
		if _, err := model.ParseDate(c.View.ReferenceDate); err != nil {
			errs = append(errs, fmt.Errorf("view.reference_date: %w", err))
		}
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unsupported level %q", c.Log.Level))
	}
	if c.UI.ToastTTL <= 0 {
		errs = append(errs, errors.New("ui.toast_ttl: must be positive"))
	}
	if c.UI.CommitTimeout <= 0 {
		errs = append(errs, errors.New("ui.commit_timeout: must be positive"))
	}
	return errors.Join(errs...)
}

// AxisView builds the axis view. A blank reference date resolves to now.
func (c *Config) AxisView(now time.Time) timeaxis.View {
	ref := model.Day(now)
	if c.View.ReferenceDate != "" {
		if d, err := model.ParseDate(c.View.ReferenceDate); err == nil {
			ref = d
		}
	}
	zoom, err := timeaxis.ParseZoom(c.View.Zoom)
	if err != nil {
		zoom = timeaxis.ZoomDay
	}
	scale, err := timeaxis.ParseScale(c.View.Scale)
	if err != nil {
		scale = timeaxis.ScaleMedium
	}
	return timeaxis.View{Reference: ref, Zoom: zoom, Scale: scale}
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ganttd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ganttd"
	}
	return filepath.Join(home, ".config", "ganttd")
}

func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
