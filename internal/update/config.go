package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/ganttd/internal/config"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

// RuntimeConfig is the subset of the loaded configuration the model reads
// at startup.
type RuntimeConfig struct {
	View            timeaxis.View
	ShowCritical    bool
	Project         string
	Sort            layout.SortOrder
	ToastTTL        time.Duration
	CommitTimeout   time.Duration
	StateFile       string
	SchedulerBuffer int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		View: timeaxis.View{
			Reference: model.Day(time.Now()),
			Zoom:      timeaxis.ZoomDay,
			Scale:     timeaxis.ScaleMedium,
		},
		Sort:            layout.SortByStart,
		ToastTTL:        4 * time.Second,
		CommitTimeout:   5 * time.Second,
		SchedulerBuffer: 64,
	}
}

// RuntimeConfigFrom maps a validated config onto the runtime settings.
// Zero durations keep the defaults.
func RuntimeConfigFrom(cfg *config.Config, now time.Time) RuntimeConfig {
	out := DefaultRuntimeConfig()
	if cfg == nil {
		return out
	}
	out.View = cfg.AxisView(now)
	out.ShowCritical = cfg.View.ShowCritical
	out.Project = strings.TrimSpace(cfg.View.Project)
	if order, ok := layout.ParseSortOrder(cfg.View.Sort); ok {
		out.Sort = order
	}
	if cfg.UI.ToastTTL > 0 {
		out.ToastTTL = cfg.UI.ToastTTL
	}
	if cfg.UI.CommitTimeout > 0 {
		out.CommitTimeout = cfg.UI.CommitTimeout
	}
	out.StateFile = strings.TrimSpace(cfg.UI.StateFile)
	return out
}
