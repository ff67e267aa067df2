package update

import (
	"testing"
	"time"

	"github.com/sandeepkv93/ganttd/internal/config"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.View.Zoom != timeaxis.ZoomDay || cfg.View.Scale != timeaxis.ScaleMedium {
		t.Fatalf("unexpected view defaults: %+v", cfg.View)
	}
	if cfg.ToastTTL != 4*time.Second || cfg.CommitTimeout != 5*time.Second || cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.Sort != layout.SortByStart {
		t.Fatalf("unexpected sort default: %s", cfg.Sort)
	}
}

func TestRuntimeConfigFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.View.Zoom = "week"
	cfg.View.Scale = "large"
	cfg.View.ReferenceDate = "2026-04-01"
	cfg.View.ShowCritical = true
	cfg.View.Sort = "name"
	cfg.View.Project = " Apollo "
	cfg.UI.ToastTTL = 0
	cfg.UI.CommitTimeout = 2 * time.Second
	cfg.UI.StateFile = "state/custom.json"

	rc := RuntimeConfigFrom(cfg, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if rc.View.Zoom != timeaxis.ZoomWeek || rc.View.Scale != timeaxis.ScaleLarge {
		t.Fatalf("unexpected view: %+v", rc.View)
	}
	if !rc.View.Reference.Equal(model.Date(2026, 4, 1)) {
		t.Fatalf("unexpected reference: %s", rc.View.Reference)
	}
	if !rc.ShowCritical || rc.Sort != layout.SortByName || rc.Project != "Apollo" {
		t.Fatalf("unexpected view options: %+v", rc)
	}
	if rc.ToastTTL != 4*time.Second || rc.CommitTimeout != 2*time.Second {
		t.Fatalf("unexpected durations: %+v", rc)
	}
	if rc.StateFile != "state/custom.json" {
		t.Fatalf("unexpected state file: %s", rc.StateFile)
	}
}

func TestRuntimeConfigFromNil(t *testing.T) {
	rc := RuntimeConfigFrom(nil, time.Now())
	if rc.CommitTimeout != 5*time.Second {
		t.Fatalf("expected defaults for nil config: %+v", rc)
	}
}
