package palette

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default palette invalid: %v", err)
	}
}

func TestBarColorCycles(t *testing.T) {
	p := Palette{Bars: []string{"#111111", "#222222"}, Muted: "#999999"}
	if got := p.BarColor(3); got != "#222222" {
		t.Fatalf("bucket 3: got %s", got)
	}
	if got := (Palette{Muted: "#999999"}).BarColor(1); got != "#999999" {
		t.Fatalf("empty bars: got %s", got)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	data := []byte("name: ocean\nbars:\n  - \"#003f5c\"\n  - \"#58508d\"\ncritical: \"#ff6361\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name != "ocean" || len(p.Bars) != 2 || p.Critical != "#ff6361" {
		t.Fatalf("unexpected palette: %+v", p)
	}
	if p.Arrow != Default().Arrow {
		t.Fatalf("expected default arrow color, got %s", p.Arrow)
	}
}

func TestParseRejectsBadColors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad bar", "bars: [\"blue\"]\n"},
		{"short hex", "critical: \"#ab\"\n"},
		{"empty bars", "bars: []\n"},
		{"not yaml", "bars: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Fatalf("expected error for %q", tt.data)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
