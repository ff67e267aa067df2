// Package palette holds the chart colors and loads custom palettes from
// YAML.
package palette

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Palette is the set of colors the terminal and SVG renderers share.
// Projects take bar colors from Bars in order, cycling when there are more
// projects than colors.
type Palette struct {
	Name       string   `yaml:"name"`
	Bars       []string `yaml:"bars"`
	Critical   string   `yaml:"critical"`
	Arrow      string   `yaml:"arrow"`
	Grid       string   `yaml:"grid"`
	Text       string   `yaml:"text"`
	Muted      string   `yaml:"muted"`
	Background string   `yaml:"background"`
	Selected   string   `yaml:"selected"`
	Today      string   `yaml:"today"`
	Error      string   `yaml:"error"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func Default() Palette {
	return Palette{
		Name:       "default",
		Bars:       []string{"#4e79a7", "#59a14f", "#b07aa1", "#f28e2b", "#76b7b2", "#edc948"},
		Critical:   "#e4572e",
		Arrow:      "#8a8f98",
		Grid:       "#3b3f46",
		Text:       "#e6e6e6",
		Muted:      "#8a8f98",
		Background: "#1d1f23",
		Selected:   "#ffd166",
		Today:      "#ef476f",
		Error:      "#f87171",
	}
}

// BarColor returns the color of the given bucket.
func (p Palette) BarColor(bucket int) string {
	if len(p.Bars) == 0 {
		return p.Muted
	}
	if bucket < 0 {
		bucket = -bucket
	}
	return p.Bars[bucket%len(p.Bars)]
}

func (p Palette) Validate() error {
	if len(p.Bars) == 0 {
		return errors.New("palette: at least one bar color is required")
	}
	for i, c := range p.Bars {
		if !isValidHexColor(c) {
			return fmt.Errorf("palette: bar color %d has invalid format: %q", i, c)
		}
	}
	named := []struct{ name, value string }{
		{"critical", p.Critical},
		{"arrow", p.Arrow},
		{"grid", p.Grid},
		{"text", p.Text},
		{"muted", p.Muted},
		{"background", p.Background},
		{"selected", p.Selected},
		{"today", p.Today},
		{"error", p.Error},
	}
	for _, c := range named {
		if !isValidHexColor(c.value) {
			return fmt.Errorf("palette: color '%s' has invalid format: %q", c.name, c.value)
		}
	}
	return nil
}

// Load reads a palette file. Colors missing from the file keep their
// default values.
func Load(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Palette, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("parsing palette file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func isValidHexColor(c string) bool {
	return hexColorRegex.MatchString(c)
}
