package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/palette"
)

type SVGOptions struct {
	Title      string
	LabelWidth float64
	HeaderRows float64
	FontFamily string
	FontSize   int
	// Buckets maps project ids to palette bar buckets.
	Buckets map[string]int
	// Critical holds the ids drawn in the critical color when ShowCritical
	// is set.
	Critical     map[string]bool
	ShowCritical bool
	Today        time.Time
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		LabelWidth: 180,
		HeaderRows: 2,
		FontFamily: "Helvetica, Arial, sans-serif",
		FontSize:   12,
	}
}

// WriteSVG draws chart and its dependency curves as a standalone SVG
// document. Task names sit in a label column to the left of the timeline.
func WriteSVG(w io.Writer, chart layout.Chart, curves []arrows.Curve, pal palette.Palette, opts SVGOptions) error {
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	header := opts.HeaderRows * chart.RowHeight
	left := opts.LabelWidth
	width := left + chart.Axis.Width()
	height := header + chart.Height()

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.title-text { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.label-text { font-family: %s; font-size: %dpx; fill: %s; }
.axis-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
%s%s</defs>
`, num(width), num(height), pal.Background,
		opts.FontFamily, opts.FontSize+2, pal.Text,
		opts.FontFamily, opts.FontSize, pal.Text,
		opts.FontFamily, opts.FontSize-2, pal.Muted,
		marker(arrows.NormalStyle), marker(arrows.CriticalStyle)))

	if opts.Title != "" {
		svg.WriteString(fmt.Sprintf(`<text x="8" y="%s" class="title-text">%s</text>
`, num(chart.RowHeight*0.7), escapeXML(opts.Title)))
	}

	colW := chart.Axis.ColumnWidth()
	for i := range chart.Axis.Columns() {
		x := left + float64(i)*colW
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>
`, num(x), num(header-chart.RowHeight), num(x), num(height), pal.Grid))
		svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" class="axis-text">%s</text>
`, num(x+3), num(header-chart.RowHeight*0.3), escapeXML(chart.Axis.Label(i))))
	}

	if !opts.Today.IsZero() {
		if x, ok := chart.Axis.DateToX(opts.Today); ok {
			svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5" stroke-dasharray="4 3"/>
`, num(left+x), num(header), num(left+x), num(height), pal.Today))
		}
	}

	barH := chart.RowHeight * 0.6
	for _, p := range chart.Placements {
		y := header + chart.RowY(p.Row)
		svg.WriteString(fmt.Sprintf(`<text x="8" y="%s" class="label-text">%s</text>
`, num(y+chart.RowHeight*0.65), escapeXML(p.Task.Name)))

		fill := pal.BarColor(opts.Buckets[p.Task.ProjectID])
		stroke := "none"
		if opts.ShowCritical && opts.Critical[p.Task.ID] {
			stroke = pal.Critical
		}
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s" stroke="%s" stroke-width="2"><title>%s</title></rect>
`, num(left+p.Bar.Left), num(y+(chart.RowHeight-barH)/2), num(p.Bar.Width), num(barH), fill, stroke, escapeXML(tooltip(p.Task))))

		if p.Task.Progress > 0 {
			done := p.Bar.Width * float64(min(p.Task.Progress, 100)) / 100
			svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="0.35"/>
`, num(left+p.Bar.Left), num(y+chart.RowHeight/2+barH/2-3), num(done), "3", pal.Text))
		}
	}

	for _, c := range curves {
		svg.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="%s" fill="none" marker-end="url(#%s)" transform="translate(%s,%s)"/>
`, c.Path(), c.Style.Color, num(c.Style.Width), c.Style.Marker, num(left), num(header)))
	}

	svg.WriteString("</svg>\n")
	if _, err := io.WriteString(w, svg.String()); err != nil {
		return fmt.Errorf("export: write svg: %w", err)
	}
	return nil
}

func marker(s arrows.Style) string {
	return fmt.Sprintf(`<marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>
`, s.Marker, s.Color)
}

func tooltip(t model.Task) string {
	return fmt.Sprintf("%s: %s to %s (%d days)", t.Name, formatDate(t.Start), formatDate(t.End), t.DurationDays())
}

// escapeXML escapes text for element and attribute content. Characters
// XML cannot carry, and invalid UTF-8, become U+FFFD.
func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
