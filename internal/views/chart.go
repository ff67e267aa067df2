package views

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/palette"
)

const (
	// CellPixels is the number of layout pixels in one terminal column.
	CellPixels = 8
	// RowPixels is the layout height of one chart row. Each row is one
	// terminal line.
	RowPixels = 16
	// ChartTop is the screen line of the first task row: one title line
	// and one axis line sit above it.
	ChartTop = 2
)

type ChartData struct {
	Chart   layout.Chart
	Curves  []arrows.Curve
	Palette palette.Palette
	// Buckets maps project ids to bar color buckets.
	Buckets      map[string]int
	Critical     map[string]bool
	ShowCritical bool
	Selected     map[string]bool
	Today        time.Time
	LabelWidth   int
	Width        int
	Rows         int
	ScrollX      int
	ScrollY      int
}

type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindGrid
	kindToday
	kindArrow
	kindArrowCritical
	kindBar
)

type cell struct {
	ch     rune
	kind   cellKind
	color  string
	border string
}

// CellOf maps a layout x offset to its terminal column inside the timeline.
func CellOf(x float64) int {
	return int(math.Floor(x / CellPixels))
}

// RenderChart draws the axis line and one line per task row. Columns left
// of LabelWidth hold row numbers and task names.
func RenderChart(d ChartData) string {
	cols := int(math.Ceil(d.Chart.Axis.Width() / CellPixels))
	rows := len(d.Chart.Placements)
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' '}
		}
	}

	colW := d.Chart.Axis.ColumnWidth()
	for i := range d.Chart.Axis.Columns() {
		c := CellOf(float64(i) * colW)
		for r := 0; r < rows && c < cols; r++ {
			grid[r][c] = cell{ch: '┊', kind: kindGrid}
		}
	}

	todayCol := -1
	if !d.Today.IsZero() {
		if x, ok := d.Chart.Axis.DateToX(d.Today); ok {
			todayCol = CellOf(x + colW/2)
			for r := 0; r < rows && todayCol < cols; r++ {
				grid[r][todayCol] = cell{ch: '│', kind: kindToday}
			}
		}
	}

	for _, c := range d.Curves {
		drawCurve(grid, c)
	}

	for _, p := range d.Chart.Placements {
		drawBar(grid, p, d)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", d.LabelWidth))
	b.WriteString(axisLine(d, cols, todayCol))

	first, last := visibleRows(d, rows)
	for r := first; r < last; r++ {
		b.WriteString("\n")
		b.WriteString(rowLabel(d, d.Chart.Placements[r]))
		b.WriteString(renderCells(visibleCells(grid[r], d.ScrollX, d.Width), d.Palette))
	}
	if rows == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("no tasks: add one with /add NAME START END or ganttd task add"))
	}
	return b.String()
}

func visibleRows(d ChartData, rows int) (int, int) {
	first := max(d.ScrollY, 0)
	if first > rows {
		first = rows
	}
	last := rows
	if d.Rows > 0 && first+d.Rows < last {
		last = first + d.Rows
	}
	return first, last
}

func visibleCells(row []cell, scroll, width int) []cell {
	if scroll < 0 {
		scroll = 0
	}
	if scroll > len(row) {
		scroll = len(row)
	}
	row = row[scroll:]
	if width > 0 && len(row) > width {
		row = row[:width]
	}
	return row
}

func axisLine(d ChartData, cols, todayCol int) string {
	line := []rune(strings.Repeat(" ", cols))
	colW := d.Chart.Axis.ColumnWidth()
	span := max(CellOf(colW)-1, 1)
	for i := range d.Chart.Axis.Columns() {
		start := CellOf(float64(i) * colW)
		label := []rune(d.Chart.Axis.Label(i))
		if len(label) > span {
			label = label[:span]
		}
		for j, r := range label {
			if start+j < cols {
				line[start+j] = r
			}
		}
	}
	if todayCol >= 0 && todayCol < cols {
		line[todayCol] = '▼'
	}
	cells := make([]cell, len(line))
	for i, r := range line {
		cells[i] = cell{ch: r, kind: kindGrid}
		if i == todayCol {
			cells[i].kind = kindToday
		}
	}
	return renderCells(visibleCells(cells, d.ScrollX, d.Width), d.Palette)
}

func rowLabel(d ChartData, p layout.Placement) string {
	if d.LabelWidth <= 0 {
		return ""
	}
	marker := " "
	if d.Selected[p.Task.ID] {
		marker = ">"
	}
	text := fmt.Sprintf("%s%3d %s", marker, p.Row+1, p.Task.Name)
	runes := []rune(text)
	if len(runes) > d.LabelWidth-1 {
		runes = append(runes[:max(d.LabelWidth-2, 0)], '…')
	}
	text = string(runes) + strings.Repeat(" ", max(d.LabelWidth-len(runes), 0))
	if d.Selected[p.Task.ID] {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.Palette.Selected)).Render(text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(d.Palette.Text)).Render(text)
}

func drawBar(grid [][]cell, p layout.Placement, d ChartData) {
	if p.Row < 0 || p.Row >= len(grid) {
		return
	}
	row := grid[p.Row]
	from := CellOf(p.Bar.Left)
	to := int(math.Ceil(p.Bar.Right()/CellPixels)) - 1
	if to < from {
		to = from
	}

	color := d.Palette.BarColor(d.Buckets[p.Task.ProjectID])
	border := ""
	switch {
	case d.Selected[p.Task.ID]:
		border = d.Palette.Selected
	case d.ShowCritical && d.Critical[p.Task.ID]:
		border = d.Palette.Critical
	}

	done := from + (to-from+1)*min(max(p.Task.Progress, 0), 100)/100
	for c := from; c <= to && c < len(row); c++ {
		if c < 0 {
			continue
		}
		ch := '▓'
		if c < done {
			ch = '█'
		}
		if p.Task.IsMilestone() {
			ch = '◆'
		}
		row[c] = cell{ch: ch, kind: kindBar, color: color, border: border}
	}
}

// drawCurve traces a dependency in the empty cells it crosses and marks
// the cell before the successor bar with an arrowhead.
func drawCurve(grid [][]cell, c arrows.Curve) {
	kind := kindArrow
	if c.Critical {
		kind = kindArrowCritical
	}
	steps := max(int(math.Abs(c.End.X-c.Start.X)/CellPixels)+int(math.Abs(c.End.Y-c.Start.Y)/RowPixels)*2, 8)
	for _, pt := range c.Sample(steps) {
		r := int(pt.Y / RowPixels)
		col := CellOf(pt.X)
		if r < 0 || r >= len(grid) || col < 0 || col >= len(grid[r]) {
			continue
		}
		if grid[r][col].kind < kindArrow {
			grid[r][col] = cell{ch: '·', kind: kind}
		}
	}
	r := int(c.End.Y / RowPixels)
	col := CellOf(c.End.X) - 1
	if r >= 0 && r < len(grid) && col >= 0 && col < len(grid[r]) && grid[r][col].kind < kindBar {
		grid[r][col] = cell{ch: '▸', kind: kind}
	}
}

// renderCells joins runs of identically styled cells so each run costs one
// escape sequence.
func renderCells(cells []cell, pal palette.Palette) string {
	var b strings.Builder
	i := 0
	for i < len(cells) {
		j := i
		var run strings.Builder
		for j < len(cells) && sameStyle(cells[i], cells[j]) {
			run.WriteRune(cells[j].ch)
			j++
		}
		b.WriteString(cellStyle(cells[i], pal).Render(run.String()))
		i = j
	}
	return b.String()
}

func sameStyle(a, b cell) bool {
	return a.kind == b.kind && a.color == b.color && a.border == b.border
}

func cellStyle(c cell, pal palette.Palette) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch c.kind {
	case kindGrid:
		return s.Foreground(lipgloss.Color(pal.Grid))
	case kindToday:
		return s.Foreground(lipgloss.Color(pal.Today))
	case kindArrow:
		return s.Foreground(lipgloss.Color(pal.Arrow))
	case kindArrowCritical:
		return s.Foreground(lipgloss.Color(pal.Critical)).Bold(true)
	case kindBar:
		s = s.Foreground(lipgloss.Color(c.color))
		if c.border != "" {
			s = s.Background(lipgloss.Color(c.border))
		}
		return s
	default:
		return s
	}
}
