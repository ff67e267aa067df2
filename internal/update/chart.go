package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
	"github.com/sandeepkv93/ganttd/internal/views"
)

// rebuild recomputes rows, layout, the critical path and arrows. Tasks
// under an active drag or resize are laid out at their preview dates but
// keep their row.
func (m *Model) rebuild() {
	rows := layout.Rows(m.Tasks, m.ProjectID, m.Sort)
	for i, t := range rows {
		if start, end, ok := m.Controller.Preview(t.ID); ok {
			rows[i] = t.WithDates(start, end)
		}
	}
	m.rows = rows
	m.chart = layout.Plan(rows, timeaxis.New(m.TimeView), views.RowPixels)

	before := m.Critical.Computations()
	m.path = m.Critical.Update(rows, m.Deps)
	if m.Critical.Computations() != before {
		m.Logger.Debug("critical path recomputed", "tasks", len(rows), "length_days", m.path.Length, "path", strings.Join(m.path.Path, ","))
	}
	m.reportCycles()

	m.curves = arrows.Build(m.Deps, m.chart, m.path.Set, m.Critical.Enabled())
	m.buckets = layout.ProjectBuckets(m.Projects, len(m.Colors.Bars))
	m.refreshDetails()
	m.clampScroll()
}

func (m *Model) reportCycles() {
	if len(m.path.CycleEdges) == 0 {
		m.cycleKey = ""
		return
	}
	names := make([]string, 0, len(m.path.CycleEdges))
	ids := make([]string, 0, len(m.path.CycleEdges))
	for _, d := range m.path.CycleEdges {
		names = append(names, fmt.Sprintf("%s → %s", m.taskName(d.PredecessorID), m.taskName(d.SuccessorID)))
		ids = append(ids, d.ID)
	}
	key := strings.Join(ids, ",")
	if key == m.cycleKey {
		return
	}
	m.cycleKey = key
	m.Logger.Warn("dependency cycle skipped", "links", key)
	m.pushToast("dependency cycle skipped: "+strings.Join(names, "; "), true)
}

func (m Model) taskName(id string) string {
	if t, ok := m.TaskByID(id); ok {
		return t.Name
	}
	return id
}

func (m Model) chartWidth() int {
	return max(m.width-labelWidth, 10)
}

func (m Model) visibleRows() int {
	return max(m.height-reservedRows, 3)
}

func (m *Model) clampScroll() {
	cells := views.CellOf(m.chart.Axis.Width()) + 1
	m.scrollX = min(max(m.scrollX, 0), max(cells-m.chartWidth(), 0))
	m.scrollY = min(max(m.scrollY, 0), max(len(m.rows)-m.visibleRows(), 0))
}

// recenter scrolls so the reference date sits near the left edge.
func (m *Model) recenter() {
	axis := timeaxis.New(m.TimeView)
	x, ok := axis.DateToX(m.TimeView.Reference)
	if !ok {
		m.scrollX = 0
		return
	}
	m.scrollX = views.CellOf(x) - 8
	m.clampScroll()
}

// pointerX maps a screen column to the layout x of that cell's center.
func (m Model) pointerX(screenX int) float64 {
	return float64(screenX-labelWidth+m.scrollX)*views.CellPixels + views.CellPixels/2
}

func (m Model) pointerRow(screenY int) (int, bool) {
	line := screenY - views.ChartTop
	if line < 0 || line >= m.visibleRows() {
		return 0, false
	}
	row := line + m.scrollY
	if row >= len(m.rows) {
		return 0, false
	}
	return row, true
}

func (m *Model) refreshDetails() {
	selected := m.Controller.Selected()
	if len(selected) == 0 {
		m.detailsKey = ""
		m.detailsViewport.SetContent("")
		return
	}
	p, ok := m.chart.Lookup(selected[0])
	if !ok {
		m.detailsKey = ""
		m.detailsViewport.SetContent("")
		return
	}
	t := p.Task
	chain := m.path.Chains[t.ID]
	data := views.DetailsData{
		Name:        t.Name,
		Start:       t.Start.Format(model.DateLayout),
		End:         t.End.Format(model.DateLayout),
		Duration:    t.DurationDays(),
		Milestone:   t.IsMilestone(),
		Status:      t.Status.Label(),
		Priority:    string(t.Priority),
		Progress:    t.Progress,
		Critical:    m.path.Contains(t.ID),
		ChainLength: chain.Length,
		Description: t.Description,
		Selected:    len(selected),
	}
	for _, d := range m.Deps {
		if d.SuccessorID == t.ID {
			data.Predecessor = append(data.Predecessor, m.taskName(d.PredecessorID))
		}
		if d.PredecessorID == t.ID {
			data.Successor = append(data.Successor, m.taskName(d.SuccessorID))
		}
	}
	md := views.DetailsMarkdown(data)
	if md == m.detailsKey {
		return
	}
	m.detailsKey = md
	m.detailsViewport.SetContent(views.RenderMarkdown(md))
}

func (m Model) renderChart() string {
	selected := make(map[string]bool)
	for _, id := range m.Controller.Selected() {
		selected[id] = true
	}
	return views.RenderChart(views.ChartData{
		Chart:        m.chart,
		Curves:       m.curves,
		Palette:      m.Colors,
		Buckets:      m.buckets,
		Critical:     m.path.Set,
		ShowCritical: m.Critical.Enabled(),
		Selected:     selected,
		Today:        model.Day(m.now()),
		LabelWidth:   labelWidth,
		Width:        m.chartWidth(),
		Rows:         m.visibleRows(),
		ScrollX:      m.scrollX,
		ScrollY:      m.scrollY,
	})
}
