package layout

import (
	"sort"
	"strings"

	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

type SortOrder string

const (
	SortByStart SortOrder = "start"
	SortByName  SortOrder = "name"
)

func ParseSortOrder(raw string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByStart:
		return SortByStart, true
	case SortByName:
		return SortByName, true
	default:
		return "", false
	}
}

// Rows returns the tasks that belong on screen, in row order. An empty
// projectID keeps every project. The input slice is not modified.
func Rows(tasks []model.Task, projectID string, order SortOrder) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == SortByName {
			if !strings.EqualFold(a.Name, b.Name) {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
			return a.Start.Before(b.Start)
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	})
	return out
}

type Placement struct {
	Task model.Task
	Row  int
	Bar  Bar
}

// Chart is the laid-out form of an ordered row list.
type Chart struct {
	Axis       timeaxis.Axis
	RowHeight  float64
	Placements []Placement
	byID       map[string]int
}

func Plan(rows []model.Task, axis timeaxis.Axis, rowHeight float64) Chart {
	c := Chart{
		Axis:       axis,
		RowHeight:  rowHeight,
		Placements: make([]Placement, 0, len(rows)),
		byID:       make(map[string]int, len(rows)),
	}
	for i, t := range rows {
		c.byID[t.ID] = i
		c.Placements = append(c.Placements, Placement{Task: t, Row: i, Bar: Position(t, axis)})
	}
	return c
}

func (c Chart) Lookup(id string) (Placement, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Placement{}, false
	}
	return c.Placements[i], true
}

func (c Chart) RowY(row int) float64 { return float64(row) * c.RowHeight }

// RowCenter is the vertical middle of a row, where arrows attach.
func (c Chart) RowCenter(row int) float64 { return c.RowY(row) + c.RowHeight/2 }

func (c Chart) Height() float64 { return float64(len(c.Placements)) * c.RowHeight }

type Zone int

const (
	ZoneBody Zone = iota
	ZoneStartEdge
	ZoneEndEdge
)

type Hit struct {
	TaskID string
	Zone   Zone
}

// HitTest finds the bar under a pointer at horizontal offset x on the given
// row. Pointers within edgeTolerance of either end grab that edge, as long
// as the bar is wide enough to still have a body between the two edges.
func (c Chart) HitTest(x float64, row int, edgeTolerance float64) (Hit, bool) {
	if row < 0 || row >= len(c.Placements) {
		return Hit{}, false
	}
	p := c.Placements[row]
	if x < p.Bar.Left || x >= p.Bar.Right() {
		return Hit{}, false
	}
	hit := Hit{TaskID: p.Task.ID, Zone: ZoneBody}
	if p.Bar.Width <= 2*edgeTolerance {
		return hit, true
	}
	switch {
	case x < p.Bar.Left+edgeTolerance:
		hit.Zone = ZoneStartEdge
	case x >= p.Bar.Right()-edgeTolerance:
		hit.Zone = ZoneEndEdge
	}
	return hit, true
}
