// Package layout turns task dates into bar geometry on a time axis.
package layout

import (
	"math"

	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

// Bar is the horizontal extent of one task, in layout pixels relative to the
// first rendered column.
type Bar struct {
	Left  float64
	Width float64
}

func (b Bar) Right() float64 { return b.Left + b.Width }

// Position computes the bar for task on axis. Starts outside the rendered
// columns clamp to the left edge instead of disappearing, and every bar is
// at least one column wide.
func Position(task model.Task, axis timeaxis.Axis) Bar {
	w := axis.ColumnWidth()
	switch axis.Zoom() {
	case timeaxis.ZoomWeek, timeaxis.ZoomMonth:
		return spanPosition(task, axis, w)
	default:
		idx, ok := axis.DateToIndex(task.Start)
		if !ok {
			idx = 0
		}
		return Bar{
			Left:  float64(idx) * w,
			Width: math.Max(w, float64(task.DurationDays())*w),
		}
	}
}

func spanPosition(task model.Task, axis timeaxis.Axis, w float64) Bar {
	start, ok := axis.DateToIndex(task.Start)
	if !ok {
		// starts after the last column: one column, never stretched
		if axis.After(task.Start) {
			return Bar{Left: 0, Width: w}
		}
		start = 0
	}
	end, ok := axis.DateToIndex(task.End)
	if !ok {
		end = start
		if axis.After(task.End) && len(axis.Columns()) > 0 {
			end = len(axis.Columns()) - 1
		}
	}
	span := end - start + 1
	if span < 1 {
		span = 1
	}
	return Bar{Left: float64(start) * w, Width: float64(span) * w}
}

// ColorBucket assigns a project its palette slot from its position in the
// containing list. The palette repeats once exhausted.
func ColorBucket(index, size int) int {
	if size <= 0 || index < 0 {
		return 0
	}
	return index % size
}

// ProjectBuckets maps each project id to its color bucket.
func ProjectBuckets(projects []model.Project, size int) map[string]int {
	out := make(map[string]int, len(projects))
	for i, p := range projects {
		out[p.ID] = ColorBucket(i, size)
	}
	return out
}
