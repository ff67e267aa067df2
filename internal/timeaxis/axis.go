// Package timeaxis converts between calendar dates and horizontal layout
// coordinates for the three zoom granularities of the chart.
package timeaxis

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
)

var (
	ErrInvalidZoom  = errors.New("timeaxis: invalid zoom")
	ErrInvalidScale = errors.New("timeaxis: invalid scale")
)

type Zoom string

const (
	ZoomDay   Zoom = "day"
	ZoomWeek  Zoom = "week"
	ZoomMonth Zoom = "month"
)

func (z Zoom) IsValid() bool {
	switch z {
	case ZoomDay, ZoomWeek, ZoomMonth:
		return true
	default:
		return false
	}
}

func ParseZoom(raw string) (Zoom, error) {
	z := Zoom(strings.ToLower(strings.TrimSpace(raw)))
	if !z.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidZoom, raw)
	}
	return z, nil
}

// Scale is the user-adjustable width step of a day column. Week and month
// columns have fixed widths.
type Scale string

const (
	ScaleSmall  Scale = "small"
	ScaleMedium Scale = "medium"
	ScaleLarge  Scale = "large"
)

func (s Scale) IsValid() bool {
	switch s {
	case ScaleSmall, ScaleMedium, ScaleLarge:
		return true
	default:
		return false
	}
}

func ParseScale(raw string) (Scale, error) {
	s := Scale(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScale, raw)
	}
	return s, nil
}

func (s Scale) Larger() Scale {
	switch s {
	case ScaleSmall:
		return ScaleMedium
	default:
		return ScaleLarge
	}
}

func (s Scale) Smaller() Scale {
	switch s {
	case ScaleLarge:
		return ScaleMedium
	default:
		return ScaleSmall
	}
}

const (
	DayWidthSmall  = 24
	DayWidthMedium = 32
	DayWidthLarge  = 48
	WeekWidth      = 80
	MonthWidth     = 120

	MaxDayColumns   = 62
	MaxWeekColumns  = 26
	MaxMonthColumns = 14

	leadDays  = 7
	trailDays = 60
)

// View is the explicit view state every layout computation receives.
type View struct {
	Reference time.Time
	Zoom      Zoom
	Scale     Scale
}

func ColumnWidth(zoom Zoom, scale Scale) float64 {
	switch zoom {
	case ZoomWeek:
		return WeekWidth
	case ZoomMonth:
		return MonthWidth
	}
	switch scale {
	case ScaleSmall:
		return DayWidthSmall
	case ScaleLarge:
		return DayWidthLarge
	default:
		return DayWidthMedium
	}
}

func maxColumns(zoom Zoom) int {
	switch zoom {
	case ZoomWeek:
		return MaxWeekColumns
	case ZoomMonth:
		return MaxMonthColumns
	default:
		return MaxDayColumns
	}
}

// Axis is an immutable, materialized time axis for one View.
type Axis struct {
	view    View
	from    time.Time
	to      time.Time
	columns []time.Time
	index   map[string]int
	width   float64
}

func New(view View) Axis {
	if !view.Zoom.IsValid() {
		view.Zoom = ZoomDay
	}
	if !view.Scale.IsValid() {
		view.Scale = ScaleMedium
	}
	ref := model.Day(view.Reference)
	if ref.IsZero() {
		ref = model.Day(time.Now())
	}
	view.Reference = ref

	from := StartOfWeek(StartOfMonth(ref.AddDate(0, 0, -leadDays)))
	to := EndOfWeek(EndOfMonth(ref.AddDate(0, 0, trailDays)))

	limit := maxColumns(view.Zoom)
	columns := make([]time.Time, 0, limit)
	index := make(map[string]int, limit)
	for cursor := Normalize(from, view.Zoom); !cursor.After(to) && len(columns) < limit; cursor = Shift(cursor, view.Zoom, 1) {
		index[columnKey(cursor, view.Zoom)] = len(columns)
		columns = append(columns, cursor)
	}

	return Axis{
		view:    view,
		from:    from,
		to:      to,
		columns: columns,
		index:   index,
		width:   ColumnWidth(view.Zoom, view.Scale),
	}
}

func (a Axis) View() View { return a.view }

func (a Axis) Zoom() Zoom { return a.view.Zoom }

// Columns returns the rendered column dates in ascending order. The slice
// is shared; callers must not modify it.
func (a Axis) Columns() []time.Time { return a.columns }

func (a Axis) ColumnWidth() float64 { return a.width }

// Width is the pixel width of all rendered columns.
func (a Axis) Width() float64 { return float64(len(a.columns)) * a.width }

// Window returns the full date range backing the axis. It may extend past
// the last rendered column.
func (a Axis) Window() (time.Time, time.Time) { return a.from, a.to }

// DateToIndex locates the rendered column containing date.
func (a Axis) DateToIndex(date time.Time) (int, bool) {
	if date.IsZero() {
		return 0, false
	}
	idx, ok := a.index[columnKey(date, a.view.Zoom)]
	return idx, ok
}

func (a Axis) IndexToDate(i int) (time.Time, bool) {
	if i < 0 || i >= len(a.columns) {
		return time.Time{}, false
	}
	return a.columns[i], true
}

// DateToX is the left pixel edge of the column holding date.
func (a Axis) DateToX(date time.Time) (float64, bool) {
	idx, ok := a.DateToIndex(date)
	if !ok {
		return 0, false
	}
	return float64(idx) * a.width, true
}

// XToDate maps a pixel offset back to the column date under it.
func (a Axis) XToDate(x float64) (time.Time, bool) {
	if x < 0 || a.width <= 0 {
		return time.Time{}, false
	}
	return a.IndexToDate(int(x / a.width))
}

// After reports whether date lies beyond the last rendered column.
func (a Axis) After(date time.Time) bool {
	if len(a.columns) == 0 {
		return false
	}
	last := a.columns[len(a.columns)-1]
	return Normalize(date, a.view.Zoom).After(last)
}

func (a Axis) Label(i int) string {
	d, ok := a.IndexToDate(i)
	if !ok {
		return ""
	}
	return Label(d, a.view.Zoom)
}

func Label(d time.Time, zoom Zoom) string {
	switch zoom {
	case ZoomWeek:
		return d.Format("Jan 02")
	case ZoomMonth:
		return d.Format("Jan 2006")
	default:
		return d.Format("02")
	}
}

func columnKey(d time.Time, zoom Zoom) string {
	n := Normalize(d, zoom)
	if zoom == ZoomMonth {
		return n.Format("2006-01")
	}
	return n.Format(model.DateLayout)
}
