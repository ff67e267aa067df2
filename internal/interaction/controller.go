// Package interaction turns pointer gestures on task bars into date changes.
//
// The controller holds the selection and at most one drag or resize
// session. Session snapshots never touch task records; callers read live
// dates through Preview and receive the final dates from Release.
package interaction

import (
	"math"
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "idle"
	}
}

type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// TaskSource resolves the current dates of a task at press time.
type TaskSource interface {
	TaskByID(id string) (model.Task, bool)
}

// Snapshot is the pre-gesture interval of one task.
type Snapshot struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

// Session is the transient state of one drag or resize.
type Session struct {
	Mode      Mode
	Edge      Edge
	PressedID string
	OriginX   float64
	Delta     int
	Snapshots []Snapshot
	// collapse is set when a plain press landed inside a multi-selection.
	collapse bool
}

// Change is the outcome of a released gesture for one task.
type Change struct {
	TaskID   string
	Start    time.Time
	End      time.Time
	Previous Snapshot
}

func (c Change) DurationDays() int { return model.DaysBetween(c.Start, c.End) + 1 }

type Controller struct {
	zoom        timeaxis.Zoom
	columnWidth float64
	selected    []string
	session     *Session
}

func NewController(zoom timeaxis.Zoom, columnWidth float64) *Controller {
	return &Controller{zoom: zoom, columnWidth: columnWidth}
}

// SetAxis updates the unit a column stands for. An active session is
// cancelled because its origin no longer maps to the same dates.
func (c *Controller) SetAxis(zoom timeaxis.Zoom, columnWidth float64) {
	if zoom == c.zoom && columnWidth == c.columnWidth {
		return
	}
	c.zoom = zoom
	c.columnWidth = columnWidth
	c.session = nil
}

func (c *Controller) Mode() Mode {
	if c.session == nil {
		return ModeIdle
	}
	return c.session.Mode
}

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	s := *c.session
	s.Snapshots = append([]Snapshot(nil), c.session.Snapshots...)
	return s, true
}

// Select replaces the selection with id, or flips its membership when
// toggle is set.
func (c *Controller) Select(id string, toggle bool) {
	if !toggle {
		c.selected = []string{id}
		return
	}
	for i, sel := range c.selected {
		if sel == id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			return
		}
	}
	c.selected = append(c.selected, id)
}

func (c *Controller) ClearSelection() { c.selected = nil }

// Selected returns the selected ids in selection order.
func (c *Controller) Selected() []string { return append([]string(nil), c.selected...) }

func (c *Controller) IsSelected(id string) bool {
	for _, sel := range c.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Retain drops selected ids that keep reports false for.
func (c *Controller) Retain(keep func(id string) bool) {
	out := c.selected[:0]
	for _, id := range c.selected {
		if keep(id) {
			out = append(out, id)
		}
	}
	c.selected = out
}

// Press handles a pointer-down on a bar body and reports whether a drag
// started. A shift press only toggles the selection.
func (c *Controller) Press(id string, x float64, shift bool, src TaskSource) bool {
	if c.session != nil {
		return false
	}
	if shift {
		c.Select(id, true)
		return false
	}
	pressed, ok := src.TaskByID(id)
	if !ok {
		return false
	}

	session := &Session{Mode: ModeDragging, PressedID: id, OriginX: x}
	if c.IsSelected(id) && len(c.selected) > 1 {
		for _, sel := range c.selected {
			if t, ok := src.TaskByID(sel); ok {
				session.Snapshots = append(session.Snapshots, snapshotOf(t))
			}
		}
		session.collapse = true
	} else {
		c.Select(id, false)
		session.Snapshots = []Snapshot{snapshotOf(pressed)}
	}
	c.session = session
	return true
}

// PressEdge handles a pointer-down on a bar edge and starts a resize of
// that task alone.
func (c *Controller) PressEdge(id string, edge Edge, x float64, src TaskSource) bool {
	if c.session != nil {
		return false
	}
	t, ok := src.TaskByID(id)
	if !ok {
		return false
	}
	c.Select(id, false)
	c.session = &Session{
		Mode:      ModeResizing,
		Edge:      edge,
		PressedID: id,
		OriginX:   x,
		Snapshots: []Snapshot{snapshotOf(t)},
	}
	return true
}

// Move records the pointer position and reports whether the column delta
// changed since the last call.
func (c *Controller) Move(x float64) bool {
	if c.session == nil {
		return false
	}
	delta := c.delta(x)
	if delta == c.session.Delta {
		return false
	}
	c.session.Delta = delta
	return true
}

// Preview returns the live dates of id under the active session.
func (c *Controller) Preview(id string) (time.Time, time.Time, bool) {
	if c.session == nil {
		return time.Time{}, time.Time{}, false
	}
	for _, snap := range c.session.Snapshots {
		if snap.TaskID == id {
			start, end := c.apply(c.session, snap, c.session.Delta)
			return start, end, true
		}
	}
	return time.Time{}, time.Time{}, false
}

// Release ends the session and returns one change per task whose dates
// moved. A zero delta yields nil.
func (c *Controller) Release(x float64) []Change {
	if c.session == nil {
		return nil
	}
	c.Move(x)
	s := c.session
	c.session = nil

	if s.Delta == 0 {
		if s.collapse {
			c.Select(s.PressedID, false)
		}
		return nil
	}

	changes := make([]Change, 0, len(s.Snapshots))
	for _, snap := range s.Snapshots {
		start, end := c.apply(s, snap, s.Delta)
		if start.Equal(snap.Start) && end.Equal(snap.End) {
			continue
		}
		changes = append(changes, Change{TaskID: snap.TaskID, Start: start, End: end, Previous: snap})
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

// Cancel aborts the active session and reports whether there was one.
func (c *Controller) Cancel() bool {
	active := c.session != nil
	c.session = nil
	return active
}

func (c *Controller) delta(x float64) int {
	if c.columnWidth <= 0 {
		return 0
	}
	return int(math.Round((x - c.session.OriginX) / c.columnWidth))
}

func (c *Controller) apply(s *Session, snap Snapshot, delta int) (time.Time, time.Time) {
	if delta == 0 {
		return snap.Start, snap.End
	}
	switch s.Mode {
	case ModeResizing:
		return resize(snap, s.Edge, c.zoom, delta)
	default:
		return drag(snap, c.zoom, delta)
	}
}

func drag(snap Snapshot, zoom timeaxis.Zoom, delta int) (time.Time, time.Time) {
	span := model.DaysBetween(snap.Start, snap.End)
	start := timeaxis.Shift(snap.Start, zoom, delta)
	return start, start.AddDate(0, 0, span)
}

// resize moves only the grabbed edge and clamps it at the opposite edge,
// leaving a one-day task.
func resize(snap Snapshot, edge Edge, zoom timeaxis.Zoom, delta int) (time.Time, time.Time) {
	start, end := snap.Start, snap.End
	if edge == EdgeStart {
		start = timeaxis.Shift(start, zoom, delta)
		if start.After(end) {
			start = end
		}
		return start, end
	}
	end = timeaxis.Shift(end, zoom, delta)
	if end.Before(start) {
		end = start
	}
	return start, end
}

func snapshotOf(t model.Task) Snapshot {
	return Snapshot{TaskID: t.ID, Start: t.Start, End: t.End}
}
