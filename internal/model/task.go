package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDates    = errors.New("model: end date before start date")
	ErrInvalidProgress = errors.New("model: progress out of range")
)

// DateLayout is the on-disk and CLI representation of a calendar date.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	default:
		return false
	}
}

// Label is the human form used in exports and the details pane.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string
	ProjectID   string
	ParentID    string
	Name        string
	Description string
	Start       time.Time
	End         time.Time
	Progress    int
	Status      Status
	Priority    Priority
	AssigneeID  string
	CreatedAt   time.Time
}

// DurationDays counts both the start and the end day, so a task that starts
// and ends on the same date lasts one day.
func (t Task) DurationDays() int {
	return DaysBetween(t.Start, t.End) + 1
}

// IsMilestone reports whether the task collapses to a single point in time.
func (t Task) IsMilestone() bool {
	return Day(t.Start).Equal(Day(t.End))
}

// WithDates returns a copy of t carrying the given dates. Duration follows
// from the dates, so nothing else needs recomputing.
func (t Task) WithDates(start, end time.Time) Task {
	t.Start = Day(start)
	t.End = Day(end)
	return t
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		return errors.New("model: task project is required")
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return errors.New("model: task start and end dates are required")
	}
	if Day(t.End).Before(Day(t.Start)) {
		return fmt.Errorf("%w: %s < %s", ErrInvalidDates, t.End.Format(DateLayout), t.Start.Format(DateLayout))
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, t.Progress)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	return nil
}
