package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() Task {
	return Task{
		ID:        "task-1",
		ProjectID: "proj-1",
		Name:      "Pour foundation",
		Start:     Date(2026, 3, 2),
		End:       Date(2026, 3, 6),
		Progress:  40,
		Status:    StatusInProgress,
		Priority:  PriorityHigh,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
}

func TestTaskValidateSuccess(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsInvertedDates(t *testing.T) {
	task := validTask()
	task.End = Date(2026, 3, 1)
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates, got: %v", err)
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	task := validTask()
	task.Status = Status("Invalid")
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusOnHold
	task.Priority = Priority("Bad")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityMedium
	task.Progress = 101
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidProgress) {
		t.Fatalf("expected ErrInvalidProgress, got: %v", err)
	}
}

func TestDurationIsInclusiveAndDerivedFromDates(t *testing.T) {
	task := validTask()
	if got := task.DurationDays(); got != 5 {
		t.Fatalf("duration = %d, want 5", got)
	}

	moved := task.WithDates(Date(2026, 3, 10), Date(2026, 3, 10))
	if got := moved.DurationDays(); got != 1 {
		t.Fatalf("same-day duration = %d, want 1", got)
	}
	if !moved.IsMilestone() {
		t.Fatal("same-day task should be a milestone")
	}
	if task.IsMilestone() {
		t.Fatal("multi-day task should not be a milestone")
	}
}

func TestDayTruncatesClock(t *testing.T) {
	in := time.Date(2026, 3, 2, 23, 59, 0, 0, time.FixedZone("x", 3600))
	if got := Day(in); !got.Equal(Date(2026, 3, 2)) {
		t.Fatalf("Day() = %s", got)
	}
	if DaysBetween(Date(2026, 2, 27), Date(2026, 3, 2)) != 3 {
		t.Fatal("DaysBetween across month boundary should be 3")
	}
}

func TestParseDependencyType(t *testing.T) {
	cases := map[string]DependencyType{
		"":                 FinishToStart,
		"fs":               FinishToStart,
		"SS":               StartToStart,
		"finish_to_finish": FinishToFinish,
		"sf":               StartToFinish,
	}
	for in, want := range cases {
		got, err := ParseDependencyType(in)
		if err != nil || got != want {
			t.Fatalf("ParseDependencyType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDependencyType("xx"); !errors.Is(err, ErrInvalidDependencyType) {
		t.Fatalf("expected ErrInvalidDependencyType, got %v", err)
	}
}

func TestDependencyValidateRejectsSelfLink(t *testing.T) {
	dep := Dependency{ID: "d1", PredecessorID: "a", SuccessorID: "a", Type: FinishToStart}
	if err := dep.Validate(); err == nil {
		t.Fatal("expected self-link to be rejected")
	}
	dep.SuccessorID = "b"
	if err := dep.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
