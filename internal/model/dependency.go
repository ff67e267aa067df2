package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDependencyType = errors.New("model: invalid dependency type")

type DependencyType string

const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

func (d DependencyType) IsValid() bool {
	switch d {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	default:
		return false
	}
}

// ParseDependencyType accepts both the stored names and the short fs/ss/ff/sf
// forms. An empty string means finish-to-start.
func ParseDependencyType(raw string) (DependencyType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "fs", string(FinishToStart):
		return FinishToStart, nil
	case "ss", string(StartToStart):
		return StartToStart, nil
	case "ff", string(FinishToFinish):
		return FinishToFinish, nil
	case "sf", string(StartToFinish):
		return StartToFinish, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDependencyType, raw)
	}
}

type Dependency struct {
	ID            string
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	LagDays       int
	CreatedAt     time.Time
}

func (d Dependency) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("model: dependency id is required")
	}
	if d.PredecessorID == "" || d.SuccessorID == "" {
		return errors.New("model: dependency endpoints are required")
	}
	if d.PredecessorID == d.SuccessorID {
		return errors.New("model: task cannot depend on itself")
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDependencyType, d.Type)
	}
	return nil
}
