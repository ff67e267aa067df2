package critpath

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/sandeepkv93/ganttd/internal/model"
)

// Analyzer caches the critical path behind the display toggle. While the
// toggle is off nothing is computed; while it is on the path is recomputed
// only when the task or dependency data changes.
type Analyzer struct {
	enabled      bool
	fresh        bool
	fingerprint  uint64
	result       Result
	computations int
}

func NewAnalyzer(enabled bool) *Analyzer {
	return &Analyzer{enabled: enabled}
}

func (a *Analyzer) Enabled() bool { return a.enabled }

func (a *Analyzer) SetEnabled(on bool) {
	if a.enabled == on {
		return
	}
	a.enabled = on
	if !on {
		a.fresh = false
		a.result = Result{}
	}
}

// Toggle flips the display toggle and reports the new state.
func (a *Analyzer) Toggle() bool {
	a.SetEnabled(!a.enabled)
	return a.enabled
}

// Update returns the critical path for the given data, or an empty result
// while disabled.
func (a *Analyzer) Update(tasks []model.Task, deps []model.Dependency) Result {
	if !a.enabled {
		return Result{}
	}
	fp := fingerprint(tasks, deps)
	if a.fresh && fp == a.fingerprint {
		return a.result
	}
	a.result = Compute(tasks, deps)
	a.fingerprint = fp
	a.fresh = true
	a.computations++
	return a.result
}

// Computations counts how many times the path was actually recomputed.
func (a *Analyzer) Computations() int { return a.computations }

func fingerprint(tasks []model.Task, deps []model.Dependency) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	for _, t := range tasks {
		_, _ = h.Write([]byte(t.ID))
		_, _ = h.Write([]byte{0})
		writeInt(t.Start.Unix())
		writeInt(t.End.Unix())
	}
	_, _ = h.Write([]byte{0})
	for _, d := range deps {
		_, _ = h.Write([]byte(d.PredecessorID))
		_, _ = h.Write([]byte{'>'})
		_, _ = h.Write([]byte(d.SuccessorID))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(d.Type))
	}
	return h.Sum64()
}
