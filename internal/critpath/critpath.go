// Package critpath finds the longest chain of finish-to-start dependent
// tasks in a plan.
//
// Only finish-to-start links are followed. Start-to-start, finish-to-finish
// and start-to-finish links are stored and drawn but do not lengthen a
// chain, and dependency lag is ignored.
package critpath

import (
	"github.com/sandeepkv93/ganttd/internal/model"
)

// Chain is the memoized longest chain ending at one task.
type Chain struct {
	Length   int
	Previous string
}

type Result struct {
	// Path runs from the chain's first task to its terminal task.
	Path   []string
	Set    map[string]bool
	Length int
	Chains map[string]Chain
	// CycleEdges lists links skipped because following them would revisit
	// a task already on the recursion stack.
	CycleEdges []model.Dependency
}

func (r Result) Contains(id string) bool { return r.Set[id] }

func (r Result) Empty() bool { return len(r.Path) == 0 }

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

// Compute returns the critical path of tasks under deps. The terminal task
// is the first task, in input order, with the greatest chain length; each
// task's predecessor on the chain is the first predecessor, in dependency
// order, with the greatest chain length.
func Compute(tasks []model.Task, deps []model.Dependency) Result {
	known := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		known[t.ID] = t
	}

	preds := make(map[string][]model.Dependency, len(tasks))
	for _, d := range deps {
		if d.Type != model.FinishToStart {
			continue
		}
		if _, ok := known[d.PredecessorID]; !ok {
			continue
		}
		if _, ok := known[d.SuccessorID]; !ok {
			continue
		}
		preds[d.SuccessorID] = append(preds[d.SuccessorID], d)
	}

	res := Result{
		Set:    make(map[string]bool),
		Chains: make(map[string]Chain, len(tasks)),
	}
	state := make(map[string]visitState, len(tasks))

	var visit func(id string) int
	visit = func(id string) int {
		if state[id] == visited {
			return res.Chains[id].Length
		}
		state[id] = visiting

		chain := Chain{Length: known[id].DurationDays()}
		best := -1
		for _, dep := range preds[id] {
			if state[dep.PredecessorID] == visiting {
				res.CycleEdges = append(res.CycleEdges, dep)
				continue
			}
			length := visit(dep.PredecessorID)
			if length > best {
				best = length
				chain.Previous = dep.PredecessorID
			}
		}
		if best >= 0 {
			chain.Length += best
		}

		res.Chains[id] = chain
		state[id] = visited
		return chain.Length
	}

	terminal := ""
	for _, t := range tasks {
		length := visit(t.ID)
		if terminal == "" || length > res.Length {
			terminal = t.ID
			res.Length = length
		}
	}
	if terminal == "" {
		return res
	}

	reversed := make([]string, 0, 8)
	for id := terminal; id != "" && !res.Set[id]; id = res.Chains[id].Previous {
		res.Set[id] = true
		reversed = append(reversed, id)
	}
	res.Path = make([]string, len(reversed))
	for i, id := range reversed {
		res.Path[len(reversed)-1-i] = id
	}
	return res
}
