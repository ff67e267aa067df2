package critpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/ganttd/internal/model"
)

// makeTask builds a task lasting days calendar days from march 2nd.
func makeTask(id string, days int) model.Task {
	start := model.Date(2026, 3, 2)
	return model.Task{
		ID:        id,
		ProjectID: "p1",
		Name:      id,
		Start:     start,
		End:       start.AddDate(0, 0, days-1),
		Status:    model.StatusNotStarted,
		Priority:  model.PriorityMedium,
	}
}

func fs(pred, succ string) model.Dependency {
	return model.Dependency{ID: pred + "-" + succ, PredecessorID: pred, SuccessorID: succ, Type: model.FinishToStart}
}

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil, nil)
	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Length)
	assert.Empty(t, res.Set)
}

func TestComputeLinearChain(t *testing.T) {
	tasks := []model.Task{makeTask("A", 3), makeTask("B", 2), makeTask("C", 4), makeTask("D", 5)}
	deps := []model.Dependency{fs("A", "B"), fs("B", "C")}

	res := Compute(tasks, deps)

	assert.Equal(t, []string{"A", "B", "C"}, res.Path)
	assert.Equal(t, 9, res.Length)
	assert.True(t, res.Contains("B"))
	assert.False(t, res.Contains("D"))
	assert.Equal(t, Chain{Length: 5, Previous: "A"}, res.Chains["B"])
}

func TestIsolatedLongTaskOutranksShorterChain(t *testing.T) {
	// A(3) -> B(2) -> C(4) sums to 9; the unlinked D lasts 10 days and wins.
	tasks := []model.Task{makeTask("A", 3), makeTask("B", 2), makeTask("C", 4), makeTask("D", 10)}
	deps := []model.Dependency{fs("A", "B"), fs("B", "C")}

	res := Compute(tasks, deps)

	assert.Equal(t, []string{"D"}, res.Path)
	assert.Equal(t, 10, res.Length)
	assert.Equal(t, 9, res.Chains["C"].Length)
	assert.Equal(t, map[string]bool{"D": true}, res.Set)
}

func TestOnlyFinishToStartEdgesCount(t *testing.T) {
	tasks := []model.Task{makeTask("A", 3), makeTask("B", 2)}
	ss := fs("A", "B")
	ss.Type = model.StartToStart

	res := Compute(tasks, []model.Dependency{ss})

	assert.Equal(t, []string{"A"}, res.Path)
	assert.Equal(t, 3, res.Length)
}

func TestFirstMaximumWinsTies(t *testing.T) {
	// B and C both chain 4 days into D; B is listed first so it is kept.
	tasks := []model.Task{makeTask("B", 4), makeTask("C", 4), makeTask("D", 1)}
	deps := []model.Dependency{fs("B", "D"), fs("C", "D")}

	res := Compute(tasks, deps)
	assert.Equal(t, []string{"B", "D"}, res.Path)

	tasks = []model.Task{makeTask("X", 2), makeTask("Y", 2)}
	res = Compute(tasks, nil)
	assert.Equal(t, []string{"X"}, res.Path, "terminal tie goes to the first task")
}

func TestSharedPredecessorsAreMemoized(t *testing.T) {
	tasks := []model.Task{makeTask("root", 2), makeTask("l", 1), makeTask("r", 3), makeTask("join", 1)}
	deps := []model.Dependency{fs("root", "l"), fs("root", "r"), fs("l", "join"), fs("r", "join")}

	res := Compute(tasks, deps)

	assert.Equal(t, []string{"root", "r", "join"}, res.Path)
	assert.Equal(t, 6, res.Length)
}

func TestUnknownEndpointsAreIgnored(t *testing.T) {
	tasks := []model.Task{makeTask("A", 2)}
	res := Compute(tasks, []model.Dependency{fs("ghost", "A"), fs("A", "ghost")})

	assert.Equal(t, []string{"A"}, res.Path)
	assert.Empty(t, res.CycleEdges)
}

func TestCycleDoesNotLoop(t *testing.T) {
	tasks := []model.Task{makeTask("A", 2), makeTask("B", 3), makeTask("C", 1)}
	deps := []model.Dependency{fs("A", "B"), fs("B", "C"), fs("C", "A")}

	res := Compute(tasks, deps)

	require.Len(t, res.CycleEdges, 1)
	assert.Equal(t, "A", res.CycleEdges[0].PredecessorID)
	assert.Equal(t, "B", res.CycleEdges[0].SuccessorID)
	assert.Equal(t, 6, res.Length)
	assert.Equal(t, []string{"B", "C", "A"}, res.Path)
}

func TestSelfLoopIsSkipped(t *testing.T) {
	tasks := []model.Task{makeTask("A", 2)}
	res := Compute(tasks, []model.Dependency{fs("A", "A")})

	assert.Equal(t, []string{"A"}, res.Path)
	require.Len(t, res.CycleEdges, 1)
}
