package critpath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepkv93/ganttd/internal/model"
)

func TestAnalyzerDisabledComputesNothing(t *testing.T) {
	a := NewAnalyzer(false)
	res := a.Update([]model.Task{makeTask("A", 2)}, nil)

	assert.True(t, res.Empty())
	assert.Equal(t, 0, a.Computations())
}

func TestAnalyzerCachesUntilDataChanges(t *testing.T) {
	tasks := []model.Task{makeTask("A", 3), makeTask("B", 2)}
	deps := []model.Dependency{fs("A", "B")}
	a := NewAnalyzer(true)

	first := a.Update(tasks, deps)
	second := a.Update(tasks, deps)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, a.Computations())

	tasks[1] = tasks[1].WithDates(tasks[1].Start, tasks[1].End.AddDate(0, 0, 4))
	third := a.Update(tasks, deps)
	assert.Equal(t, 9, third.Length)
	assert.Equal(t, 2, a.Computations())
}

func TestAnalyzerToggleIsIdempotent(t *testing.T) {
	tasks := []model.Task{makeTask("A", 3), makeTask("B", 2), makeTask("C", 4), makeTask("D", 5)}
	deps := []model.Dependency{fs("A", "B"), fs("B", "C")}
	a := NewAnalyzer(true)

	before := a.Update(tasks, deps)
	assert.False(t, a.Toggle())
	assert.True(t, a.Update(tasks, deps).Empty())
	assert.True(t, a.Toggle())
	after := a.Update(tasks, deps)

	assert.Equal(t, before.Set, after.Set)
	assert.Equal(t, before.Path, after.Path)
	assert.Equal(t, 2, a.Computations())
}
