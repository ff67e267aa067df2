package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

func TestRowsFiltersAndSorts(t *testing.T) {
	tasks := []model.Task{
		task("c", model.Date(2026, 3, 9), model.Date(2026, 3, 10)),
		task("a", model.Date(2026, 3, 2), model.Date(2026, 3, 3)),
		task("b", model.Date(2026, 3, 5), model.Date(2026, 3, 6)),
	}
	tasks[2].ProjectID = "p2"
	tasks[0].Name = "alpha"
	tasks[1].Name = "Zulu"

	byStart := Rows(tasks, "", SortByStart)
	assert.Equal(t, []string{"a", "b", "c"}, ids(byStart))

	byName := Rows(tasks, "", SortByName)
	assert.Equal(t, []string{"c", "b", "a"}, ids(byName))

	onlyP1 := Rows(tasks, "p1", SortByStart)
	assert.Equal(t, []string{"a", "c"}, ids(onlyP1))
	assert.Equal(t, "c", tasks[0].ID, "input untouched")
}

func TestPlanAssignsRowsAndLookup(t *testing.T) {
	axis := axisFor(timeaxis.ZoomDay)
	rows := []model.Task{
		task("a", model.Date(2026, 3, 2), model.Date(2026, 3, 3)),
		task("b", model.Date(2026, 3, 5), model.Date(2026, 3, 6)),
	}
	chart := Plan(rows, axis, 20)

	p, ok := chart.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 1, p.Row)
	assert.Equal(t, 20.0, chart.RowY(1))
	assert.Equal(t, 30.0, chart.RowCenter(1))
	assert.Equal(t, 40.0, chart.Height())

	_, ok = chart.Lookup("missing")
	assert.False(t, ok)
}

func TestHitTestZones(t *testing.T) {
	axis := axisFor(timeaxis.ZoomDay)
	chart := Plan([]model.Task{task("a", model.Date(2026, 3, 2), model.Date(2026, 3, 4))}, axis, 20)
	bar := chart.Placements[0].Bar // left 224, width 96

	hit, ok := chart.HitTest(bar.Left+2, 0, 8)
	require.True(t, ok)
	assert.Equal(t, ZoneStartEdge, hit.Zone)

	hit, ok = chart.HitTest(bar.Left+40, 0, 8)
	require.True(t, ok)
	assert.Equal(t, Hit{TaskID: "a", Zone: ZoneBody}, hit)

	hit, ok = chart.HitTest(bar.Right()-1, 0, 8)
	require.True(t, ok)
	assert.Equal(t, ZoneEndEdge, hit.Zone)

	_, ok = chart.HitTest(bar.Right(), 0, 8)
	assert.False(t, ok)
	_, ok = chart.HitTest(bar.Left+40, 1, 8)
	assert.False(t, ok)
}

func TestHitTestNarrowBarIsBodyOnly(t *testing.T) {
	axis := timeaxis.New(timeaxis.View{Reference: reference, Zoom: timeaxis.ZoomDay, Scale: timeaxis.ScaleSmall})
	chart := Plan([]model.Task{task("m", model.Date(2026, 3, 2), model.Date(2026, 3, 2))}, axis, 20)
	bar := chart.Placements[0].Bar

	hit, ok := chart.HitTest(bar.Left, 0, 12)
	require.True(t, ok)
	assert.Equal(t, ZoneBody, hit.Zone)
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
