package export

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/ganttd/internal/arrows"
	"github.com/sandeepkv93/ganttd/internal/layout"
	"github.com/sandeepkv93/ganttd/internal/model"
	"github.com/sandeepkv93/ganttd/internal/palette"
	"github.com/sandeepkv93/ganttd/internal/timeaxis"
)

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Start Date,End Date,Status\n", buf.String())
}

func TestWriteCSVEscapesFields(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Name: "Design, review", Start: model.Date(2026, 3, 2), End: model.Date(2026, 3, 4), Status: model.StatusInProgress},
		{ID: "2", Name: `Ship "v1"`, Start: model.Date(2026, 3, 5), End: model.Date(2026, 3, 5), Status: model.StatusCompleted},
		{ID: "3", Name: "Plain", Start: model.Date(2026, 3, 6), End: model.Date(2026, 3, 9), Status: model.StatusNotStarted},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tasks))

	want := strings.Join([]string{
		"Name,Start Date,End Date,Status",
		`"Design, review",2026-03-02,2026-03-04,In Progress`,
		`"Ship ""v1""",2026-03-05,2026-03-05,Completed`,
		"Plain,2026-03-06,2026-03-09,Not Started",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteSVGDrawsBarsAndArrows(t *testing.T) {
	axis := timeaxis.New(timeaxis.View{Reference: model.Date(2026, 3, 18), Zoom: timeaxis.ZoomWeek, Scale: timeaxis.ScaleMedium})
	rows := []model.Task{
		{ID: "a", ProjectID: "p", Name: "R&D <phase 1>", Start: model.Date(2026, 3, 2), End: model.Date(2026, 3, 6), Progress: 50},
		{ID: "b", ProjectID: "p", Name: "Build", Start: model.Date(2026, 3, 9), End: model.Date(2026, 3, 13)},
	}
	chart := layout.Plan(rows, axis, 24)
	deps := []model.Dependency{{ID: "ab", PredecessorID: "a", SuccessorID: "b", Type: model.FinishToStart}}
	critical := map[string]bool{"a": true, "b": true}
	curves := arrows.Build(deps, chart, critical, true)

	opts := DefaultSVGOptions()
	opts.Title = "Plan"
	opts.Critical = critical
	opts.ShowCritical = true
	opts.Today = model.Date(2026, 3, 18)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, chart, curves, palette.Default(), opts))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, "R&amp;D &lt;phase 1&gt;")
	assert.NotContains(t, out, "R&D <phase")
	assert.Contains(t, out, `id="arrow-critical"`)
	assert.Contains(t, out, `id="arrow-normal"`)
	assert.Contains(t, out, `marker-end="url(#arrow-critical)"`)
	assert.Contains(t, out, curves[0].Path())
	assert.Equal(t, 2, strings.Count(out, "<title>"), "one tooltip per bar")
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;Tom&#39;s &amp; co&lt;/a&gt;", escapeXML(`<a href="x">Tom's & co</a>`))
}

func TestEscapeXMLReplacesInvalidCharacters(t *testing.T) {
	got := escapeXML("bell\x07 nul\x00 bad\xff")
	assert.Equal(t, "bell\uFFFD nul\uFFFD bad\uFFFD", got)
	assert.True(t, utf8.ValidString(got))
}
