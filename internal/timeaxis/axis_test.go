package timeaxis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/ganttd/internal/model"
)

var reference = model.Date(2026, 3, 18) // a Wednesday

func TestWindowBoundsAreWeekAligned(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomDay, Scale: ScaleMedium})
	from, to := axis.Window()

	assert.Equal(t, model.Date(2026, 2, 23), from, "monday before march 1st")
	assert.Equal(t, model.Date(2026, 5, 31), to, "sunday closing the week of may 31st")
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, time.Sunday, to.Weekday())
}

func TestDayColumnsAreCapped(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomDay, Scale: ScaleMedium})
	cols := axis.Columns()

	require.Len(t, cols, MaxDayColumns)
	assert.Equal(t, model.Date(2026, 2, 23), cols[0])
	assert.Equal(t, model.Date(2026, 4, 25), cols[len(cols)-1])
	assert.Equal(t, float64(DayWidthMedium), axis.ColumnWidth())
	assert.Equal(t, float64(MaxDayColumns*DayWidthMedium), axis.Width())
}

func TestWeekColumnsAnchorToMonday(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomWeek})
	cols := axis.Columns()

	require.Len(t, cols, 14)
	for _, c := range cols {
		assert.Equal(t, time.Monday, c.Weekday(), c.Format(model.DateLayout))
	}
	assert.Equal(t, float64(WeekWidth), axis.ColumnWidth())

	idx, ok := axis.DateToIndex(model.Date(2026, 3, 22)) // sunday of the week of mar 16
	require.True(t, ok)
	assert.Equal(t, model.Date(2026, 3, 16), cols[idx])
}

func TestMonthColumnsUseFirstOfMonth(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomMonth})
	cols := axis.Columns()

	require.Equal(t, []time.Time{
		model.Date(2026, 2, 1),
		model.Date(2026, 3, 1),
		model.Date(2026, 4, 1),
		model.Date(2026, 5, 1),
	}, cols)
	idx, ok := axis.DateToIndex(model.Date(2026, 4, 30))
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, float64(MonthWidth), axis.ColumnWidth())
}

func TestDayScaleSteps(t *testing.T) {
	assert.Equal(t, float64(24), ColumnWidth(ZoomDay, ScaleSmall))
	assert.Equal(t, float64(32), ColumnWidth(ZoomDay, ScaleMedium))
	assert.Equal(t, float64(48), ColumnWidth(ZoomDay, ScaleLarge))
	assert.Equal(t, float64(WeekWidth), ColumnWidth(ZoomWeek, ScaleLarge), "scale only affects day zoom")
	assert.Equal(t, ScaleLarge, ScaleMedium.Larger())
	assert.Equal(t, ScaleSmall, ScaleSmall.Smaller())
}

func TestDateToIndexOutsideWindow(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomDay})
	_, ok := axis.DateToIndex(model.Date(2025, 12, 1))
	assert.False(t, ok)
	_, ok = axis.DateToIndex(model.Date(2026, 5, 1))
	assert.False(t, ok, "inside the window but past the rendered cap")
	assert.True(t, axis.After(model.Date(2026, 5, 1)))
	_, ok = axis.DateToIndex(time.Time{})
	assert.False(t, ok)
}

func TestDateToIndexIsMonotonic(t *testing.T) {
	for _, zoom := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		axis := New(View{Reference: reference, Zoom: zoom, Scale: ScaleSmall})
		from, to := axis.Window()
		last := -1
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			idx, ok := axis.DateToIndex(d)
			if !ok {
				continue
			}
			assert.GreaterOrEqual(t, idx, last, "zoom=%s date=%s", zoom, d.Format(model.DateLayout))
			last = idx
		}
		assert.Equal(t, len(axis.Columns())-1, last, "zoom=%s", zoom)
	}
}

func TestShiftByZoomUnit(t *testing.T) {
	d := model.Date(2026, 1, 31)
	assert.Equal(t, model.Date(2026, 2, 3), Shift(d, ZoomDay, 3))
	assert.Equal(t, model.Date(2026, 1, 17), Shift(d, ZoomWeek, -2))
	assert.Equal(t, model.Date(2026, 2, 28), Shift(d, ZoomMonth, 1), "clamped to end of february")
	assert.Equal(t, model.Date(2025, 11, 30), Shift(d, ZoomMonth, -2))
}

func TestXToDateRoundTrip(t *testing.T) {
	axis := New(View{Reference: reference, Zoom: ZoomDay, Scale: ScaleSmall})
	x, ok := axis.DateToX(reference)
	require.True(t, ok)
	got, ok := axis.XToDate(x + 5)
	require.True(t, ok)
	assert.Equal(t, reference, got)
}

func TestParseZoomAndScale(t *testing.T) {
	z, err := ParseZoom(" Week ")
	require.NoError(t, err)
	assert.Equal(t, ZoomWeek, z)

	_, err = ParseZoom("year")
	assert.ErrorIs(t, err, ErrInvalidZoom)

	_, err = ParseScale("huge")
	assert.ErrorIs(t, err, ErrInvalidScale)
}
