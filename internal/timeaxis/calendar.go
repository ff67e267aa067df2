package timeaxis

import (
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
)

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d time.Time) time.Time {
	d = model.Day(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// EndOfWeek returns the Sunday on or after d.
func EndOfWeek(d time.Time) time.Time {
	return StartOfWeek(d).AddDate(0, 0, 6)
}

func StartOfMonth(d time.Time) time.Time {
	y, m, _ := d.Date()
	return model.Date(y, m, 1)
}

func EndOfMonth(d time.Time) time.Time {
	return StartOfMonth(d).AddDate(0, 1, -1)
}

// Normalize maps d onto the date that keys its column at the given zoom.
func Normalize(d time.Time, zoom Zoom) time.Time {
	switch zoom {
	case ZoomWeek:
		return StartOfWeek(d)
	case ZoomMonth:
		return StartOfMonth(d)
	default:
		return model.Day(d)
	}
}

// Shift moves d by n units of the zoom granularity. Month shifts keep the
// day of month, clamped to the length of the target month.
func Shift(d time.Time, zoom Zoom, n int) time.Time {
	d = model.Day(d)
	switch zoom {
	case ZoomWeek:
		return d.AddDate(0, 0, 7*n)
	case ZoomMonth:
		return shiftMonths(d, n)
	default:
		return d.AddDate(0, 0, n)
	}
}

func shiftMonths(d time.Time, n int) time.Time {
	first := StartOfMonth(d).AddDate(0, n, 0)
	last := EndOfMonth(first).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return model.Date(first.Year(), first.Month(), day)
}
