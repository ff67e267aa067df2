// Package export writes the rendered task list to files outside the TUI.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sandeepkv93/ganttd/internal/model"
)

var csvHeader = []string{"Name", "Start Date", "End Date", "Status"}

// WriteCSV writes one row per task in the given order after a fixed header.
func WriteCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, t := range tasks {
		row := []string{t.Name, formatDate(t.Start), formatDate(t.End), t.Status.Label()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write csv row %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

func formatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(model.DateLayout)
}
