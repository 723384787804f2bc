package export

import "fmt"

// Cell is one rendered position in a timetable grid.
type Cell struct {
	Text string
	// Color is a #RRGGBB fill, empty for none.
	Color string
	// Continued marks a cell covered by the lesson that started above it.
	Continued bool
}

// Row is a labelled line of the grid, one cell per column.
type Row struct {
	Label string
	Cells []Cell
}

// Table is a day grid ready for rendering: rows are time slots and columns are
// classrooms.
type Table struct {
	Title       string
	CornerLabel string
	Columns     []string
	Rows        []Row
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table requires at least one column")
	}
	for i, row := range t.Rows {
		if len(row.Cells) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row.Cells), len(t.Columns))
		}
	}
	return nil
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
