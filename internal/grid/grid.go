// Package grid lays weekly lessons out on a (time slot x classroom) matrix for
// one date. Layout is pure: the same input always yields the same Grid.
package grid

import (
	"sort"
	"time"

	"github.com/noah-isme/lesson-calendar-api/internal/classroom"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
)

// CellKind tags a matrix cell.
type CellKind string

const (
	KindEmpty    CellKind = "empty"
	KindEvent    CellKind = "event"
	KindOccupied CellKind = "occupied"
)

// Cell is one (slot, classroom) coordinate. Event cells carry the lesson and
// the number of rows it covers; Occupied cells continue the event above.
type Cell struct {
	Kind   CellKind       `json:"kind"`
	Lesson *models.Lesson `json:"lesson,omitempty"`
	Span   int            `json:"span,omitempty"`
}

// SkipReason explains why a matched lesson was not placed.
type SkipReason string

const (
	SkipUnknownClassroom SkipReason = "unknown_classroom"
	SkipOutsideWindow    SkipReason = "outside_window"
	SkipConflict         SkipReason = "conflict"
)

// Skip reports a lesson for the target weekday that is missing from the grid.
type Skip struct {
	LessonID string     `json:"lessonId"`
	Reason   SkipReason `json:"reason"`
}

// Grid is the laid out day. Cells is indexed [slot][classroom].
type Grid struct {
	Weekday    int      `json:"weekday"`
	Slots      []string `json:"slots"`
	Classrooms []string `json:"classrooms"`
	Cells      [][]Cell `json:"cells"`
	Skipped    []Skip   `json:"skipped"`
}

// At returns the cell at (row, col) or an empty cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= len(g.Cells[row]) {
		return Cell{Kind: KindEmpty}
	}
	return g.Cells[row][col]
}

// EventCount returns the number of placed lessons.
func (g Grid) EventCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Kind == KindEvent {
				n++
			}
		}
	}
	return n
}

// Engine holds the window and classroom rules shared by every layout.
type Engine struct {
	window     timegrid.Window
	normalizer *classroom.Normalizer
}

// NewEngine builds an engine. A nil normalizer compares raw names.
func NewEngine(window timegrid.Window, normalizer *classroom.Normalizer) *Engine {
	return &Engine{window: window, normalizer: normalizer}
}

// Window returns the slot window used by the engine.
func (e *Engine) Window() timegrid.Window {
	return e.window
}

type candidate struct {
	lesson models.Lesson
	col    int
	start  int
	span   int
}

// Layout places every lesson whose weekday matches date into the columns of
// classrooms. Spans run inclusively from the start slot to the slot holding
// the last minute of the lesson. Lessons are placed in (start slot, id) order and the
// first lesson to claim a start cell wins; the rest are reported as conflicts.
func (e *Engine) Layout(lessons []models.Lesson, date time.Time, classrooms []string) Grid {
	rows := e.window.TotalSlots()
	weekday := int(date.Weekday())

	columns := make(map[string]int, len(classrooms))
	for i, name := range classrooms {
		key := e.normalizer.Canonical(name)
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}

	g := Grid{
		Weekday:    weekday,
		Slots:      e.window.SlotLabels(),
		Classrooms: append([]string{}, classrooms...),
		Cells:      make([][]Cell, rows),
		Skipped:    []Skip{},
	}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, len(classrooms))
		for c := range g.Cells[r] {
			g.Cells[r][c] = Cell{Kind: KindEmpty}
		}
	}

	candidates := make([]candidate, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.DayOfWeek != weekday {
			continue
		}
		col, ok := columns[e.normalizer.Canonical(lesson.Classroom)]
		if !ok {
			g.Skipped = append(g.Skipped, Skip{LessonID: lesson.ID, Reason: SkipUnknownClassroom})
			continue
		}
		start := e.window.SlotIndex(lesson.StartTime)
		if start < 0 || start >= rows {
			g.Skipped = append(g.Skipped, Skip{LessonID: lesson.ID, Reason: SkipOutsideWindow})
			continue
		}
		// Matches the worked cases 09:00-10:00 = 2 rows and 09:00-10:30 = 3; a lesson ending mid-slot keeps that slot.
		span := e.window.LastSlotIndex(lesson.EndTime) - start + 1
		if span < 1 {
			span = 1
		}
		if start+span > rows {
			span = rows - start
		}
		candidates = append(candidates, candidate{lesson: lesson, col: col, start: start, span: span})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].lesson.ID < candidates[j].lesson.ID
	})

	for i := range candidates {
		cand := &candidates[i]
		if g.Cells[cand.start][cand.col].Kind != KindEmpty {
			g.Skipped = append(g.Skipped, Skip{LessonID: cand.lesson.ID, Reason: SkipConflict})
			continue
		}
		lesson := cand.lesson
		g.Cells[cand.start][cand.col] = Cell{Kind: KindEvent, Lesson: &lesson, Span: cand.span}
		for k := 1; k < cand.span; k++ {
			g.Cells[cand.start+k][cand.col] = Cell{Kind: KindOccupied}
		}
	}

	return g
}
