package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/grid"
	"github.com/noah-isme/lesson-calendar-api/internal/ics"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
	"github.com/noah-isme/lesson-calendar-api/pkg/export"
)

// Export formats.
const (
	FormatICS = "ics"
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type dayViewer interface {
	DayView(ctx context.Context, req DayViewRequest) (*DayView, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportFilter narrows the lessons written to a calendar export.
type ExportFilter struct {
	Course   *string
	Year     *int
	Location string
}

// ExportFile is a rendered download.
type ExportFile struct {
	ContentType string
	Filename    string
	Body        []byte
}

// CalendarExportService renders lessons as iCalendar feeds and day grids as
// CSV or PDF tables.
type CalendarExportService struct {
	lessons   lessonLister
	days      dayViewer
	catalog   *catalog.Catalog
	exporter  *ics.Exporter
	renderers map[string]tableRenderer
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewCalendarExportService wires the export pipeline.
func NewCalendarExportService(lessons lessonLister, days dayViewer, cat *catalog.Catalog, exporter *ics.Exporter, metrics *MetricsService, logger *zap.Logger) *CalendarExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarExportService{
		lessons:  lessons,
		days:     days,
		catalog:  cat,
		exporter: exporter,
		renderers: map[string]tableRenderer{
			FormatCSV: export.NewCSVExporter(),
			FormatPDF: export.NewPDFExporter(),
		},
		metrics: metrics,
		logger:  logger,
	}
}

// ICS exports the lessons matching filter as recurring events.
func (s *CalendarExportService) ICS(ctx context.Context, filter ExportFilter) (*ExportFile, error) {
	if filter.Location != "" {
		if _, ok := s.catalog.Location(filter.Location); !ok {
			return nil, appErrors.Validation("invalid export request", map[string]string{"location": "unknown location"})
		}
	}
	if filter.Year != nil && filter.Course == nil {
		return nil, appErrors.Validation("invalid export request", map[string]string{"year": "requires a course"})
	}

	lessons, err := s.lessons.List(ctx, models.LessonFilter{Course: filter.Course, Year: filter.Year})
	if err != nil {
		return nil, err
	}
	if filter.Location != "" {
		kept := lessons[:0:0]
		for _, l := range lessons {
			if site, ok := s.catalog.LocationOf(l.Classroom); ok && site == filter.Location {
				kept = append(kept, l)
			}
		}
		lessons = kept
	}

	body := s.exporter.Export(lessons)
	s.metrics.RecordExport(FormatICS)
	s.logger.Debug("calendar exported", zap.Int("lessons", len(lessons)))

	return &ExportFile{
		ContentType: "text/calendar; charset=utf-8",
		Filename:    icsFilename(filter),
		Body:        body,
	}, nil
}

// Day renders the day grid of req in format (csv or pdf).
func (s *CalendarExportService) Day(ctx context.Context, req DayViewRequest, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Validation("invalid export request", map[string]string{"format": "must be one of: csv pdf"})
	}

	view, err := s.days.DayView(ctx, req)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(s.dayTable(view))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render day grid")
	}
	s.metrics.RecordExport(format)

	contentType := "text/csv; charset=utf-8"
	if format == FormatPDF {
		contentType = "application/pdf"
	}
	return &ExportFile{
		ContentType: contentType,
		Filename:    fmt.Sprintf("orario-%s-%s.%s", view.Location, view.Date, format),
		Body:        body,
	}, nil
}

func (s *CalendarExportService) dayTable(view *DayView) export.Table {
	table := export.Table{
		Title:       fmt.Sprintf("%s - %s", view.LocationName, view.Date),
		CornerLabel: "Ora",
		Columns:     view.Classrooms,
		Rows:        make([]export.Row, len(view.Slots)),
	}
	for r, label := range view.Slots {
		row := export.Row{Label: label, Cells: make([]export.Cell, len(view.Classrooms))}
		for c := range view.Classrooms {
			var cell grid.Cell
			if r < len(view.Cells) && c < len(view.Cells[r]) {
				cell = view.Cells[r][c]
			}
			row.Cells[c] = s.tableCell(view, r, c, cell)
		}
		table.Rows[r] = row
	}
	return table
}

func (s *CalendarExportService) tableCell(view *DayView, row, col int, cell grid.Cell) export.Cell {
	switch cell.Kind {
	case grid.KindEvent:
		return export.Cell{Text: cellText(cell.Lesson), Color: s.catalog.Color(cell.Lesson.CourseCode())}
	case grid.KindOccupied:
		for r := row - 1; r >= 0; r-- {
			above := view.Cells[r][col]
			if above.Kind == grid.KindEvent {
				return export.Cell{Text: cellText(above.Lesson), Color: s.catalog.Color(above.Lesson.CourseCode()), Continued: true}
			}
		}
		return export.Cell{Continued: true}
	default:
		return export.Cell{}
	}
}

func cellText(l *models.Lesson) string {
	if l == nil {
		return ""
	}
	parts := []string{l.Title, l.Professor}
	if l.Course != nil {
		label := *l.Course
		if l.Year != nil {
			label = fmt.Sprintf("%s %d", label, *l.Year)
		}
		parts = append(parts, label)
	}
	if l.Group != nil {
		parts = append(parts, *l.Group)
	}
	return strings.Join(parts, " - ")
}

func icsFilename(filter ExportFilter) string {
	name := "lezioni"
	if filter.Course != nil {
		name += "-" + strings.ToLower(*filter.Course)
		if filter.Year != nil {
			name += fmt.Sprintf("-%d", *filter.Year)
		}
	}
	if filter.Location != "" {
		name += "-" + filter.Location
	}
	return name + ".ics"
}
