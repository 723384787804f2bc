package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

const lessonColumns = `id, series_id, title, start_time, end_time, day_of_week, classroom, professor, course, year, group_name, notes, created_at, updated_at`

// LessonRepository provides persistence for weekly lesson templates.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository creates a new lesson repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// List returns lessons ordered by day, start time and id.
func (r *LessonRepository) List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	var conditions []string
	var args []interface{}

	if filter.Course != nil {
		args = append(args, *filter.Course)
		conditions = append(conditions, fmt.Sprintf("course = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.DayOfWeek != nil {
		args = append(args, *filter.DayOfWeek)
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)))
	}

	query := "SELECT " + lessonColumns + " FROM lessons WHERE 1=1"
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY day_of_week ASC, start_time ASC, id ASC"

	lessons := []models.Lesson{}
	if err := r.db.SelectContext(ctx, &lessons, query, args...); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// FindByID loads a lesson by id.
func (r *LessonRepository) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	var lesson models.Lesson
	if err := r.db.GetContext(ctx, &lesson, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lesson: %w", err)
	}
	return &lesson, nil
}

// FindSeries returns the lessons a "future" edit of lesson applies to, the
// lesson itself included. Lessons carrying a series id match on it; legacy
// rows without one fall back to the title/time/classroom/professor/day key.
func (r *LessonRepository) FindSeries(ctx context.Context, lesson models.Lesson) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	if lesson.SeriesID != nil && *lesson.SeriesID != "" {
		const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE series_id = $1 ORDER BY day_of_week ASC, start_time ASC, id ASC`
		if err := r.db.SelectContext(ctx, &lessons, query, *lesson.SeriesID); err != nil {
			return nil, fmt.Errorf("find lesson series: %w", err)
		}
		return lessons, nil
	}

	const query = `SELECT ` + lessonColumns + ` FROM lessons WHERE series_id IS NULL AND title = $1 AND start_time = $2 AND end_time = $3 AND classroom = $4 AND professor = $5 AND day_of_week = $6 ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &lessons, query, lesson.Title, lesson.StartTime, lesson.EndTime, lesson.Classroom, lesson.Professor, lesson.DayOfWeek); err != nil {
		return nil, fmt.Errorf("find similar lessons: %w", err)
	}
	return lessons, nil
}

// Create stores new lessons in one transaction, assigning ids and timestamps.
func (r *LessonRepository) Create(ctx context.Context, lessons []*models.Lesson) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create lessons: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `INSERT INTO lessons (` + lessonColumns + `) VALUES (:id, :series_id, :title, :start_time, :end_time, :day_of_week, :classroom, :professor, :course, :year, :group_name, :notes, :created_at, :updated_at)`
	for _, lesson := range lessons {
		if lesson.ID == "" {
			lesson.ID = uuid.NewString()
		}
		if lesson.CreatedAt.IsZero() {
			lesson.CreatedAt = now
		}
		lesson.UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, query, lesson); err != nil {
			return fmt.Errorf("create lesson: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create lessons: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of lessons in one transaction. A missing
// row aborts the whole batch with sql.ErrNoRows.
func (r *LessonRepository) Update(ctx context.Context, lessons []*models.Lesson) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update lessons: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `UPDATE lessons SET title = :title, start_time = :start_time, end_time = :end_time, day_of_week = :day_of_week, classroom = :classroom, professor = :professor, course = :course, year = :year, group_name = :group_name, notes = :notes, updated_at = :updated_at WHERE id = :id`
	for _, lesson := range lessons {
		lesson.UpdatedAt = now
		res, execErr := tx.NamedExecContext(ctx, query, lesson)
		if execErr != nil {
			err = fmt.Errorf("update lesson: %w", execErr)
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			err = sql.ErrNoRows
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update lessons: %w", err)
	}
	return nil
}

// Delete removes a lesson by id.
func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM lessons WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
