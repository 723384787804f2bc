package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

const (
	absenceColumns         = `id, professor, date::text AS date, reason, created_at, updated_at`
	makeupColumns          = `id, lesson_id, title, date::text AS date, start_time, end_time, classroom, professor, course, year, group_name, notes, created_at, updated_at`
	classroomChangeColumns = `id, lesson_id, date::text AS date, classroom, reason, created_at, updated_at`
)

// ErrDuplicate is returned when a write collides with a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// AdjustmentRepository persists dated exceptions to the weekly lessons:
// absences, makeup lessons and classroom changes.
type AdjustmentRepository struct {
	db *sqlx.DB
}

// NewAdjustmentRepository creates a new adjustment repository.
func NewAdjustmentRepository(db *sqlx.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

func dateRangeWhere(r models.DateRange) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	if r.From != "" {
		args = append(args, r.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if r.To != "" {
		args = append(args, r.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	where := " WHERE 1=1"
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func execOne(ctx context.Context, exec sqlx.ExtContext, query string, arg interface{}, what string) error {
	res, err := sqlx.NamedExecContext(ctx, exec, query, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AdjustmentRepository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAbsences returns absences within the range ordered by date.
func (r *AdjustmentRepository) ListAbsences(ctx context.Context, rng models.DateRange) ([]models.Absence, error) {
	where, args := dateRangeWhere(rng)
	out := []models.Absence{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+absenceColumns+" FROM absences"+where+" ORDER BY date ASC, professor ASC", args...); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return out, nil
}

// FindAbsence loads an absence by id.
func (r *AdjustmentRepository) FindAbsence(ctx context.Context, id string) (*models.Absence, error) {
	var a models.Absence
	if err := r.db.GetContext(ctx, &a, "SELECT "+absenceColumns+" FROM absences WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find absence: %w", err)
	}
	return &a, nil
}

// CreateAbsence stores a new absence.
func (r *AdjustmentRepository) CreateAbsence(ctx context.Context, a *models.Absence) error {
	stamp(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	const query = `INSERT INTO absences (id, professor, date, reason, created_at, updated_at) VALUES (:id, :professor, :date, :reason, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("create absence: %w", err)
	}
	return nil
}

// UpdateAbsence rewrites an absence.
func (r *AdjustmentRepository) UpdateAbsence(ctx context.Context, a *models.Absence) error {
	a.UpdatedAt = time.Now().UTC()
	const query = `UPDATE absences SET professor = :professor, date = :date, reason = :reason, updated_at = :updated_at WHERE id = :id`
	return execOne(ctx, r.db, query, a, "update absence")
}

// DeleteAbsence removes an absence.
func (r *AdjustmentRepository) DeleteAbsence(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "absences", id)
}

// ListMakeups returns makeup lessons within the range ordered by date and time.
func (r *AdjustmentRepository) ListMakeups(ctx context.Context, rng models.DateRange) ([]models.MakeupLesson, error) {
	where, args := dateRangeWhere(rng)
	out := []models.MakeupLesson{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+makeupColumns+" FROM makeup_lessons"+where+" ORDER BY date ASC, start_time ASC, id ASC", args...); err != nil {
		return nil, fmt.Errorf("list makeup lessons: %w", err)
	}
	return out, nil
}

// FindMakeup loads a makeup lesson by id.
func (r *AdjustmentRepository) FindMakeup(ctx context.Context, id string) (*models.MakeupLesson, error) {
	var m models.MakeupLesson
	if err := r.db.GetContext(ctx, &m, "SELECT "+makeupColumns+" FROM makeup_lessons WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find makeup lesson: %w", err)
	}
	return &m, nil
}

// CreateMakeup stores a new makeup lesson.
func (r *AdjustmentRepository) CreateMakeup(ctx context.Context, m *models.MakeupLesson) error {
	stamp(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	const query = `INSERT INTO makeup_lessons (id, lesson_id, title, date, start_time, end_time, classroom, professor, course, year, group_name, notes, created_at, updated_at) VALUES (:id, :lesson_id, :title, :date, :start_time, :end_time, :classroom, :professor, :course, :year, :group_name, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("create makeup lesson: %w", err)
	}
	return nil
}

// UpdateMakeup rewrites a makeup lesson.
func (r *AdjustmentRepository) UpdateMakeup(ctx context.Context, m *models.MakeupLesson) error {
	m.UpdatedAt = time.Now().UTC()
	const query = `UPDATE makeup_lessons SET lesson_id = :lesson_id, title = :title, date = :date, start_time = :start_time, end_time = :end_time, classroom = :classroom, professor = :professor, course = :course, year = :year, group_name = :group_name, notes = :notes, updated_at = :updated_at WHERE id = :id`
	return execOne(ctx, r.db, query, m, "update makeup lesson")
}

// DeleteMakeup removes a makeup lesson.
func (r *AdjustmentRepository) DeleteMakeup(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "makeup_lessons", id)
}

// ListClassroomChanges returns classroom changes within the range.
func (r *AdjustmentRepository) ListClassroomChanges(ctx context.Context, rng models.DateRange) ([]models.ClassroomChange, error) {
	where, args := dateRangeWhere(rng)
	out := []models.ClassroomChange{}
	if err := r.db.SelectContext(ctx, &out, "SELECT "+classroomChangeColumns+" FROM classroom_changes"+where+" ORDER BY date ASC, id ASC", args...); err != nil {
		return nil, fmt.Errorf("list classroom changes: %w", err)
	}
	return out, nil
}

// FindClassroomChange loads a classroom change by id.
func (r *AdjustmentRepository) FindClassroomChange(ctx context.Context, id string) (*models.ClassroomChange, error) {
	var cc models.ClassroomChange
	if err := r.db.GetContext(ctx, &cc, "SELECT "+classroomChangeColumns+" FROM classroom_changes WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find classroom change: %w", err)
	}
	return &cc, nil
}

// CreateClassroomChange stores a new classroom change.
func (r *AdjustmentRepository) CreateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error {
	stamp(&cc.ID, &cc.CreatedAt, &cc.UpdatedAt)
	const query = `INSERT INTO classroom_changes (id, lesson_id, date, classroom, reason, created_at, updated_at) VALUES (:id, :lesson_id, :date, :classroom, :reason, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cc); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create classroom change: %w", err)
	}
	return nil
}

// UpdateClassroomChange rewrites a classroom change.
func (r *AdjustmentRepository) UpdateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error {
	cc.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classroom_changes SET lesson_id = :lesson_id, date = :date, classroom = :classroom, reason = :reason, updated_at = :updated_at WHERE id = :id`
	return execOne(ctx, r.db, query, cc, "update classroom change")
}

// DeleteClassroomChange removes a classroom change.
func (r *AdjustmentRepository) DeleteClassroomChange(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "classroom_changes", id)
}

// ForDate loads every adjustment that applies to date.
func (r *AdjustmentRepository) ForDate(ctx context.Context, date string) (*models.Adjustments, error) {
	rng := models.DateRange{From: date, To: date}
	absences, err := r.ListAbsences(ctx, rng)
	if err != nil {
		return nil, err
	}
	makeups, err := r.ListMakeups(ctx, rng)
	if err != nil {
		return nil, err
	}
	changes, err := r.ListClassroomChanges(ctx, rng)
	if err != nil {
		return nil, err
	}
	return &models.Adjustments{Absences: absences, Makeups: makeups, ClassroomChanges: changes}, nil
}

// PurgeBefore deletes every adjustment dated strictly before cutoff in one
// transaction.
func (r *AdjustmentRepository) PurgeBefore(ctx context.Context, cutoff string) (result models.PurgeResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin purge adjustments: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	counts := []struct {
		table string
		dest  *int64
	}{
		{"absences", &result.Absences},
		{"makeup_lessons", &result.Makeups},
		{"classroom_changes", &result.ClassroomChanges},
	}
	for _, c := range counts {
		res, execErr := tx.ExecContext(ctx, "DELETE FROM "+c.table+" WHERE date < $1", cutoff)
		if execErr != nil {
			err = fmt.Errorf("purge %s: %w", c.table, execErr)
			return result, err
		}
		*c.dest, _ = res.RowsAffected()
	}

	if err = tx.Commit(); err != nil {
		return result, fmt.Errorf("commit purge adjustments: %w", err)
	}
	return result, nil
}
