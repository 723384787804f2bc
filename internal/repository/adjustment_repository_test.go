package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/models"
)

func TestAdjustmentRepositoryForDate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM absences WHERE 1=1 AND date >= $1 AND date <= $2")).
		WithArgs("2025-10-13", "2025-10-13").
		WillReturnRows(sqlmock.NewRows([]string{"id", "professor", "date", "reason", "created_at", "updated_at"}).
			AddRow("a1", "Rossi", "2025-10-13", nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM makeup_lessons WHERE 1=1 AND date >= $1 AND date <= $2")).
		WithArgs("2025-10-13", "2025-10-13").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "title", "date", "start_time", "end_time", "classroom", "professor", "course", "year", "group_name", "notes", "created_at", "updated_at"}).
			AddRow("m1", nil, "Recupero", "2025-10-13", "15:00", "16:00", "Aula 1", "Neri", nil, nil, nil, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM classroom_changes WHERE 1=1 AND date >= $1 AND date <= $2")).
		WithArgs("2025-10-13", "2025-10-13").
		WillReturnRows(sqlmock.NewRows([]string{"id", "lesson_id", "date", "classroom", "reason", "created_at", "updated_at"}))

	adj, err := repo.ForDate(context.Background(), "2025-10-13")
	require.NoError(t, err)
	require.Len(t, adj.Absences, 1)
	assert.Equal(t, "Rossi", adj.Absences[0].Professor)
	require.Len(t, adj.Makeups, 1)
	assert.Equal(t, "2025-10-13", adj.Makeups[0].Date)
	assert.Empty(t, adj.ClassroomChanges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentRepositoryListOpenRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM absences WHERE 1=1 ORDER BY date ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "professor", "date", "reason", "created_at", "updated_at"}))

	list, err := repo.ListAbsences(context.Background(), models.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentRepositoryWrites(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO absences").WillReturnResult(sqlmock.NewResult(1, 1))
	absence := &models.Absence{Professor: "Rossi", Date: "2025-10-13"}
	require.NoError(t, repo.CreateAbsence(ctx, absence))
	assert.NotEmpty(t, absence.ID)

	mock.ExpectExec("UPDATE absences SET").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateAbsence(ctx, &models.Absence{ID: "gone"}), sql.ErrNoRows)

	mock.ExpectExec("INSERT INTO classroom_changes").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.CreateClassroomChange(ctx, &models.ClassroomChange{LessonID: "l1", Date: "2025-10-13", Classroom: "Aula 2"}))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM makeup_lessons WHERE id = $1")).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteMakeup(ctx, "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentRepositoryPurgeBefore(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM absences WHERE date < $1")).WithArgs("2025-04-01").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM makeup_lessons WHERE date < $1")).WithArgs("2025-04-01").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classroom_changes WHERE date < $1")).WithArgs("2025-04-01").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	res, err := repo.PurgeBefore(context.Background(), "2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, models.PurgeResult{Absences: 3, Makeups: 1}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentRepositoryPurgeRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM absences").WillReturnError(errors.New("locked"))
	mock.ExpectRollback()

	_, err := repo.PurgeBefore(context.Background(), "2025-04-01")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentRepositoryDuplicateClassroomChange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdjustmentRepository(db)

	mock.ExpectExec("INSERT INTO classroom_changes").WillReturnError(&pq.Error{Code: "23505"})
	err := repo.CreateClassroomChange(context.Background(), &models.ClassroomChange{LessonID: "l1", Date: "2025-10-13", Classroom: "Aula 2"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
