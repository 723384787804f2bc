package models

import "time"

// DateLayout is the wire and storage format of adjustment dates.
const DateLayout = "2006-01-02"

// MakeupIDPrefix marks one-off lessons derived from makeups in a day grid.
const MakeupIDPrefix = "makeup:"

// Absence cancels every lesson of a professor on one date.
type Absence struct {
	ID        string    `db:"id" json:"id"`
	Professor string    `db:"professor" json:"professor"`
	Date      string    `db:"date" json:"date"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// MakeupLesson is a dated one-off lesson, optionally recovering LessonID.
type MakeupLesson struct {
	ID        string    `db:"id" json:"id"`
	LessonID  *string   `db:"lesson_id" json:"lessonId,omitempty"`
	Title     string    `db:"title" json:"title"`
	Date      string    `db:"date" json:"date"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	Classroom string    `db:"classroom" json:"classroom"`
	Professor string    `db:"professor" json:"professor"`
	Course    *string   `db:"course" json:"course,omitempty"`
	Year      *int      `db:"year" json:"year,omitempty"`
	Group     *string   `db:"group_name" json:"group,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AsLesson projects the makeup onto a lesson template for its date.
func (m MakeupLesson) AsLesson(dayOfWeek int) Lesson {
	return Lesson{
		ID:        MakeupIDPrefix + m.ID,
		Title:     m.Title,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		DayOfWeek: dayOfWeek,
		Classroom: m.Classroom,
		Professor: m.Professor,
		Course:    m.Course,
		Year:      m.Year,
		Group:     m.Group,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ClassroomChange moves one lesson to another classroom on one date.
type ClassroomChange struct {
	ID        string    `db:"id" json:"id"`
	LessonID  string    `db:"lesson_id" json:"lessonId"`
	Date      string    `db:"date" json:"date"`
	Classroom string    `db:"classroom" json:"classroom"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DateRange bounds adjustment listings, both ends inclusive. Empty means open.
type DateRange struct {
	From string
	To   string
}

// AbsenceRequest creates or replaces an absence.
type AbsenceRequest struct {
	Professor string  `json:"professor" validate:"required,max=255"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Reason    *string `json:"reason"`
}

// MakeupLessonRequest creates or replaces a makeup lesson.
type MakeupLessonRequest struct {
	LessonID  *string `json:"lessonId" validate:"omitempty,uuid"`
	Title     string  `json:"title" validate:"required,max=255"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string  `json:"startTime" validate:"required,hhmm"`
	EndTime   string  `json:"endTime" validate:"required,hhmm"`
	Classroom string  `json:"classroom" validate:"required,max=120"`
	Professor string  `json:"professor" validate:"required,max=255"`
	Course    *string `json:"course" validate:"omitempty,max=32"`
	Year      *int    `json:"year" validate:"omitempty,min=1"`
	Group     *string `json:"group" validate:"omitempty,max=64"`
	Notes     *string `json:"notes"`
}

// ClassroomChangeRequest creates or replaces a classroom change.
type ClassroomChangeRequest struct {
	LessonID  string  `json:"lessonId" validate:"required,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Classroom string  `json:"classroom" validate:"required,max=120"`
	Reason    *string `json:"reason"`
}

// Adjustments groups every exception that applies to one date.
type Adjustments struct {
	Absences         []Absence
	Makeups          []MakeupLesson
	ClassroomChanges []ClassroomChange
}

// PurgeResult reports rows removed by housekeeping.
type PurgeResult struct {
	Absences         int64 `json:"absences"`
	Makeups          int64 `json:"makeups"`
	ClassroomChanges int64 `json:"classroomChanges"`
}
