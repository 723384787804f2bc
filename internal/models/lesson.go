package models

import "time"

// Update scopes accepted by lesson updates.
const (
	UpdateScopeSingle = "single"
	UpdateScopeFuture = "future"
)

// Lesson is a weekly recurrence template: it stands for every occurrence of
// DayOfWeek (0 = Sunday) between StartTime and EndTime.
type Lesson struct {
	ID        string    `db:"id" json:"id"`
	SeriesID  *string   `db:"series_id" json:"seriesId,omitempty"`
	Title     string    `db:"title" json:"title"`
	StartTime string    `db:"start_time" json:"startTime"`
	EndTime   string    `db:"end_time" json:"endTime"`
	DayOfWeek int       `db:"day_of_week" json:"dayOfWeek"`
	Classroom string    `db:"classroom" json:"classroom"`
	Professor string    `db:"professor" json:"professor"`
	Course    *string   `db:"course" json:"course,omitempty"`
	Year      *int      `db:"year" json:"year,omitempty"`
	Group     *string   `db:"group_name" json:"group,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseCode returns the course or an empty string.
func (l Lesson) CourseCode() string {
	if l.Course == nil {
		return ""
	}
	return *l.Course
}

// LessonFilter narrows lesson listings. Nil fields are not applied.
type LessonFilter struct {
	Course    *string
	Year      *int
	DayOfWeek *int
}

// CreateLessonRequest is the payload for creating lessons. When DaysOfWeek is
// set one lesson per weekday is created, all sharing one series.
type CreateLessonRequest struct {
	Title      string  `json:"title" validate:"required,max=255"`
	StartTime  string  `json:"startTime" validate:"required,hhmm"`
	EndTime    string  `json:"endTime" validate:"required,hhmm"`
	DayOfWeek  *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	DaysOfWeek []int   `json:"daysOfWeek" validate:"omitempty,max=7,unique,dive,min=0,max=6"`
	Classroom  string  `json:"classroom" validate:"required,max=120"`
	Professor  string  `json:"professor" validate:"required,max=255"`
	Course     *string `json:"course" validate:"omitempty,max=32"`
	Year       *int    `json:"year" validate:"omitempty,min=1"`
	Group      *string `json:"group" validate:"omitempty,max=64"`
	Notes      *string `json:"notes"`
}

// UpdateLessonRequest is a partial update. Nil fields are left untouched; an
// empty string clears an optional text field and year 0 clears the year.
type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	StartTime   *string `json:"startTime" validate:"omitempty,hhmm"`
	EndTime     *string `json:"endTime" validate:"omitempty,hhmm"`
	DayOfWeek   *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	Classroom   *string `json:"classroom" validate:"omitempty,min=1,max=120"`
	Professor   *string `json:"professor" validate:"omitempty,min=1,max=255"`
	Course      *string `json:"course" validate:"omitempty,max=32"`
	Year        *int    `json:"year" validate:"omitempty,min=0"`
	Group       *string `json:"group" validate:"omitempty,max=64"`
	Notes       *string `json:"notes"`
	UpdateScope string  `json:"updateScope" validate:"omitempty,oneof=single future"`
}

// BulkLessonResult is returned when a write touches several lessons.
type BulkLessonResult struct {
	Updated int      `json:"updated,omitempty"`
	Created int      `json:"created,omitempty"`
	Lessons []Lesson `json:"lessons"`
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Success bool `json:"success"`
}
