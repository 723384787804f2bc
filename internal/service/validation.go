package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	"github.com/noah-isme/lesson-calendar-api/internal/timegrid"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

// NewValidator returns a validator reporting JSON field names and knowing the
// hhmm tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	registerCalendarValidations(v)
	return v
}

func registerCalendarValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timegrid.IsClock(fl.Field().String())
	})
}

// validationError turns a validator failure into a 400 with per-field details.
func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = describeTag(fe)
	}
	appErr := appErrors.Validation(message, details)
	appErr.Err = err
	return appErr
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hhmm":
		return "must be a time formatted as HH:MM"
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "uuid":
		return "must be a valid id"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "unique":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}

// scheduleRules collects domain checks shared by lessons and makeups.
type scheduleRules struct {
	catalog *catalog.Catalog
	details map[string]string
}

func newScheduleRules(cat *catalog.Catalog) *scheduleRules {
	return &scheduleRules{catalog: cat, details: map[string]string{}}
}

func (r *scheduleRules) times(start, end string) {
	s, errStart := timegrid.ParseClock(start)
	if errStart != nil {
		r.details["startTime"] = "must be a time formatted as HH:MM"
	}
	e, errEnd := timegrid.ParseClock(end)
	if errEnd != nil {
		r.details["endTime"] = "must be a time formatted as HH:MM"
	}
	if errStart == nil && errEnd == nil && s >= e {
		r.details["endTime"] = "must be after startTime"
	}
}

func (r *scheduleRules) dayOfWeek(day int) {
	if day < 0 || day > 6 {
		r.details["dayOfWeek"] = "must be between 0 (Sunday) and 6 (Saturday)"
	}
}

func (r *scheduleRules) courseYear(course *string, year *int) {
	if course != nil && *course != "" && r.catalog != nil {
		if _, ok := r.catalog.Course(*course); !ok {
			r.details["course"] = fmt.Sprintf("unknown course %q", *course)
			return
		}
	}
	if year == nil {
		return
	}
	if course == nil || *course == "" {
		r.details["year"] = "requires a course"
		return
	}
	if r.catalog != nil && !r.catalog.IsValidYear(*course, *year) {
		r.details["year"] = fmt.Sprintf("must be between 1 and %d for course %s", len(r.catalog.ValidYears(*course)), *course)
	}
}

func (r *scheduleRules) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		r.details[field] = "is required"
	}
}

func (r *scheduleRules) err(message string) error {
	if len(r.details) == 0 {
		return nil
	}
	return appErrors.Validation(message, r.details)
}

func checkLesson(cat *catalog.Catalog, l models.Lesson) error {
	rules := newScheduleRules(cat)
	rules.required("title", l.Title)
	rules.required("classroom", l.Classroom)
	rules.required("professor", l.Professor)
	rules.times(l.StartTime, l.EndTime)
	rules.dayOfWeek(l.DayOfWeek)
	rules.courseYear(l.Course, l.Year)
	return rules.err("invalid lesson")
}

// ParseDate parses a YYYY-MM-DD date in loc, UTC when loc is nil.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(models.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, appErrors.Validation("invalid date", map[string]string{"date": "must be a date formatted as YYYY-MM-DD"})
	}
	return d, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
