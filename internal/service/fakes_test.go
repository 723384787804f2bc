package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lesson-calendar-api/internal/catalog"
	"github.com/noah-isme/lesson-calendar-api/internal/models"
	appErrors "github.com/noah-isme/lesson-calendar-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

type fakeLessonRepo struct {
	lessons   map[string]models.Lesson
	nextID    int
	listCalls int
	listErr   error
	updateErr error
	updated   [][]models.Lesson
}

func newFakeLessonRepo(lessons ...models.Lesson) *fakeLessonRepo {
	repo := &fakeLessonRepo{lessons: map[string]models.Lesson{}}
	for _, l := range lessons {
		repo.lessons[l.ID] = l
	}
	return repo
}

func (f *fakeLessonRepo) List(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Lesson{}
	for _, l := range f.sorted() {
		if filter.Course != nil && (l.Course == nil || *l.Course != *filter.Course) {
			continue
		}
		if filter.Year != nil && (l.Year == nil || *l.Year != *filter.Year) {
			continue
		}
		if filter.DayOfWeek != nil && l.DayOfWeek != *filter.DayOfWeek {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLessonRepo) FindByID(ctx context.Context, id string) (*models.Lesson, error) {
	l, ok := f.lessons[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &l, nil
}

func (f *fakeLessonRepo) FindSeries(ctx context.Context, lesson models.Lesson) ([]models.Lesson, error) {
	out := []models.Lesson{}
	for _, l := range f.sorted() {
		if lesson.SeriesID != nil {
			if l.SeriesID != nil && *l.SeriesID == *lesson.SeriesID {
				out = append(out, l)
			}
			continue
		}
		if l.SeriesID == nil && l.Title == lesson.Title && l.StartTime == lesson.StartTime && l.EndTime == lesson.EndTime &&
			l.Classroom == lesson.Classroom && l.Professor == lesson.Professor && l.DayOfWeek == lesson.DayOfWeek {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) Create(ctx context.Context, lessons []*models.Lesson) error {
	for _, l := range lessons {
		f.nextID++
		l.ID = "generated-" + strconv.Itoa(f.nextID)
		f.lessons[l.ID] = *l
	}
	return nil
}

func (f *fakeLessonRepo) Update(ctx context.Context, lessons []*models.Lesson) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	batch := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if _, ok := f.lessons[l.ID]; !ok {
			return sql.ErrNoRows
		}
		batch = append(batch, *l)
	}
	for _, l := range batch {
		f.lessons[l.ID] = l
	}
	f.updated = append(f.updated, batch)
	return nil
}

func (f *fakeLessonRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.lessons[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeLessonRepo) sorted() []models.Lesson {
	out := make([]models.Lesson, 0, len(f.lessons))
	for _, l := range f.lessons {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type fakeCacheRepo struct {
	data        map[string][]byte
	getErr      error
	invalidated []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			delete(f.data, key)
		}
	}
	return nil
}

type fakeAdjustmentRepo struct {
	absences  map[string]models.Absence
	makeups   map[string]models.MakeupLesson
	changes   map[string]models.ClassroomChange
	forDate   *models.Adjustments
	err       error
	createErr error
	purged    []string
}

func newFakeAdjustmentRepo() *fakeAdjustmentRepo {
	return &fakeAdjustmentRepo{
		absences: map[string]models.Absence{},
		makeups:  map[string]models.MakeupLesson{},
		changes:  map[string]models.ClassroomChange{},
	}
}

func (f *fakeAdjustmentRepo) ListAbsences(ctx context.Context, rng models.DateRange) ([]models.Absence, error) {
	out := []models.Absence{}
	for _, a := range f.absences {
		out = append(out, a)
	}
	return out, f.err
}

func (f *fakeAdjustmentRepo) FindAbsence(ctx context.Context, id string) (*models.Absence, error) {
	a, ok := f.absences[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &a, nil
}

func (f *fakeAdjustmentRepo) CreateAbsence(ctx context.Context, a *models.Absence) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = "absence-" + strconv.Itoa(len(f.absences)+1)
	f.absences[a.ID] = *a
	return nil
}

func (f *fakeAdjustmentRepo) UpdateAbsence(ctx context.Context, a *models.Absence) error {
	f.absences[a.ID] = *a
	return nil
}

func (f *fakeAdjustmentRepo) DeleteAbsence(ctx context.Context, id string) error {
	if _, ok := f.absences[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.absences, id)
	return nil
}

func (f *fakeAdjustmentRepo) ListMakeups(ctx context.Context, rng models.DateRange) ([]models.MakeupLesson, error) {
	out := []models.MakeupLesson{}
	for _, m := range f.makeups {
		out = append(out, m)
	}
	return out, f.err
}

func (f *fakeAdjustmentRepo) FindMakeup(ctx context.Context, id string) (*models.MakeupLesson, error) {
	m, ok := f.makeups[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &m, nil
}

func (f *fakeAdjustmentRepo) CreateMakeup(ctx context.Context, m *models.MakeupLesson) error {
	m.ID = "makeup-" + strconv.Itoa(len(f.makeups)+1)
	f.makeups[m.ID] = *m
	return nil
}

func (f *fakeAdjustmentRepo) UpdateMakeup(ctx context.Context, m *models.MakeupLesson) error {
	f.makeups[m.ID] = *m
	return nil
}

func (f *fakeAdjustmentRepo) DeleteMakeup(ctx context.Context, id string) error {
	if _, ok := f.makeups[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.makeups, id)
	return nil
}

func (f *fakeAdjustmentRepo) ListClassroomChanges(ctx context.Context, rng models.DateRange) ([]models.ClassroomChange, error) {
	out := []models.ClassroomChange{}
	for _, c := range f.changes {
		out = append(out, c)
	}
	return out, f.err
}

func (f *fakeAdjustmentRepo) FindClassroomChange(ctx context.Context, id string) (*models.ClassroomChange, error) {
	c, ok := f.changes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (f *fakeAdjustmentRepo) CreateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error {
	if f.createErr != nil {
		return f.createErr
	}
	cc.ID = "change-" + strconv.Itoa(len(f.changes)+1)
	f.changes[cc.ID] = *cc
	return nil
}

func (f *fakeAdjustmentRepo) UpdateClassroomChange(ctx context.Context, cc *models.ClassroomChange) error {
	f.changes[cc.ID] = *cc
	return nil
}

func (f *fakeAdjustmentRepo) DeleteClassroomChange(ctx context.Context, id string) error {
	if _, ok := f.changes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.changes, id)
	return nil
}

func (f *fakeAdjustmentRepo) ForDate(ctx context.Context, date string) (*models.Adjustments, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.forDate == nil {
		return &models.Adjustments{}, nil
	}
	return f.forDate, nil
}

func (f *fakeAdjustmentRepo) PurgeBefore(ctx context.Context, cutoff string) (models.PurgeResult, error) {
	if f.err != nil {
		return models.PurgeResult{}, f.err
	}
	f.purged = append(f.purged, cutoff)
	return models.PurgeResult{Absences: 2, Makeups: 1}, nil
}
