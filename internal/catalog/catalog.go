// Package catalog holds the static course and location tables. The document is
// loaded once at startup and never mutated.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/lesson-calendar-api/internal/classroom"
)

//go:embed catalog.yaml
var defaultDocument []byte

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Location is a physical site and the raw classroom names it hosts.
type Location struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Classrooms []string `yaml:"classrooms" json:"classrooms"`
}

// Course is a program of study. Years is the program length, 2 or 3.
type Course struct {
	Code      string   `yaml:"code" json:"code"`
	Name      string   `yaml:"name" json:"name"`
	Years     int      `yaml:"years" json:"years"`
	Color     string   `yaml:"color" json:"color"`
	Locations []string `yaml:"locations" json:"locations"`
}

type document struct {
	Locations       []Location        `yaml:"locations"`
	Courses         []Course          `yaml:"courses"`
	ClassroomGroups []classroom.Group `yaml:"classroom_groups"`
}

// Catalog answers course, location and classroom lookups.
type Catalog struct {
	locations  []Location
	courses    []Course
	byLocation map[string]Location
	byCourse   map[string]Course
	roomSite   map[string]string
	normalizer *classroom.Normalizer
}

// Default parses the embedded catalog document.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads the catalog from path, falling back to the embedded document when
// path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	normalizer, err := classroom.NewNormalizer(doc.ClassroomGroups)
	if err != nil {
		return nil, fmt.Errorf("classroom groups: %w", err)
	}

	c := &Catalog{
		locations:  doc.Locations,
		courses:    doc.Courses,
		byLocation: make(map[string]Location, len(doc.Locations)),
		byCourse:   make(map[string]Course, len(doc.Courses)),
		roomSite:   make(map[string]string),
		normalizer: normalizer,
	}

	if len(doc.Locations) == 0 {
		return nil, fmt.Errorf("catalog declares no locations")
	}
	for _, loc := range doc.Locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("location with empty id")
		}
		if _, dup := c.byLocation[loc.ID]; dup {
			return nil, fmt.Errorf("location %q declared twice", loc.ID)
		}
		for _, raw := range loc.Classrooms {
			room := normalizer.Canonical(raw)
			if site, taken := c.roomSite[room]; taken && site != loc.ID {
				return nil, fmt.Errorf("classroom %q listed at both %q and %q", room, site, loc.ID)
			}
			c.roomSite[room] = loc.ID
		}
		c.byLocation[loc.ID] = loc
	}

	for _, course := range doc.Courses {
		if course.Code == "" {
			return nil, fmt.Errorf("course with empty code")
		}
		if _, dup := c.byCourse[course.Code]; dup {
			return nil, fmt.Errorf("course %q declared twice", course.Code)
		}
		if course.Years != 2 && course.Years != 3 {
			return nil, fmt.Errorf("course %q: program length must be 2 or 3 years, got %d", course.Code, course.Years)
		}
		if course.Color != "" && !colorPattern.MatchString(course.Color) {
			return nil, fmt.Errorf("course %q: invalid color %q", course.Code, course.Color)
		}
		for _, id := range course.Locations {
			if _, ok := c.byLocation[id]; !ok {
				return nil, fmt.Errorf("course %q: unknown location %q", course.Code, id)
			}
		}
		c.byCourse[course.Code] = course
	}

	return c, nil
}

// Locations returns the declared locations in document order.
func (c *Catalog) Locations() []Location {
	return append([]Location(nil), c.locations...)
}

// Courses returns the declared courses in document order.
func (c *Catalog) Courses() []Course {
	return append([]Course(nil), c.courses...)
}

// Location looks up a location by id.
func (c *Catalog) Location(id string) (Location, bool) {
	loc, ok := c.byLocation[id]
	return loc, ok
}

// Course looks up a course by code.
func (c *Catalog) Course(code string) (Course, bool) {
	course, ok := c.byCourse[code]
	return course, ok
}

// ValidYears lists the years of study for a course, nil when unknown.
func (c *Catalog) ValidYears(code string) []int {
	course, ok := c.byCourse[code]
	if !ok {
		return nil
	}
	years := make([]int, course.Years)
	for i := range years {
		years[i] = i + 1
	}
	return years
}

// IsValidYear reports whether year lies within the course program.
func (c *Catalog) IsValidYear(code string, year int) bool {
	course, ok := c.byCourse[code]
	return ok && year >= 1 && year <= course.Years
}

// CoursesAt returns courses offered at a location.
func (c *Catalog) CoursesAt(locationID string) []Course {
	var out []Course
	for _, course := range c.courses {
		for _, id := range course.Locations {
			if id == locationID {
				out = append(out, course)
				break
			}
		}
	}
	return out
}

// VisibleClassrooms lists the canonical, deduplicated classroom columns of a
// location. Unknown locations have none.
func (c *Catalog) VisibleClassrooms(locationID string) []string {
	loc, ok := c.byLocation[locationID]
	if !ok {
		return nil
	}
	return c.normalizer.BaseList(loc.Classrooms)
}

// LocationOf resolves the site hosting a raw classroom name.
func (c *Catalog) LocationOf(raw string) (string, bool) {
	id, ok := c.roomSite[c.normalizer.Canonical(raw)]
	return id, ok
}

// Color returns the display color of a course, empty when unknown.
func (c *Catalog) Color(code string) string {
	return c.byCourse[code].Color
}

// Normalizer returns the classroom normalizer built from the catalog groups.
func (c *Catalog) Normalizer() *classroom.Normalizer {
	return c.normalizer
}
