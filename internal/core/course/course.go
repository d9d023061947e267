// Package course holds the course catalog and its per-course summaries.
package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/Yamikowu/studdy/internal/core/kv"
	"github.com/Yamikowu/studdy/internal/core/todo"
	"github.com/Yamikowu/studdy/internal/core/validate"
	"github.com/Yamikowu/studdy/pkg/randid"
)

// ErrNotFound is returned when a course ID does not exist.
var ErrNotFound = errors.New("course not found")

const coursesKey = "courses"

// Course is a named course that items may be linked to.
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCourses returns the catalog written to an empty store.
func DefaultCourses() []Course {
	return []Course{
		{ID: "1", Name: "Operating Systems"},
		{ID: "2", Name: "Intro to Computer Science"},
		{ID: "3", Name: "Large Data Models"},
	}
}

// Store persists the catalog as a single list.
type Store struct {
	courses *kv.TypedKV[[]Course]
	seed    bool
}

// NewStore creates a Store. When seed is true an empty store reads back as
// DefaultCourses and the defaults are written on first access.
func NewStore(store kv.KV, seed bool) *Store {
	return &Store{courses: kv.Scoped[[]Course](store, todo.Namespace), seed: seed}
}

// List returns every course, newest first.
func (s *Store) List(ctx context.Context) ([]Course, error) {
	courses, found, err := s.courses.Lookup(ctx, coursesKey)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	if found {
		return courses, nil
	}
	if !s.seed {
		return []Course{}, nil
	}

	courses = DefaultCourses()
	if err := s.courses.Set(ctx, coursesKey, courses); err != nil {
		return nil, fmt.Errorf("seed courses: %w", err)
	}
	return courses, nil
}

// Get returns the course with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Course, error) {
	courses, err := s.List(ctx)
	if err != nil {
		return Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add trims name, rejects it when empty and prepends the new course.
func (s *Store) Add(ctx context.Context, name string) (Course, error) {
	name = strings.TrimSpace(name)
	if err := criterio.ValidateStruct(validate.RequiredField("name", name)); err != nil {
		return Course{}, err
	}

	courses, err := s.List(ctx)
	if err != nil {
		return Course{}, err
	}

	c := Course{ID: randid.Generate(8), Name: name}
	courses = append([]Course{c}, courses...)
	if err := s.courses.Set(ctx, coursesKey, courses); err != nil {
		return Course{}, fmt.Errorf("save courses: %w", err)
	}
	return c, nil
}

// Summary is a course with the items linked to it.
type Summary struct {
	Course   Course      `json:"course"`
	Quiz     int         `json:"quiz"`
	Homework int         `json:"hw"`
	Items    []todo.Item `json:"items"`
}

// Summaries pairs each course with its linked items and quiz/hw counts, in
// course order.
func Summaries(courses []Course, items []todo.Item) []Summary {
	byCourse := make(map[string][]todo.Item)
	for _, it := range items {
		if it.CourseID == "" {
			continue
		}
		byCourse[it.CourseID] = append(byCourse[it.CourseID], it)
	}

	out := make([]Summary, 0, len(courses))
	for _, c := range courses {
		s := Summary{Course: c, Items: byCourse[c.ID]}
		if s.Items == nil {
			s.Items = []todo.Item{}
		}
		for _, it := range s.Items {
			switch it.Category {
			case todo.Quiz:
				s.Quiz++
			case todo.Homework:
				s.Homework++
			}
		}
		out = append(out, s)
	}
	return out
}
