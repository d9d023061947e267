package studdy

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Yamikowu/studdy/internal/core/course"
)

// CourseService exposes the course catalog together with the items linked
// to each course.
type CourseService struct {
	store *course.Store
	todos *TodoService
	log   zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(store *course.Store, todos *TodoService, log zerolog.Logger) *CourseService {
	return &CourseService{
		store: store,
		todos: todos,
		log:   log.With().Str("component", "course-service").Logger(),
	}
}

// List returns every course, newest first.
func (s *CourseService) List(ctx context.Context) ([]course.Course, error) {
	return s.store.List(ctx)
}

// Add creates a course.
func (s *CourseService) Add(ctx context.Context, name string) (course.Course, error) {
	c, err := s.store.Add(ctx, name)
	if err != nil {
		return course.Course{}, err
	}
	s.log.Debug().Ctx(ctx).Str("id", c.ID).Str("name", c.Name).Msg("course added")
	return c, nil
}

// Summaries returns every course with its linked items.
func (s *CourseService) Summaries(ctx context.Context) ([]course.Summary, error) {
	courses, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.todos.List(ctx)
	if err != nil {
		return nil, err
	}
	return course.Summaries(courses, items), nil
}

// Show returns one course with its linked items.
func (s *CourseService) Show(ctx context.Context, id string) (course.Summary, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return course.Summary{}, err
	}
	items, err := s.todos.List(ctx)
	if err != nil {
		return course.Summary{}, err
	}
	return course.Summaries([]course.Course{c}, items)[0], nil
}
