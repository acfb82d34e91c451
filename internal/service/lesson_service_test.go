package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockModuleRepo struct {
	modules map[int64]*models.Module
	created int
}

func (m *mockModuleRepo) GetOrCreateDefault(ctx context.Context, courseID int64) (*models.Module, error) {
	if m.modules == nil {
		m.modules = make(map[int64]*models.Module)
	}
	if mod, ok := m.modules[courseID]; ok {
		return mod, nil
	}
	m.created++
	mod := &models.Module{ID: int64(100 + m.created), CourseID: courseID, Title: models.DefaultModuleTitle}
	m.modules[courseID] = mod
	return mod, nil
}

type mockLessonRepo struct {
	lessons map[int64][]models.Lesson
}

func (m *mockLessonRepo) ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	return m.lessons[moduleID], nil
}

func (m *mockLessonRepo) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	return len(m.lessons[moduleID]), nil
}

func (m *mockLessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.lessons == nil {
		m.lessons = make(map[int64][]models.Lesson)
	}
	lesson.ID = int64(len(m.lessons[lesson.ModuleID]) + 1)
	m.lessons[lesson.ModuleID] = append(m.lessons[lesson.ModuleID], *lesson)
	return nil
}

type mockCourseReader struct {
	courses map[int64]*models.Course
}

func (m *mockCourseReader) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func TestLessonServiceCreateAssignsSequentialOrder(t *testing.T) {
	modules := &mockModuleRepo{}
	lessons := &mockLessonRepo{}
	courses := &mockCourseReader{courses: map[int64]*models.Course{1: {ID: 1}}}
	svc := NewLessonService(modules, lessons, courses, nil, nil)

	first, err := svc.Create(context.Background(), 1, LessonRequest{Title: "Intro", Duration: 10})
	require.NoError(t, err)
	require.Equal(t, 0, first.OrderIndex)

	second, err := svc.Create(context.Background(), 1, LessonRequest{Title: "Deep Dive", Duration: 25})
	require.NoError(t, err)
	require.Equal(t, 1, second.OrderIndex)
	require.Equal(t, first.ModuleID, second.ModuleID)
}

func TestLessonServiceCreateReusesDefaultModule(t *testing.T) {
	modules := &mockModuleRepo{}
	lessons := &mockLessonRepo{}
	courses := &mockCourseReader{courses: map[int64]*models.Course{1: {ID: 1}}}
	svc := NewLessonService(modules, lessons, courses, nil, nil)

	_, err := svc.Create(context.Background(), 1, LessonRequest{Title: "One"})
	require.NoError(t, err)
	_, err = svc.ListByCourse(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1, modules.created)
}

func TestLessonServiceCreateUnknownCourse(t *testing.T) {
	svc := NewLessonService(&mockModuleRepo{}, &mockLessonRepo{}, &mockCourseReader{}, nil, nil)

	_, err := svc.Create(context.Background(), 9, LessonRequest{Title: "One"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	require.Equal(t, "course not found", appErr.Message)
}

func TestLessonServiceCreateRequiresTitle(t *testing.T) {
	courses := &mockCourseReader{courses: map[int64]*models.Course{1: {ID: 1}}}
	svc := NewLessonService(&mockModuleRepo{}, &mockLessonRepo{}, courses, nil, nil)

	_, err := svc.Create(context.Background(), 1, LessonRequest{Duration: 5})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
