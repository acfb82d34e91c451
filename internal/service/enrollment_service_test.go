package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	createErr error
	created   *models.Enrollment
	courses   []models.Course
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	enrollment.ID = 1
	m.created = enrollment
	return nil
}

func (m *mockEnrollmentRepo) ListCoursesByUser(ctx context.Context, userID int64) ([]models.Course, error) {
	return m.courses, nil
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	courses := &mockCourseReader{courses: map[int64]*models.Course{3: {ID: 3}}}
	svc := NewEnrollmentService(repo, courses, nil, nil)

	enrollment, err := svc.Enroll(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), enrollment.UserID)
	require.Equal(t, int64(3), enrollment.CourseID)
}

func TestEnrollmentServiceEnrollTwice(t *testing.T) {
	repo := &mockEnrollmentRepo{createErr: errDuplicate{}}
	courses := &mockCourseReader{courses: map[int64]*models.Course{3: {ID: 3}}}
	svc := NewEnrollmentService(repo, courses, nil, nil)

	_, err := svc.Enroll(context.Background(), 1, 3)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Equal(t, "already enrolled", appErr.Message)
}

func TestEnrollmentServiceEnrollUnknownCourse(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockCourseReader{}, nil, nil)

	_, err := svc.Enroll(context.Background(), 1, 99)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	require.Equal(t, "course not found", appErr.Message)
}

func TestEnrollmentServiceMyCourses(t *testing.T) {
	repo := &mockEnrollmentRepo{courses: []models.Course{{ID: 3, Title: "AI for Leaders"}}}
	svc := NewEnrollmentService(repo, &mockCourseReader{}, nil, nil)

	courses, err := svc.MyCourses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 1)
}
