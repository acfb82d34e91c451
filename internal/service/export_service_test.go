package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockExportUsers struct{}

func (mockExportUsers) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	return []models.UserSummary{
		{ID: 1, Name: "Alex Rivera", Email: "alex@example.com", Role: models.RoleUser,
			SubscriptionStatus: models.SubscriptionFree, CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
	}, nil
}

type mockExportCourses struct{}

func (mockExportCourses) ListAll(ctx context.Context) ([]models.Course, error) {
	return []models.Course{
		{ID: 2, Title: "Scaling Up", Status: models.CoursePublished, Difficulty: "Intermediate", IsPaid: true, Price: 49},
	}, nil
}

func TestExportServiceUsersCSV(t *testing.T) {
	svc := NewExportService(mockExportUsers{}, mockExportCourses{}, nil)

	result, err := svc.Users(context.Background(), FormatCSV)
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	require.Contains(t, body, "alex@example.com")
	require.Contains(t, body, "2026-01-15T00:00:00Z")
}

func TestExportServiceCoursesPDF(t *testing.T) {
	svc := NewExportService(mockExportUsers{}, mockExportCourses{}, nil)

	result, err := svc.Courses(context.Background(), FormatPDF)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	svc := NewExportService(mockExportUsers{}, mockExportCourses{}, nil)

	_, err := svc.Users(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
