package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockProgressWriter struct {
	last *models.UserProgress
}

func (m *mockProgressWriter) Upsert(ctx context.Context, progress *models.UserProgress) error {
	m.last = progress
	return nil
}

func TestProgressServiceReport(t *testing.T) {
	repo := &mockProgressWriter{}
	svc := NewProgressService(repo, nil, nil, nil)

	err := svc.Report(context.Background(), 1, 2, ProgressRequest{Completed: true, ProgressPercentage: 100})
	require.NoError(t, err)
	require.Equal(t, int64(1), repo.last.UserID)
	require.Equal(t, int64(2), repo.last.LessonID)
	require.True(t, repo.last.Completed)
}

func TestProgressServiceReportLastWriteWins(t *testing.T) {
	repo := &mockProgressWriter{}
	svc := NewProgressService(repo, nil, nil, nil)

	require.NoError(t, svc.Report(context.Background(), 1, 2, ProgressRequest{Completed: true, ProgressPercentage: 100}))
	require.NoError(t, svc.Report(context.Background(), 1, 2, ProgressRequest{Completed: false, ProgressPercentage: 10}))
	require.False(t, repo.last.Completed)
	require.Equal(t, 10, repo.last.ProgressPercentage)
}

func TestProgressServiceReportRejectsOutOfRange(t *testing.T) {
	repo := &mockProgressWriter{}
	svc := NewProgressService(repo, nil, nil, nil)

	err := svc.Report(context.Background(), 1, 2, ProgressRequest{ProgressPercentage: 150})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Nil(t, repo.last)
}
