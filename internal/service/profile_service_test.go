package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockProfileRepo struct {
	user          *models.User
	profile       *models.Profile
	lastUpdate    *models.ProfileUpdate
	resetVerified *bool
	updateErr     error
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	if m.profile == nil || m.profile.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.profile, nil
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, resetVerified bool) error {
	m.lastUpdate = &upd
	m.resetVerified = &resetVerified
	return m.updateErr
}

func str(s string) *string { return &s }

func TestProfileServiceUpdateEmailChangeResetsVerification(t *testing.T) {
	repo := &mockProfileRepo{
		user:    &models.User{ID: 1, Email: "old@example.com", EmailVerified: true},
		profile: &models.Profile{ID: 1, Email: "new@example.com"},
	}
	svc := NewProfileService(repo, nil, nil)

	result, err := svc.Update(context.Background(), 1, models.ProfileUpdate{Email: str("new@example.com")})
	require.NoError(t, err)
	require.True(t, result.EmailChanged)
	require.NotNil(t, repo.resetVerified)
	require.True(t, *repo.resetVerified)
}

func TestProfileServiceUpdateSameEmailKeepsVerification(t *testing.T) {
	repo := &mockProfileRepo{
		user:    &models.User{ID: 1, Email: "alex@example.com", EmailVerified: true},
		profile: &models.Profile{ID: 1, Email: "alex@example.com"},
	}
	svc := NewProfileService(repo, nil, nil)

	result, err := svc.Update(context.Background(), 1, models.ProfileUpdate{Email: str("alex@example.com")})
	require.NoError(t, err)
	require.False(t, result.EmailChanged)
	require.False(t, *repo.resetVerified)
}

func TestProfileServiceUpdateWithoutEmailKeepsVerification(t *testing.T) {
	repo := &mockProfileRepo{
		user:    &models.User{ID: 1, Email: "alex@example.com", EmailVerified: true},
		profile: &models.Profile{ID: 1, Email: "alex@example.com"},
	}
	svc := NewProfileService(repo, nil, nil)

	result, err := svc.Update(context.Background(), 1, models.ProfileUpdate{Bio: str("New bio")})
	require.NoError(t, err)
	require.False(t, result.EmailChanged)
	require.False(t, *repo.resetVerified)
	require.Equal(t, "New bio", *repo.lastUpdate.Bio)
}

func TestProfileServiceUpdateRejectsBadEmail(t *testing.T) {
	repo := &mockProfileRepo{user: &models.User{ID: 1, Email: "alex@example.com"}}
	svc := NewProfileService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 1, models.ProfileUpdate{Email: str("not-an-email")})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Nil(t, repo.lastUpdate)
}

func TestProfileServiceUpdateDuplicateEmail(t *testing.T) {
	repo := &mockProfileRepo{
		user:      &models.User{ID: 1, Email: "old@example.com"},
		updateErr: errDuplicate{},
	}
	svc := NewProfileService(repo, nil, nil)

	_, err := svc.Update(context.Background(), 1, models.ProfileUpdate{Email: str("taken@example.com")})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Equal(t, "email already in use", appErr.Message)
}

func TestProfileServiceGetUnknownUser(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), 9)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

// errDuplicate mimics the driver's UNIQUE constraint failure message.
type errDuplicate struct{}

func (errDuplicate) Error() string { return "constraint failed: UNIQUE constraint failed: users.email" }
