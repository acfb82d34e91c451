package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockAdminUserRepo struct {
	users     map[int64]*models.User
	deleted   []int64
	deleteErr error
	roles     map[int64]models.UserRole
	tiers     map[int64]models.SubscriptionStatus
}

func (m *mockAdminUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAdminUserRepo) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	var list []models.UserSummary
	for _, u := range m.users {
		list = append(list, models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return list, nil
}

func (m *mockAdminUserRepo) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	if m.roles == nil {
		m.roles = make(map[int64]models.UserRole)
	}
	m.roles[id] = role
	return nil
}

func (m *mockAdminUserRepo) UpdateSubscription(ctx context.Context, id int64, status models.SubscriptionStatus) error {
	if m.tiers == nil {
		m.tiers = make(map[int64]models.SubscriptionStatus)
	}
	m.tiers[id] = status
	return nil
}

func (m *mockAdminUserRepo) DeleteCascade(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockAdminUserRepo) Stats(ctx context.Context) (*models.AdminStats, error) {
	return &models.AdminStats{UserCount: len(m.users)}, nil
}

func TestUserServiceDeleteRejectsSelf(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1, Role: models.RoleAdmin}}}
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), 1, 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Equal(t, "cannot delete your own account", appErr.Message)
	require.Empty(t, repo.deleted)
}

func TestUserServiceDeleteUnknownUser(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), 1, 99)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.deleted)
}

func TestUserServiceDeleteCascades(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1}, 2: {ID: 2}}}
	svc := NewUserService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1, 2))
	require.Equal(t, []int64{2}, repo.deleted)
}

func TestUserServiceDeleteSurfacesCause(t *testing.T) {
	repo := &mockAdminUserRepo{
		users:     map[int64]*models.User{1: {ID: 1}, 2: {ID: 2}},
		deleteErr: errors.New("delete enrollments: database is locked"),
	}
	svc := NewUserService(repo, nil, nil)

	err := svc.Delete(context.Background(), 1, 2)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	require.Contains(t, appErr.Message, "database is locked")
}

func TestUserServiceUpdateRoleRejectsUnknownRole(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	svc := NewUserService(repo, nil, nil)

	err := svc.UpdateRole(context.Background(), 1, UpdateRoleRequest{Role: "superadmin"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.roles)
}

func TestUserServiceUpdateRole(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1, Role: models.RoleUser}}}
	svc := NewUserService(repo, nil, nil)

	require.NoError(t, svc.UpdateRole(context.Background(), 1, UpdateRoleRequest{Role: models.RoleAdmin}))
	require.Equal(t, models.RoleAdmin, repo.roles[1])
}

func TestUserServiceUpdateSubscriptionRejectsUnknownTier(t *testing.T) {
	repo := &mockAdminUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	svc := NewUserService(repo, nil, nil)

	err := svc.UpdateSubscription(context.Background(), 1, UpdateSubscriptionRequest{Status: "platinum"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.Empty(t, repo.tiers)
}
