package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/govlead/academy-api/internal/models"
	appErrors "github.com/govlead/academy-api/pkg/errors"
)

type mockAuthUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
	created   *models.User
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	user.Role = models.RoleUser
	user.SubscriptionStatus = models.SubscriptionFree
	m.created = user
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "academy-test"}
}

func TestAuthServiceSignupIssuesValidToken(t *testing.T) {
	repo := &mockAuthUserRepo{}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Signup(context.Background(), models.SignupRequest{
		Name: "Alex", Email: "alex@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.Equal(t, int64(3600), res.ExpiresIn)
	require.Equal(t, models.RoleUser, res.User.Role)

	// The stored credential is a bcrypt hash, never the plaintext.
	require.NotEqual(t, "secret1", repo.created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("secret1")))

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	repo := &mockAuthUserRepo{createErr: errDuplicate{}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name: "Alex", Email: "alex@example.com", Password: "secret1",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.Equal(t, "email already exists", appErr.Message)
}

func TestAuthServiceSignupRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, nil, nil, testAuthConfig())

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name: "Alex", Email: "alex@example.com", Password: "abc",
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockAuthUserRepo{byEmail: map[string]*models.User{
		"alex@example.com": {ID: 1, Email: "alex@example.com", PasswordHash: string(hash), Role: models.RoleUser},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alex@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &mockAuthUserRepo{byEmail: map[string]*models.User{
		"alex@example.com": {ID: 1, Email: "alex@example.com", PasswordHash: string(hash)},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "alex@example.com", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := &mockAuthUserRepo{}
	issuer := NewAuthService(repo, nil, nil, testAuthConfig())
	res, err := issuer.Signup(context.Background(), models.SignupRequest{
		Name: "Alex", Email: "alex@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	verifier := NewAuthService(repo, nil, nil, AuthConfig{AccessTokenSecret: "other-secret", AccessTokenExpiry: time.Hour})
	_, err = verifier.ValidateToken(res.AccessToken)
	require.Error(t, err)
	require.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
