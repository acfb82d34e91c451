package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/govlead/academy-api/internal/models"
)

func newUserRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "subscription_status",
		"bio", "profile_image", "business_info", "learning_interests", "experience_level", "business_stage",
		"email_verified", "created_at"}).
		AddRow(int64(1), "Alex Rivera", "alex@example.com", "hashed", "user", "free",
			nil, nil, nil, nil, nil, nil, true, time.Now())
	mock.ExpectQuery("SELECT .+ FROM users WHERE email = \\?").
		WithArgs("alex@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, models.RoleUser, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alex", "alex@example.com", "hashed", "user", "free", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	user := &models.User{Name: "Alex", Email: "alex@example.com", PasswordHash: "hashed"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.Equal(t, int64(42), user.ID)
	require.True(t, user.EmailVerified)
	require.Equal(t, models.RoleUser, user.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateProfileCoalesces(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	name := "New Name"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(&name, nil, nil, nil, nil, nil, nil, nil, false, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), 5, models.ProfileUpdate{Name: &name}, false)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateProfileResetsVerification(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	email := "new@example.com"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(nil, &email, nil, nil, nil, nil, nil, nil, true, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), 5, models.ProfileUpdate{Email: &email}, true)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	for _, table := range []string{"enrollments", "notes", "bookmarks", "user_progress"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM "+table+" WHERE user_id = ?")).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 2))
	}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE user_id = ?")).
		WithArgs(int64(7)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 7)
	require.Error(t, err)
	require.Contains(t, err.Error(), "delete enrollments")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryStats(t *testing.T) {
	db, mock, cleanup := newUserRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"user_count", "course_count", "completion_count"}).AddRow(10, 4, 25)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, stats.UserCount)
	require.Equal(t, 4, stats.CourseCount)
	require.Equal(t, 25, stats.CompletionCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
