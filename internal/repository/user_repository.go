package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// UserRepository provides database access for accounts, profiles and
// audit logs.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, subscription_status, bio, profile_image,
	business_info, learning_interests, experience_level, business_stage, email_verified, created_at`

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = ? LIMIT 1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ? LIMIT 1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. A unique-constraint failure on email is
// returned unwrapped so callers can classify it.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.SubscriptionStatus == "" {
		user.SubscriptionStatus = models.SubscriptionFree
	}
	const query = `INSERT INTO users (name, email, password_hash, role, subscription_status, email_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.SubscriptionStatus, true, user.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user id: %w", err)
	}
	user.ID = id
	user.EmailVerified = true
	return nil
}

// ListSummaries returns the admin listing projection of every user.
func (r *UserRepository) ListSummaries(ctx context.Context) ([]models.UserSummary, error) {
	const query = `SELECT id, name, email, role, subscription_status, created_at FROM users ORDER BY created_at DESC`
	var users []models.UserSummary
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole sets a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.UserRole) error {
	const query = `UPDATE users SET role = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, role, id); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// UpdateSubscription sets a user's subscription tier.
func (r *UserRepository) UpdateSubscription(ctx context.Context, id int64, status models.SubscriptionStatus) error {
	const query = `UPDATE users SET subscription_status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// GetProfile returns the self-service projection of a user.
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	const query = `SELECT id, name, email, bio, profile_image, business_info, learning_interests,
		experience_level, business_stage, email_verified, role, subscription_status
		FROM users WHERE id = ? LIMIT 1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update. Nil fields coalesce to the
// stored value and never overwrite with null. When resetVerified is set
// the email_verified flag flips to false in the same statement. A
// unique-constraint failure on email is returned unwrapped.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, resetVerified bool) error {
	const query = `UPDATE users SET
		name = COALESCE(?, name),
		email = COALESCE(?, email),
		bio = COALESCE(?, bio),
		profile_image = COALESCE(?, profile_image),
		business_info = COALESCE(?, business_info),
		learning_interests = COALESCE(?, learning_interests),
		experience_level = COALESCE(?, experience_level),
		business_stage = COALESCE(?, business_stage),
		email_verified = CASE WHEN ? THEN 0 ELSE email_verified END
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		upd.Name, upd.Email, upd.Bio, upd.ProfileImage, upd.BusinessInfo,
		upd.LearningInterests, upd.ExperienceLevel, upd.BusinessStage,
		resetVerified, id)
	return err
}

// DeleteCascade removes a user together with every row keyed on their
// id, inside one transaction. Either everything is deleted or nothing.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"enrollments", "notes", "bookmarks", "user_progress"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = ?", table), id); err != nil {
			return fmt.Errorf("delete %s for user %d: %w", table, id, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user %d: %w", id, err)
	}
	return nil
}

// Stats returns platform-wide counters for the admin overview.
func (r *UserRepository) Stats(ctx context.Context) (*models.AdminStats, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM users) AS user_count,
		(SELECT COUNT(*) FROM courses) AS course_count,
		(SELECT COUNT(*) FROM user_progress WHERE completed = 1) AS completion_count`
	var stats models.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return &stats, nil
}

// CreateAuditLog stores an audit log entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at)
		VALUES (:id, :user_id, :action, :resource, :resource_id, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
