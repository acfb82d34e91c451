package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create persists a new enrollment. The unique-constraint failure on
// (user_id, course_id) is returned unwrapped so callers can surface it
// as the already-enrolled condition.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollments (user_id, course_id, enrolled_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, enrollment.UserID, enrollment.CourseID, enrollment.EnrolledAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create enrollment id: %w", err)
	}
	enrollment.ID = id
	return nil
}

// CountByUser returns the user's enrollment count.
func (r *EnrollmentRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM enrollments WHERE user_id = ?", userID); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

// ListCoursesByUser returns the courses the user is enrolled in.
func (r *EnrollmentRepository) ListCoursesByUser(ctx context.Context, userID int64) ([]models.Course, error) {
	const query = `SELECT c.id, c.title, c.description, c.category_id, c.difficulty, c.thumbnail_url,
		c.status, c.is_paid, c.price, c.learning_outcomes, c.created_at
		FROM courses c
		JOIN enrollments e ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	return courses, nil
}
