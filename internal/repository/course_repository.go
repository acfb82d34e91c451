package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, title, description, category_id, difficulty, thumbnail_url, status,
	is_paid, price, learning_outcomes, created_at`

// ListPublished returns courses visible to the public catalog.
func (r *CourseRepository) ListPublished(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE status = ? ORDER BY created_at DESC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, models.CoursePublished); err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}
	return courses, nil
}

// ListAll returns every course regardless of status.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY created_at DESC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns a course by its identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = ? LIMIT 1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	if course.Status == "" {
		course.Status = models.CourseDraft
	}
	const query = `INSERT INTO courses (title, description, category_id, difficulty, thumbnail_url, status, is_paid, price, learning_outcomes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		course.Title, course.Description, course.CategoryID, course.Difficulty,
		course.ThumbnailURL, course.Status, course.IsPaid, course.Price,
		course.LearningOutcomes, course.CreatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create course id: %w", err)
	}
	course.ID = id
	return nil
}

// Update overwrites all mutable fields of a course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET title = ?, description = ?, category_id = ?, difficulty = ?,
		thumbnail_url = ?, status = ?, is_paid = ?, price = ?, learning_outcomes = ?
		WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query,
		course.Title, course.Description, course.CategoryID, course.Difficulty,
		course.ThumbnailURL, course.Status, course.IsPaid, course.Price,
		course.LearningOutcomes, course.ID); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// DeleteCascade removes a course together with its modules, lessons and
// the lesson-scoped progress and notes, inside one transaction.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const lessonScoped = `DELETE FROM %s WHERE lesson_id IN (
		SELECT l.id FROM lessons l JOIN modules m ON m.id = l.module_id WHERE m.course_id = ?)`
	for _, table := range []string{"user_progress", "notes"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(lessonScoped, table), id); err != nil {
			return fmt.Errorf("delete %s for course %d: %w", table, id, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM lessons WHERE module_id IN (SELECT id FROM modules WHERE course_id = ?)", id); err != nil {
		return fmt.Errorf("delete lessons for course %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM modules WHERE course_id = ?", id); err != nil {
		return fmt.Errorf("delete modules for course %d: %w", id, err)
	}
	for _, table := range []string{"enrollments", "bookmarks"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE course_id = ?", table), id); err != nil {
			return fmt.Errorf("delete %s for course %d: %w", table, id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course %d: %w", id, err)
	}
	return nil
}
