package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// ProgressRepository handles persistence of per-lesson progress.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs the repository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert records a progress report. On conflict the existing row's
// completed flag, percentage and watch timestamp are overwritten
// unconditionally (last write wins).
func (r *ProgressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	if progress.LastWatchedTimestamp.IsZero() {
		progress.LastWatchedTimestamp = time.Now().UTC()
	}
	const query = `INSERT INTO user_progress (user_id, lesson_id, completed, progress_percentage, last_watched_timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, lesson_id) DO UPDATE SET
			completed = excluded.completed,
			progress_percentage = excluded.progress_percentage,
			last_watched_timestamp = excluded.last_watched_timestamp`
	if _, err := r.db.ExecContext(ctx, query,
		progress.UserID, progress.LessonID, progress.Completed,
		progress.ProgressPercentage, progress.LastWatchedTimestamp); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// SumCompletedMinutes totals lesson durations the user has completed.
func (r *ProgressRepository) SumCompletedMinutes(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COALESCE(SUM(l.duration), 0)
		FROM user_progress up
		JOIN lessons l ON up.lesson_id = l.id
		WHERE up.user_id = ? AND up.completed = 1`
	var minutes int
	if err := r.db.GetContext(ctx, &minutes, query, userID); err != nil {
		return 0, fmt.Errorf("sum completed minutes: %w", err)
	}
	return minutes, nil
}

// RecentCourse returns the course owning the user's most recently
// watched lesson, or nil when the user has no progress rows.
func (r *ProgressRepository) RecentCourse(ctx context.Context, userID int64) (*models.Course, error) {
	const query = `SELECT c.id, c.title, c.description, c.category_id, c.difficulty, c.thumbnail_url,
		c.status, c.is_paid, c.price, c.learning_outcomes, c.created_at
		FROM courses c
		JOIN modules m ON c.id = m.course_id
		JOIN lessons l ON m.id = l.module_id
		JOIN user_progress up ON l.id = up.lesson_id
		WHERE up.user_id = ?
		GROUP BY c.id
		ORDER BY MAX(up.last_watched_timestamp) DESC
		LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("recent course: %w", err)
	}
	return &course, nil
}
