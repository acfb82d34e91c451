package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BookmarkRepository handles persistence of course bookmarks.
type BookmarkRepository struct {
	db *sqlx.DB
}

// NewBookmarkRepository constructs the repository.
func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// ListCourseIDs returns the ids of courses the user bookmarked.
func (r *BookmarkRepository) ListCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `SELECT course_id FROM bookmarks WHERE user_id = ? ORDER BY created_at DESC`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}

// Add stores a bookmark. Adding an existing bookmark is a no-op.
func (r *BookmarkRepository) Add(ctx context.Context, userID, courseID int64) error {
	const query = `INSERT OR IGNORE INTO bookmarks (user_id, course_id, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, courseID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// Remove deletes a bookmark. Removing a missing bookmark is a no-op.
func (r *BookmarkRepository) Remove(ctx context.Context, userID, courseID int64) error {
	const query = `DELETE FROM bookmarks WHERE user_id = ? AND course_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}
