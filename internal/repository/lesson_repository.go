package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// LessonRepository handles persistence of lessons.
type LessonRepository struct {
	db *sqlx.DB
}

// NewLessonRepository constructs the repository.
func NewLessonRepository(db *sqlx.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// ListByModule returns the module's lessons in display order.
func (r *LessonRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	const query = `SELECT id, module_id, title, video_url, duration, order_index, content_markdown
		FROM lessons WHERE module_id = ? ORDER BY order_index ASC`
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, moduleID); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// CountByModule returns the number of lessons in a module.
func (r *LessonRepository) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM lessons WHERE module_id = ?", moduleID); err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return count, nil
}

// Create appends a lesson to its module. OrderIndex must already be set
// to the module's current lesson count.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	const query = `INSERT INTO lessons (module_id, title, video_url, duration, order_index, content_markdown)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		lesson.ModuleID, lesson.Title, lesson.VideoURL, lesson.Duration, lesson.OrderIndex, lesson.ContentMarkdown)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create lesson id: %w", err)
	}
	lesson.ID = id
	return nil
}
