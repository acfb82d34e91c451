package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// NoteRepository handles persistence of lesson notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByUserAndLesson returns the user's notes for a lesson in
// creation order.
func (r *NoteRepository) ListByUserAndLesson(ctx context.Context, userID, lessonID int64) ([]models.Note, error) {
	const query = `SELECT id, user_id, lesson_id, content, created_at
		FROM notes WHERE user_id = ? AND lesson_id = ? ORDER BY created_at ASC`
	var notes []models.Note
	if err := r.db.SelectContext(ctx, &notes, query, userID, lessonID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create appends a note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO notes (user_id, lesson_id, content, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, note.UserID, note.LessonID, note.Content, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create note id: %w", err)
	}
	note.ID = id
	return nil
}
