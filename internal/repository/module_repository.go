package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// ModuleRepository handles persistence of course modules.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// FindFirstByCourse returns the lowest-ordered module of a course.
func (r *ModuleRepository) FindFirstByCourse(ctx context.Context, courseID int64) (*models.Module, error) {
	const query = `SELECT id, course_id, title, order_index FROM modules WHERE course_id = ? ORDER BY order_index ASC LIMIT 1`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, courseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find module for course: %w", err)
	}
	return &module, nil
}

// GetOrCreateDefault returns the course's first module, lazily creating
// the default one when the course has none. Idempotent: a second call
// for the same course finds and reuses the existing module.
func (r *ModuleRepository) GetOrCreateDefault(ctx context.Context, courseID int64) (*models.Module, error) {
	module, err := r.FindFirstByCourse(ctx, courseID)
	if err == nil {
		return module, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	created := &models.Module{CourseID: courseID, Title: models.DefaultModuleTitle, OrderIndex: 0}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO modules (course_id, title, order_index) VALUES (?, ?, ?)",
		created.CourseID, created.Title, created.OrderIndex)
	if err != nil {
		return nil, fmt.Errorf("create default module: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create default module id: %w", err)
	}
	created.ID = id
	return created, nil
}
