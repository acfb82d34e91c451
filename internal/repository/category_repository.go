package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/govlead/academy-api/internal/models"
)

// CategoryRepository handles persistence of course categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository constructs the repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns every category.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT id, name, slug FROM categories ORDER BY name ASC`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create inserts a category. A unique-constraint failure on slug is
// returned unwrapped so callers can classify it.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	const query = `INSERT INTO categories (name, slug) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, category.Name, category.Slug)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create category id: %w", err)
	}
	category.ID = id
	return nil
}
