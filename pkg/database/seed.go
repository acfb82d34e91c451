package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/govlead/academy-api/pkg/config"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type seedCategory struct {
	Name string
	Slug string
}

type seedCourse struct {
	Title       string
	Description string
	CategoryID  int64
	Difficulty  string
	Thumbnail   string
}

var seedCategories = []seedCategory{
	{"AI", "ai"},
	{"Scaling", "scaling"},
	{"Branding", "branding"},
	{"Leadership", "leadership"},
}

var seedCourses = []seedCourse{
	{"AI-Driven Business Systems", "Master the art of automating your operations with cutting-edge AI tools.", 1, "Intermediate", "https://picsum.photos/seed/ai/800/450"},
	{"Scaling to 7 Figures", "A blueprint for high-growth startups ready to dominate their market.", 2, "Advanced", "https://picsum.photos/seed/scale/800/450"},
	{"Premium Brand Authority", "Build a brand that commands attention and premium pricing.", 3, "Beginner", "https://picsum.photos/seed/brand/800/450"},
	{"Leadership Operating System", "Frameworks for building and managing high-performance teams.", 4, "Intermediate", "https://picsum.photos/seed/lead/800/450"},
}

// Seed inserts reference rows keyed on their natural uniqueness (email,
// slug, title), so it is idempotent and safe to run on every startup.
func Seed(ctx context.Context, db *sqlx.DB, cfg config.SeedConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	users := []seedUser{
		{"Alex Rivera", "alex@example.com", "password123", "user"},
		{"Admin User", cfg.AdminEmail, cfg.AdminPassword, "admin"},
	}

	for _, u := range users {
		var exists int
		err := db.GetContext(ctx, &exists, "SELECT 1 FROM users WHERE email = ? LIMIT 1", u.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check seed user %s: %w", u.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)",
			u.Name, u.Email, string(hash), u.Role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		logger.Info("seeded user", zap.String("email", u.Email), zap.String("role", u.Role))
	}

	for _, c := range seedCategories {
		if _, err := db.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (name, slug) VALUES (?, ?)",
			c.Name, c.Slug); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
	}

	for _, c := range seedCourses {
		var exists int
		err := db.GetContext(ctx, &exists, "SELECT 1 FROM courses WHERE title = ? LIMIT 1", c.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check seed course %q: %w", c.Title, err)
		}

		if _, err := db.ExecContext(ctx,
			`INSERT INTO courses (title, description, category_id, difficulty, thumbnail_url, status, learning_outcomes)
			 VALUES (?, ?, ?, ?, ?, 'published', '[]')`,
			c.Title, c.Description, c.CategoryID, c.Difficulty, c.Thumbnail); err != nil {
			return fmt.Errorf("seed course %q: %w", c.Title, err)
		}
		logger.Info("seeded course", zap.String("title", c.Title))
	}

	return nil
}
