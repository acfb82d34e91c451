package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// schemaStatements is the declarative target schema. Every statement is
// idempotent, so Migrate is safe to run on each startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT UNIQUE,
		password_hash TEXT,
		role TEXT DEFAULT 'user',
		subscription_status TEXT DEFAULT 'free',
		bio TEXT,
		profile_image TEXT,
		business_info TEXT,
		learning_interests TEXT,
		experience_level TEXT,
		business_stage TEXT,
		email_verified BOOLEAN DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		slug TEXT UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		description TEXT,
		category_id INTEGER,
		difficulty TEXT,
		thumbnail_url TEXT,
		status TEXT DEFAULT 'draft',
		is_paid BOOLEAN DEFAULT 0,
		price REAL DEFAULT 0,
		learning_outcomes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(category_id) REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS modules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id INTEGER,
		title TEXT,
		order_index INTEGER,
		FOREIGN KEY(course_id) REFERENCES courses(id)
	)`,
	`CREATE TABLE IF NOT EXISTS lessons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		module_id INTEGER,
		title TEXT,
		video_url TEXT,
		duration INTEGER,
		order_index INTEGER,
		content_markdown TEXT,
		FOREIGN KEY(module_id) REFERENCES modules(id)
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		course_id INTEGER,
		enrolled_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, course_id),
		FOREIGN KEY(user_id) REFERENCES users(id),
		FOREIGN KEY(course_id) REFERENCES courses(id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id INTEGER,
		lesson_id INTEGER,
		completed BOOLEAN DEFAULT 0,
		progress_percentage INTEGER DEFAULT 0,
		last_watched_timestamp DATETIME,
		PRIMARY KEY(user_id, lesson_id),
		FOREIGN KEY(user_id) REFERENCES users(id),
		FOREIGN KEY(lesson_id) REFERENCES lessons(id)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		lesson_id INTEGER,
		content TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id),
		FOREIGN KEY(lesson_id) REFERENCES lessons(id)
	)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		user_id INTEGER,
		course_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY(user_id, course_id),
		FOREIGN KEY(user_id) REFERENCES users(id),
		FOREIGN KEY(course_id) REFERENCES courses(id)
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id TEXT PRIMARY KEY,
		user_id INTEGER,
		action TEXT,
		resource TEXT,
		resource_id TEXT,
		new_values TEXT,
		ip_address TEXT,
		user_agent TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// evolution is a column added after the table first shipped. Applied with
// ALTER TABLE on every startup; the duplicate-column failure on databases
// that already have the column is the expected path.
type evolution struct {
	table  string
	column string
}

var schemaEvolutions = []evolution{
	{"users", "bio TEXT"},
	{"users", "profile_image TEXT"},
	{"users", "business_info TEXT"},
	{"users", "learning_interests TEXT"},
	{"users", "experience_level TEXT"},
	{"users", "business_stage TEXT"},
	{"users", "email_verified BOOLEAN DEFAULT 1"},
	{"courses", "is_paid BOOLEAN DEFAULT 0"},
	{"courses", "price REAL DEFAULT 0"},
	{"courses", "learning_outcomes TEXT"},
}

// Migrate creates any missing tables and applies additive column
// evolutions. Duplicate-column failures are skipped; every other DDL
// failure aborts startup.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for _, ev := range schemaEvolutions {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", ev.table, ev.column)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("add column %s.%s: %w", ev.table, ev.column, err)
		}
		logger.Info("schema column added",
			zap.String("table", ev.table),
			zap.String("column", ev.column))
	}

	return nil
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
