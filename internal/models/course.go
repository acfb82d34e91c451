package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CourseStatus captures a course's publication lifecycle.
type CourseStatus string

const (
	CourseDraft      CourseStatus = "draft"
	CoursePublished  CourseStatus = "published"
	CourseComingSoon CourseStatus = "coming_soon"
	CourseArchived   CourseStatus = "archived"
)

// Valid reports whether the status is a known lifecycle state.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseDraft, CoursePublished, CourseComingSoon, CourseArchived:
		return true
	}
	return false
}

// LearningOutcomes is an ordered list of outcome strings, serialized as
// JSON text only at the storage boundary.
type LearningOutcomes []string

// Value implements driver.Valuer.
func (o LearningOutcomes) Value() (driver.Value, error) {
	if o == nil {
		o = LearningOutcomes{}
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode learning outcomes: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (o *LearningOutcomes) Scan(src interface{}) error {
	if src == nil {
		*o = LearningOutcomes{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("learning outcomes: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*o = LearningOutcomes{}
		return nil
	}
	return json.Unmarshal(raw, o)
}

// Course is a sellable unit of content. CategoryID may reference a
// removed category; readers fall back to a default label.
type Course struct {
	ID               int64            `db:"id" json:"id"`
	Title            string           `db:"title" json:"title"`
	Description      string           `db:"description" json:"description"`
	CategoryID       int64            `db:"category_id" json:"category_id"`
	Difficulty       string           `db:"difficulty" json:"difficulty"`
	ThumbnailURL     string           `db:"thumbnail_url" json:"thumbnail_url"`
	Status           CourseStatus     `db:"status" json:"status"`
	IsPaid           bool             `db:"is_paid" json:"is_paid"`
	Price            float64          `db:"price" json:"price"`
	LearningOutcomes LearningOutcomes `db:"learning_outcomes" json:"learning_outcomes"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
}

// Category groups courses for browsing.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}
