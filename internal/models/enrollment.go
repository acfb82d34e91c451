package models

import "time"

// Enrollment grants a user access to a course. The (user_id, course_id)
// pair is unique; a second insert surfaces as an already-enrolled
// conflict, not a system error.
type Enrollment struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// Bookmark marks a course saved by a user. Insert is idempotent.
type Bookmark struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Note is free text attached by a user to a lesson, append-only.
type Note struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	LessonID  int64     `db:"lesson_id" json:"lesson_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
