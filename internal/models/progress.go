package models

import "time"

// UserProgress is per-user, per-lesson completion state. Rows are
// upserted on (user_id, lesson_id) with last-write-wins semantics: a
// later report with a lower percentage legitimately overwrites a higher
// one.
type UserProgress struct {
	UserID               int64     `db:"user_id" json:"user_id"`
	LessonID             int64     `db:"lesson_id" json:"lesson_id"`
	Completed            bool      `db:"completed" json:"completed"`
	ProgressPercentage   int       `db:"progress_percentage" json:"progress_percentage"`
	LastWatchedTimestamp time.Time `db:"last_watched_timestamp" json:"last_watched_timestamp"`
}

// DashboardStats aggregates a user's learning activity. Streak and
// Certificates have no backing data model yet and are fixed stand-in
// values until real tracking lands.
type DashboardStats struct {
	EnrolledCount  int     `json:"enrolledCount"`
	HoursCompleted int     `json:"hoursCompleted"`
	Streak         int     `json:"streak"`
	Certificates   int     `json:"certificates"`
	RecentCourse   *Course `json:"recentCourse"`
	RoadmapStage   string  `json:"roadmapStage"`
}
