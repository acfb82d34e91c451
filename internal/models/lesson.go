package models

// Module is a lesson container within a course. A single default module
// per course is created lazily the first time lessons are requested or
// added, so in practice course to module is one-to-one.
type Module struct {
	ID         int64  `db:"id" json:"id"`
	CourseID   int64  `db:"course_id" json:"course_id"`
	Title      string `db:"title" json:"title"`
	OrderIndex int    `db:"order_index" json:"order_index"`
}

// DefaultModuleTitle is the title given to lazily created modules.
const DefaultModuleTitle = "Main Module"

// Lesson is a single unit of video content inside a module. OrderIndex
// is append-only: new lessons take the current lesson count.
type Lesson struct {
	ID              int64   `db:"id" json:"id"`
	ModuleID        int64   `db:"module_id" json:"module_id"`
	Title           string  `db:"title" json:"title"`
	VideoURL        string  `db:"video_url" json:"video_url"`
	Duration        int     `db:"duration" json:"duration"`
	OrderIndex      int     `db:"order_index" json:"order_index"`
	ContentMarkdown *string `db:"content_markdown" json:"content_markdown,omitempty"`
}
