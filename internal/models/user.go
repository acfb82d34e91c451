package models

import "time"

// UserRole represents the available roles for the authorization gate.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Valid reports whether the role is one the system knows.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// SubscriptionStatus is the user's plan tier.
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

// Valid reports whether the status is a known tier.
func (s SubscriptionStatus) Valid() bool {
	return s == SubscriptionFree || s == SubscriptionPremium
}

// User represents an application user stored in the users table.
type User struct {
	ID                 int64              `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	PasswordHash       string             `db:"password_hash" json:"-"`
	Role               UserRole           `db:"role" json:"role"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	Bio                *string            `db:"bio" json:"bio,omitempty"`
	ProfileImage       *string            `db:"profile_image" json:"profile_image,omitempty"`
	BusinessInfo       *string            `db:"business_info" json:"business_info,omitempty"`
	LearningInterests  *string            `db:"learning_interests" json:"learning_interests,omitempty"`
	ExperienceLevel    *string            `db:"experience_level" json:"experience_level,omitempty"`
	BusinessStage      *string            `db:"business_stage" json:"business_stage,omitempty"`
	EmailVerified      bool               `db:"email_verified" json:"email_verified"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// UserSummary is the admin listing projection, excluding credentials and
// profile detail.
type UserSummary struct {
	ID                 int64              `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	Role               UserRole           `db:"role" json:"role"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// Profile is the self-service projection of a user.
type Profile struct {
	ID                 int64              `db:"id" json:"id"`
	Name               string             `db:"name" json:"name"`
	Email              string             `db:"email" json:"email"`
	Bio                *string            `db:"bio" json:"bio"`
	ProfileImage       *string            `db:"profile_image" json:"profile_image"`
	BusinessInfo       *string            `db:"business_info" json:"business_info"`
	LearningInterests  *string            `db:"learning_interests" json:"learning_interests"`
	ExperienceLevel    *string            `db:"experience_level" json:"experience_level"`
	BusinessStage      *string            `db:"business_stage" json:"business_stage"`
	EmailVerified      bool               `db:"email_verified" json:"email_verified"`
	Role               UserRole           `db:"role" json:"role"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
}

// ProfileUpdate carries a partial profile mutation. Nil fields leave the
// stored value unchanged.
type ProfileUpdate struct {
	Name              *string `json:"name"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Bio               *string `json:"bio"`
	ProfileImage      *string `json:"profile_image"`
	BusinessInfo      *string `json:"business_info"`
	LearningInterests *string `json:"learning_interests"`
	ExperienceLevel   *string `json:"experience_level"`
	BusinessStage     *string `json:"business_stage"`
}

// AdminStats summarises platform-wide counters for the admin overview.
type AdminStats struct {
	UserCount       int `db:"user_count" json:"userCount"`
	CourseCount     int `db:"course_count" json:"courseCount"`
	CompletionCount int `db:"completion_count" json:"completionCount"`
}
