package model

import (
	"context"
	"time"
)

// UserRole is the caller-supplied role tag attached to API requests.
// There are no accounts behind it; the frontend declares who is calling.
type UserRole string

const (
	// UserRoleStudent is the student dashboard role.
	UserRoleStudent UserRole = "student"
	// UserRoleGuardian is the guardian role.
	UserRoleGuardian UserRole = "guardian"
	// UserRoleAdmin is the administrator role.
	UserRoleAdmin UserRole = "admin"
)

type roleCtxKey struct{}

// ContextWithRole stores the caller's role tag in the request context.
func ContextWithRole(ctx context.Context, role UserRole) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the caller's role tag, or empty string.
func RoleFromContext(ctx context.Context) UserRole {
	r, _ := ctx.Value(roleCtxKey{}).(UserRole)
	return r
}

// Role represents a chat message role in a tutoring session.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionStatus represents the status of a tutoring session.
type SessionStatus string

const (
	StatusIdle          SessionStatus = "idle"
	StatusAwaitingReply SessionStatus = "awaiting_reply"
)

// Turn is a single message in a tutoring session.
type Turn struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TutorSession is the persisted record of one tutoring conversation.
// Accessible selects the accessibility (screen-reader) prompt template
// and never changes for the lifetime of the session.
type TutorSession struct {
	ID         string    `json:"id"`
	Accessible bool      `json:"accessible"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmissionFile is one stored answer sheet as returned by the listing API.
type SubmissionFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// GradeRecord is the persisted outcome of one grading decision.
type GradeRecord struct {
	ID        int64     `json:"id"`
	Class     string    `json:"class"`
	Result    string    `json:"result"`
	NextClass string    `json:"next_class"`
	GradedAt  time.Time `json:"graded_at"`
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	UploadRoot  string // base directory for exams, notes and submissions
	ChatSource  string // source tag required on /chat requests
	UploadsBase string // URL prefix under which stored files are served
}
