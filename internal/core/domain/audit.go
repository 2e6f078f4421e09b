package domain

import "time"

// AuditAction names a mutation recorded in the audit trail.
type AuditAction string

const (
	AuditPostCreated    AuditAction = "post_created"
	AuditPostUpdated    AuditAction = "post_updated"
	AuditPostDeleted    AuditAction = "post_deleted"
	AuditCommentAdded   AuditAction = "comment_added"
	AuditCommentDeleted AuditAction = "comment_deleted"
)

// AuditEvent records a committed mutation and who made it.
type AuditEvent struct {
	Action    AuditAction
	PostID    int64
	CommentID int64 // zero for post actions
	ActorID   int64
	At        time.Time
}
