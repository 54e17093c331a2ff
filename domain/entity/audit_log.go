package entity

import (
	"time"
)

// Audit log actions. The role names double as actions for role changes.
const (
	ActionBlock   = "block"
	ActionUnblock = "unblock"
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
)

// AuditLogEntry is an immutable record of a block/unblock/role-change action
// taken on a subject user. UserID is the user acted upon, not the admin
// performing the action.
type AuditLogEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// IsAssignableRole reports whether role is one an admin may assign.
func IsAssignableRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}
