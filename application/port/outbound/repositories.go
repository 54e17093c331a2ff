package outbound

import (
	"context"
	"errors"

	"github.com/classconnect/backoffice/domain/entity"
)

var (
	// ErrAdminNotFound covers both a missing row and a malformed id; the
	// store does not distinguish them.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrEmailTaken is raised by the store's unique index on email.
	ErrEmailTaken = errors.New("email already taken")
)

// AdminRepository is the persistence boundary for admin records. Uniqueness
// pre-checks are the caller's responsibility; the store only enforces the
// index as a last line of defense.
type AdminRepository interface {
	Create(ctx context.Context, email, hashedPassword, creatorID string) (*entity.Admin, error)
	FindByID(ctx context.Context, id string) (*entity.Admin, error)
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

// AuditLogRepository is an append-only store of identity-management actions.
type AuditLogRepository interface {
	Append(ctx context.Context, userID, action string) (*entity.AuditLogEntry, error)
}
