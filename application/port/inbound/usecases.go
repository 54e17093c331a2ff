package inbound

import (
	"context"
	"time"

	"github.com/classconnect/backoffice/domain/entity"
)

// AdminUseCase registers and authenticates administrators.
type AdminUseCase interface {
	Register(ctx context.Context, newEmail, newPassword, creatorID string) (*entity.Admin, error)
	Login(ctx context.Context, email, password string) (*entity.Admin, error)
}

// IdentityUseCase proxies block/role-change actions to the external
// authorization service and records an audit entry on success.
type IdentityUseCase interface {
	BlockUser(ctx context.Context, userID string, toBlock bool) (*entity.AuditLogEntry, error)
	ChangeRole(ctx context.Context, userID, role string) (*entity.AuditLogEntry, error)
}

// RateLimitService throttles abusive clients, keyed by arbitrary strings.
type RateLimitService interface {
	CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) error
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
	IsBlocked(ctx context.Context, key string) (bool, error)
}
