package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/entity"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) outbound.AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Append inserts a new entry with a server-assigned id and timestamp.
// Entries are never updated or deleted.
func (r *auditLogRepository) Append(ctx context.Context, userID, action string) (*entity.AuditLogEntry, error) {
	entry := &entity.AuditLogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}

	query := `
		INSERT INTO audit_logs (id, user_id, action, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append audit log: %w", err)
	}

	return entry, nil
}
