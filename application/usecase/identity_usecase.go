package usecase

import (
	"context"

	"github.com/classconnect/backoffice/application/port/inbound"
	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/domain/entity"
	"github.com/classconnect/backoffice/infrastructure/service/logger"
)

type IdentityUseCase struct {
	authDirectory outbound.AuthDirectory
	auditRepo     outbound.AuditLogRepository
	logger        logger.Logger
}

func NewIdentityUseCase(
	authDirectory outbound.AuthDirectory,
	auditRepo outbound.AuditLogRepository,
	logger logger.Logger,
) inbound.IdentityUseCase {
	return &IdentityUseCase{
		authDirectory: authDirectory,
		auditRepo:     auditRepo,
		logger:        logger,
	}
}

// BlockUser forwards the requested block state upstream and records the
// action once the external service has confirmed it. The log never records
// an action that did not take effect; the reverse gap (confirmed upstream,
// append lost) is accepted.
func (uc *IdentityUseCase) BlockUser(ctx context.Context, userID string, toBlock bool) (*entity.AuditLogEntry, error) {
	if err := uc.authDirectory.BlockUser(ctx, userID, toBlock); err != nil {
		uc.logger.Warn(ctx, "Block request rejected upstream", map[string]interface{}{
			"user_id":  userID,
			"to_block": toBlock,
			"error":    err.Error(),
		})
		return nil, err
	}

	action := entity.ActionBlock
	if !toBlock {
		action = entity.ActionUnblock
	}
	return uc.appendLog(ctx, userID, action)
}

// ChangeRole validates the role locally before contacting the external
// service; an invalid role costs no round trip.
func (uc *IdentityUseCase) ChangeRole(ctx context.Context, userID, role string) (*entity.AuditLogEntry, error) {
	if !entity.IsAssignableRole(role) {
		uc.logger.Warn(ctx, "Role change rejected: invalid role", map[string]interface{}{
			"user_id": userID,
			"role":    role,
		})
		return nil, apperror.InvalidRole(role)
	}

	if err := uc.authDirectory.ChangeRole(ctx, userID, role); err != nil {
		uc.logger.Warn(ctx, "Role change rejected upstream", map[string]interface{}{
			"user_id": userID,
			"role":    role,
			"error":   err.Error(),
		})
		return nil, err
	}

	return uc.appendLog(ctx, userID, role)
}

func (uc *IdentityUseCase) appendLog(ctx context.Context, userID, action string) (*entity.AuditLogEntry, error) {
	entry, err := uc.auditRepo.Append(ctx, userID, action)
	if err != nil {
		uc.logger.Error(ctx, "Audit append failed after upstream success", err, map[string]interface{}{
			"user_id": userID,
			"action":  action,
		})
		return nil, apperror.Internal("failed to append audit log", err)
	}

	uc.logger.Info(ctx, "Identity action recorded", map[string]interface{}{
		"log_id":  entry.ID,
		"user_id": userID,
		"action":  action,
	})
	return entry, nil
}
