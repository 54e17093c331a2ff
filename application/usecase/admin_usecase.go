package usecase

import (
	"context"
	"errors"

	"github.com/classconnect/backoffice/application/port/inbound"
	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/domain/entity"
	"github.com/classconnect/backoffice/infrastructure/service/logger"
)

type AdminUseCase struct {
	adminRepository outbound.AdminRepository
	passwordService outbound.PasswordService
	logger          logger.Logger
}

func NewAdminUseCase(
	adminRepo outbound.AdminRepository,
	passwordService outbound.PasswordService,
	logger logger.Logger,
) inbound.AdminUseCase {
	return &AdminUseCase{
		adminRepository: adminRepo,
		passwordService: passwordService,
		logger:          logger,
	}
}

// Register provisions a new admin on behalf of an existing one. The creator
// check runs before the email check: a request that fails both must report
// the missing creator.
func (uc *AdminUseCase) Register(ctx context.Context, newEmail, newPassword, creatorID string) (*entity.Admin, error) {
	if _, err := uc.adminRepository.FindByID(ctx, creatorID); err != nil {
		if errors.Is(err, outbound.ErrAdminNotFound) {
			uc.logger.Warn(ctx, "Registration rejected: creator not found", map[string]interface{}{
				"creator_id": creatorID,
			})
			return nil, apperror.CreatorNotFound(creatorID)
		}
		return nil, apperror.Internal("failed to look up creator", err)
	}

	if _, err := uc.adminRepository.FindByEmail(ctx, newEmail); err == nil {
		uc.logger.Warn(ctx, "Registration rejected: email already exists", map[string]interface{}{
			"email": newEmail,
		})
		return nil, apperror.EmailAlreadyExists(newEmail)
	} else if !errors.Is(err, outbound.ErrAdminNotFound) {
		return nil, apperror.Internal("failed to look up email", err)
	}

	hashed, err := uc.passwordService.HashPassword(newPassword)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	admin, err := uc.adminRepository.Create(ctx, newEmail, hashed, creatorID)
	if err != nil {
		// The unique index can still fire under a concurrent registration
		// that slipped past the pre-check.
		if errors.Is(err, outbound.ErrEmailTaken) {
			return nil, apperror.EmailAlreadyExists(newEmail)
		}
		return nil, apperror.Internal("failed to create admin", err)
	}

	uc.logger.Info(ctx, "Admin registered", map[string]interface{}{
		"admin_id":   admin.ID,
		"email":      admin.Email,
		"creator_id": creatorID,
	})
	return admin, nil
}

// Login authenticates an admin by email and password. The returned record
// still carries the password hash; handlers must not serialize it outward.
func (uc *AdminUseCase) Login(ctx context.Context, email, password string) (*entity.Admin, error) {
	admin, err := uc.adminRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, outbound.ErrAdminNotFound) {
			uc.logger.Warn(ctx, "Login failed: admin not found", map[string]interface{}{
				"email": email,
			})
			return nil, apperror.AdminNotFound(email)
		}
		return nil, apperror.Internal("failed to look up admin", err)
	}

	ok, err := uc.passwordService.VerifyPassword(password, admin.HashedPassword)
	if err != nil {
		return nil, apperror.Internal("failed to verify password", err)
	}
	if !ok {
		uc.logger.Warn(ctx, "Login failed: wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, apperror.WrongPassword(email)
	}

	uc.logger.Info(ctx, "Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return admin, nil
}
