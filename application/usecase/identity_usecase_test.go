package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/domain/entity"
)

type directoryCall struct {
	userID string
	block  bool
	role   string
}

// mockAuthDirectory records calls and returns a scripted error.
type mockAuthDirectory struct {
	calls []directoryCall
	err   error
}

func (m *mockAuthDirectory) BlockUser(ctx context.Context, userID string, block bool) error {
	m.calls = append(m.calls, directoryCall{userID: userID, block: block})
	return m.err
}

func (m *mockAuthDirectory) ChangeRole(ctx context.Context, userID, role string) error {
	m.calls = append(m.calls, directoryCall{userID: userID, role: role})
	return m.err
}

type mockAuditLogRepository struct {
	entries []*entity.AuditLogEntry
	err     error
}

func (m *mockAuditLogRepository) Append(ctx context.Context, userID, action string) (*entity.AuditLogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entry := &entity.AuditLogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

func TestIdentityUseCase_BlockUser(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockAppendsOneEntry", func(t *testing.T) {
		directory := &mockAuthDirectory{}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		entry, err := uc.BlockUser(ctx, "u1", true)
		require.NoError(t, err)
		assert.Equal(t, "u1", entry.UserID)
		assert.Equal(t, entity.ActionBlock, entry.Action)
		require.Len(t, audit.entries, 1)
		assert.Equal(t, "u1", audit.entries[0].UserID)
		assert.Equal(t, entity.ActionBlock, audit.entries[0].Action)
	})

	t.Run("UnblockAction", func(t *testing.T) {
		directory := &mockAuthDirectory{}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		entry, err := uc.BlockUser(ctx, "u1", false)
		require.NoError(t, err)
		assert.Equal(t, entity.ActionUnblock, entry.Action)
	})

	t.Run("SubjectNotFoundAppendsNothing", func(t *testing.T) {
		directory := &mockAuthDirectory{err: apperror.SubjectNotFound("u404")}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		_, err := uc.BlockUser(ctx, "u404", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.SubjectNotFound("u404"))
		assert.Empty(t, audit.entries)
	})

	t.Run("AppendFailureIsInternal", func(t *testing.T) {
		directory := &mockAuthDirectory{}
		audit := &mockAuditLogRepository{err: errors.New("store down")}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		_, err := uc.BlockUser(ctx, "u1", true)
		require.Error(t, err)
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})
}

func TestIdentityUseCase_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidRoleAppendsRoleAction", func(t *testing.T) {
		directory := &mockAuthDirectory{}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		entry, err := uc.ChangeRole(ctx, "u1", entity.RoleTeacher)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleTeacher, entry.Action)
		require.Len(t, directory.calls, 1)
		assert.Equal(t, entity.RoleTeacher, directory.calls[0].role)
		require.Len(t, audit.entries, 1)
	})

	t.Run("InvalidRoleMakesNoCalls", func(t *testing.T) {
		// Validation runs before the external call; "admin" must cost
		// neither a round trip nor an audit entry.
		directory := &mockAuthDirectory{}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		_, err := uc.ChangeRole(ctx, "u1", "admin")
		require.Error(t, err)
		assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
		assert.Empty(t, directory.calls)
		assert.Empty(t, audit.entries)
	})

	t.Run("UpstreamFailureAppendsNothing", func(t *testing.T) {
		directory := &mockAuthDirectory{err: apperror.SubjectNotFound("u404")}
		audit := &mockAuditLogRepository{}
		uc := NewIdentityUseCase(directory, audit, testLogger())

		_, err := uc.ChangeRole(ctx, "u404", entity.RoleStudent)
		require.Error(t, err)
		assert.Empty(t, audit.entries)
	})
}
