package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect/backoffice/application/usecase"
	"github.com/classconnect/backoffice/domain/entity"
	"github.com/classconnect/backoffice/infrastructure/external/authdir"
	"github.com/classconnect/backoffice/infrastructure/http/middleware"
	"github.com/classconnect/backoffice/infrastructure/service/token"
)

type memoryAuditLogRepository struct {
	entries []*entity.AuditLogEntry
}

func (m *memoryAuditLogRepository) Append(ctx context.Context, userID, action string) (*entity.AuditLogEntry, error) {
	entry := &entity.AuditLogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

type identityTestEnv struct {
	router   *mux.Router
	audit    *memoryAuditLogRepository
	bearer   string
	upstream *httptest.Server
	requests *int
}

// newIdentityTestEnv wires the real identity use case against a stub
// external authorization service returning upstreamStatus.
func newIdentityTestEnv(t *testing.T, upstreamStatus int) *identityTestEnv {
	t.Helper()

	requests := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(upstreamStatus)
	}))
	t.Cleanup(upstream.Close)

	audit := &memoryAuditLogRepository{}
	directory := authdir.NewClient(upstream.URL, 5*time.Second, testLogger())
	identityUseCase := usecase.NewIdentityUseCase(directory, audit, testLogger())

	tokenService, err := token.NewJWTService("test-secret")
	require.NoError(t, err)
	bearer, err := tokenService.Issue(uuid.New().String(), "root@x.com")
	require.NoError(t, err)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	identityHandler := NewIdentityHandler(identityUseCase, authMiddleware)

	router := mux.NewRouter()
	identityHandler.RegisterRoutes(router)

	return &identityTestEnv{
		router:   router,
		audit:    audit,
		bearer:   bearer,
		upstream: upstream,
		requests: &requests,
	}
}

func (e *identityTestEnv) patch(path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPatch, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", bearer))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestIdentityHandler_BlockUser(t *testing.T) {
	t.Run("BlockAppendsExactlyOneEntry", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusOK)

		rec := env.patch("/admin/block/u1", env.bearer, BlockUserRequest{ToBlock: true})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp MessageResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Message, "u1")

		require.Len(t, env.audit.entries, 1)
		assert.Equal(t, "u1", env.audit.entries[0].UserID)
		assert.Equal(t, entity.ActionBlock, env.audit.entries[0].Action)
	})

	t.Run("SubjectNotFoundAppendsNothing", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusNotFound)

		rec := env.patch("/admin/block/u404", env.bearer, BlockUserRequest{ToBlock: true})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, env.audit.entries)
	})

	t.Run("MissingTokenIsBadRequest", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusOK)

		rec := env.patch("/admin/block/u1", "", BlockUserRequest{ToBlock: true})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, *env.requests)
	})

	t.Run("UpstreamFailureIsInternal", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusServiceUnavailable)

		rec := env.patch("/admin/block/u1", env.bearer, BlockUserRequest{ToBlock: true})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, env.audit.entries)
	})
}

func TestIdentityHandler_ChangeRole(t *testing.T) {
	t.Run("ValidRoleRecordsRoleAction", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusOK)

		rec := env.patch("/admin/change_role/u1", env.bearer, ChangeRoleRequest{Rol: "teacher"})
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, env.audit.entries, 1)
		assert.Equal(t, "teacher", env.audit.entries[0].Action)
	})

	t.Run("InvalidRoleSkipsUpstream", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusOK)

		rec := env.patch("/admin/change_role/u1", env.bearer, ChangeRoleRequest{Rol: "admin"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, *env.requests, "invalid role must not reach the external service")
		assert.Empty(t, env.audit.entries)
	})

	t.Run("SubjectNotFound", func(t *testing.T) {
		env := newIdentityTestEnv(t, http.StatusNotFound)

		rec := env.patch("/admin/change_role/u404", env.bearer, ChangeRoleRequest{Rol: "student"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, env.audit.entries)
	})
}
