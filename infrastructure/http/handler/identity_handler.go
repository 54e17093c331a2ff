package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/classconnect/backoffice/application/port/inbound"
	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/infrastructure/http/middleware"
	"github.com/classconnect/backoffice/infrastructure/http/response"
)

type IdentityHandler struct {
	identityUseCase inbound.IdentityUseCase
	authMiddleware  *middleware.AuthMiddleware
}

func NewIdentityHandler(
	identityUseCase inbound.IdentityUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
		authMiddleware:  authMiddleware,
	}
}

func (h *IdentityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/block/{userId}", h.authMiddleware.RequireAuth(h.BlockUser)).Methods(http.MethodPatch)
	router.HandleFunc("/admin/change_role/{userId}", h.authMiddleware.RequireAuth(h.ChangeRole)).Methods(http.MethodPatch)
}

type BlockUserRequest struct {
	ToBlock bool `json:"to_block"`
}

type ChangeRoleRequest struct {
	Rol string `json:"rol"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *IdentityHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if _, err := h.identityUseCase.BlockUser(r.Context(), userID, req.ToBlock); err != nil {
		writeIdentityError(w, err)
		return
	}

	verb := "blocked"
	if !req.ToBlock {
		verb = "unblocked"
	}
	response.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User '%s' %s.", userID, verb),
	})
}

func (h *IdentityHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if _, err := h.identityUseCase.ChangeRole(r.Context(), userID, req.Rol); err != nil {
		writeIdentityError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User '%s' role changed to '%s'.", userID, req.Rol),
	})
}

func writeIdentityError(w http.ResponseWriter, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.InternalServerError(w, "An unexpected error occurred")
		return
	}
	response.Error(w, status, apperror.MessageOf(err))
}
