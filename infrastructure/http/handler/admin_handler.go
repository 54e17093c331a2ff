package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/classconnect/backoffice/application/port/inbound"
	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/infrastructure/http/middleware"
	"github.com/classconnect/backoffice/infrastructure/http/response"
	"github.com/classconnect/backoffice/infrastructure/http/validator"
)

type AdminHandler struct {
	adminUseCase   inbound.AdminUseCase
	tokenService   outbound.TokenService
	authMiddleware *middleware.AuthMiddleware
}

func NewAdminHandler(
	adminUseCase inbound.AdminUseCase,
	tokenService outbound.TokenService,
	authMiddleware *middleware.AuthMiddleware,
) *AdminHandler {
	return &AdminHandler{
		adminUseCase:   adminUseCase,
		tokenService:   tokenService,
		authMiddleware: authMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(router *mux.Router, rateLimit func(http.Handler) http.Handler) {
	router.HandleFunc("/admin/register", h.authMiddleware.RequireAuth(h.Register)).Methods(http.MethodPost)
	router.Handle("/admin/login", rateLimit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register provisions a new admin. The acting admin comes from the verified
// bearer token; a nonexistent creator maps to 401 since the token refers to
// an identity this service no longer knows.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.BadRequest(w, apperror.TokenInvalid().Message)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateEmail(req.Email) {
		response.UnprocessableEntity(w, "Invalid email format")
		return
	}
	if !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Password is required")
		return
	}

	if _, err := h.adminUseCase.Register(r.Context(), req.Email, req.Password, claims.ID); err != nil {
		if errors.Is(err, apperror.CreatorNotFound(claims.ID)) {
			response.Unauthorized(w, apperror.MessageOf(err))
			return
		}
		switch apperror.KindOf(err) {
		case apperror.KindConflict:
			response.BadRequest(w, apperror.MessageOf(err))
		default:
			response.InternalServerError(w, "An unexpected error occurred")
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, nil)
}

// Login authenticates an admin and issues a bearer token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if !validator.ValidateRequired(req.Email) || !validator.ValidateRequired(req.Password) {
		response.UnprocessableEntity(w, "Email and password are required")
		return
	}

	admin, err := h.adminUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status := apperror.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			response.InternalServerError(w, "An unexpected error occurred")
		} else {
			response.Error(w, status, apperror.MessageOf(err))
		}
		return
	}

	token, err := h.tokenService.Issue(admin.ID, admin.Email)
	if err != nil {
		response.InternalServerError(w, "An unexpected error occurred")
		return
	}

	response.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
