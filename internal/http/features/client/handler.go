package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ironclub/ironclub-api/internal/http/middleware"
	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/internal/validate"
	"github.com/ironclub/ironclub-api/pkg/auth"
	"github.com/ironclub/ironclub-api/pkg/domain"
	"github.com/ironclub/ironclub-api/pkg/repository"
)

// Handler handles client registration, authentication and profile reads.
type Handler struct {
	logger   *slog.Logger
	clients  *repository.ClientsRepository
	sessions *auth.SessionService
	hasher   auth.PasswordHasher
	policy   *auth.PasswordPolicy
}

// NewHandler creates a new client handler.
func NewHandler(logger *slog.Logger, clients *repository.ClientsRepository, sessions *auth.SessionService, hasher auth.PasswordHasher, policy *auth.PasswordPolicy) *Handler {
	return &Handler{
		logger:   logger,
		clients:  clients,
		sessions: sessions,
		hasher:   hasher,
		policy:   policy,
	}
}

// RegisterRequest mirrors the sign-up input schema.
type RegisterRequest struct {
	FirstName         string  `json:"first_name" validate:"required,max=50"`
	LastName          string  `json:"last_name" validate:"required,max=50"`
	Patronymic        *string `json:"patronymic" validate:"omitempty,min=1,max=64"`
	ProfilePictureURL string  `json:"profile_picture_url" validate:"required,url,max=255"`
	EmailAddress      string  `json:"email_address" validate:"required,email,max=255"`
	PhoneNumber       string  `json:"phone_number" validate:"required,numeric,max=15"`
	Password          string  `json:"password" validate:"required,min=8"`
}

// LoginRequest mirrors the sign-in input schema.
type LoginRequest struct {
	EmailAddress string `json:"email_address" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Success bool            `json:"success"`
	Session *domain.Session `json:"session"`
	Client  *domain.Client  `json:"client"`
}

// Register creates a new client account and issues its first session.
// POST /v1/client/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.policy.ValidatePassword(req.Password); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.clients.ExistsByEmail(r.Context(), req.EmailAddress)
	if err != nil {
		h.logger.Error("failed to check email", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}
	if exists {
		httputil.Error(w, http.StatusBadRequest, "client already exists")
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	client := &domain.Client{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Patronymic:        req.Patronymic,
		ProfilePictureURL: req.ProfilePictureURL,
		EmailAddress:      req.EmailAddress,
		PhoneNumber:       req.PhoneNumber,
		PasswordHash:      passwordHash,
		CreatedAt:         time.Now(),
	}
	if err := h.clients.Create(r.Context(), client); err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			httputil.Error(w, http.StatusBadRequest, "client already exists")
			return
		}
		h.logger.Error("failed to create client", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	session, err := h.sessions.IssueSession(r.Context(), client)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	httputil.JSON(w, http.StatusOK, AuthResponse{Success: true, Session: session, Client: client})
}

// Login authenticates a client by email and password and issues a session.
// POST /v1/client/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.checkCredentials(r.Context(), req)
	if err != nil {
		// Same response for an unknown email and a bad password; do not
		// reveal which failed.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Unauthorized(w)
			return
		}
		h.logger.Error("failed to check credentials", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	session, err := h.sessions.IssueSession(r.Context(), client)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	httputil.JSON(w, http.StatusOK, AuthResponse{Success: true, Session: session, Client: client})
}

func (h *Handler) checkCredentials(ctx context.Context, req LoginRequest) (*domain.Client, error) {
	client, err := h.clients.GetByEmail(ctx, req.EmailAddress)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !h.hasher.Compare(client.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	return client, nil
}

// SignOut revokes the presented session.
// DELETE /v1/client/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	if err := h.sessions.RevokeByToken(r.Context(), token); err != nil {
		httputil.Unauthorized(w)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// SignOutAll revokes every active session of the authenticated client.
// DELETE /v1/client/signout/all
func (h *Handler) SignOutAll(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	if err := h.sessions.RevokeAll(r.Context(), client.ClientID); err != nil {
		h.logger.Error("failed to revoke sessions", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "signout failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me returns the authenticated client.
// GET /v1/client
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "client": client})
}

// GetByID returns any client by id.
// GET /v1/client/{client_id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(chi.URLParam(r, "client_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "client_id must be a number")
		return
	}

	client, err := h.clients.GetByID(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to get client", "error", err, "client_id", clientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to get client")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "client": client})
}

// All returns every registered client.
// GET /v1/client/all
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "clients": clients})
}
