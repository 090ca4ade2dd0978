package membership

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
	"github.com/ironclub/ironclub-api/pkg/domain"
	"github.com/ironclub/ironclub-api/pkg/pricing"
	"github.com/ironclub/ironclub-api/pkg/repository"
)

// Handler handles membership subscription, freeze and cancellation.
type Handler struct {
	logger      *slog.Logger
	memberships *repository.MembershipsRepository
	bankCards   *repository.BankCardsRepository
	payments    *repository.PaymentsRepository
}

// NewHandler creates a new membership handler.
func NewHandler(logger *slog.Logger, memberships *repository.MembershipsRepository, bankCards *repository.BankCardsRepository, payments *repository.PaymentsRepository) *Handler {
	return &Handler{
		logger:      logger,
		memberships: memberships,
		bankCards:   bankCards,
		payments:    payments,
	}
}

// SubscribeRequest mirrors the subscription input schema.
type SubscribeRequest struct {
	BankCardID int64  `json:"bank_card_id" validate:"required,gt=0"`
	LevelType  string `json:"level_type" validate:"required,oneof=SIMPLE INFINITY PREMIUM"`
}

// MembershipIDRequest identifies a membership in a request body.
type MembershipIDRequest struct {
	MembershipID int64 `json:"membership_id" validate:"required,gt=0"`
}

// Subscribe charges the card and creates a subscription. Resubscribing at
// the same level is rejected; a different level replaces the current one.
// POST /v1/membership
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := domain.ParseLevel(req.LevelType)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Unknown level type")
		return
	}

	card, err := h.bankCards.GetByID(r.Context(), req.BankCardID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "Not found")
		return
	}
	if card.ClientID != client.ClientID {
		httputil.Unauthorized(w)
		return
	}

	if err := h.replaceExisting(r.Context(), client.ClientID, level); err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			httputil.Error(w, http.StatusBadRequest, "Already subscribed")
			return
		}
		h.logger.Error("failed to replace membership", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	subscription, err := h.payments.SubscribeMembership(r.Context(), client.ClientID, req.BankCardID, level, pricing.MembershipPrices[level])
	if err != nil {
		h.logger.Error("failed to subscribe", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "subscription": subscription})
}

// replaceExisting revokes the client's current membership before a new one
// is created. Resubscribing at the same level is ErrAlreadySubscribed.
func (h *Handler) replaceExisting(ctx context.Context, clientID int64, level domain.LevelType) error {
	existing, err := h.memberships.GetAny(ctx, clientID)
	if errors.Is(err, domain.ErrMembershipNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.LevelType == level {
		return domain.ErrAlreadySubscribed
	}
	return h.memberships.Revoke(ctx, existing.MembershipID)
}

// Cancel expires the membership immediately.
// DELETE /v1/membership
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req MembershipIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, ok := h.ownUnexpired(w, r, req.MembershipID)
	if !ok {
		return
	}

	if err := h.memberships.Revoke(r.Context(), membership.MembershipID); err != nil {
		h.logger.Error("failed to cancel membership", "error", err, "membership_id", membership.MembershipID)
		httputil.Error(w, http.StatusInternalServerError, "cancellation failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Active returns the client's active (unexpired, unfrozen) membership, or
// null when there is none.
// GET /v1/membership/active
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	membership, err := h.memberships.GetActive(r.Context(), client.ClientID)
	if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
		h.logger.Error("failed to get active membership", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to get membership")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "membership": membership})
}

// Freeze pauses the membership clock.
// POST /v1/membership/freeze
func (h *Handler) Freeze(w http.ResponseWriter, r *http.Request) {
	var req MembershipIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, ok := h.ownUnexpired(w, r, req.MembershipID)
	if !ok {
		return
	}

	freeze, err := h.memberships.Freeze(r.Context(), membership.MembershipID)
	if err != nil {
		h.logger.Error("failed to freeze membership", "error", err, "membership_id", membership.MembershipID)
		httputil.Error(w, http.StatusInternalServerError, "freeze failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "freeze": freeze})
}

// Unfreeze resumes a frozen membership; the frozen span extends the expiry.
// DELETE /v1/membership/freeze/{membership_id}
func (h *Handler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	membershipID, err := strconv.ParseInt(chi.URLParam(r, "membership_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "membership_id must be a number")
		return
	}

	membership, ok := h.ownUnexpired(w, r, membershipID)
	if !ok {
		return
	}

	freeze, err := h.memberships.Unfreeze(r.Context(), membership)
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFrozen) {
			httputil.Error(w, http.StatusBadRequest, "Membership is not frozen")
			return
		}
		h.logger.Error("failed to unfreeze membership", "error", err, "membership_id", membershipID)
		httputil.Error(w, http.StatusInternalServerError, "unfreeze failed")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "freeze": freeze})
}

// ownUnexpired fetches the membership and enforces ownership and expiry,
// writing the error response itself when the checks fail.
func (h *Handler) ownUnexpired(w http.ResponseWriter, r *http.Request, membershipID int64) (*domain.Membership, bool) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return nil, false
	}

	membership, err := h.fetchOwned(r.Context(), client, membershipID)
	switch {
	case err == nil:
		return membership, true
	case errors.Is(err, domain.ErrMembershipExpired):
		httputil.Error(w, http.StatusBadRequest, "Membership expired")
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.Unauthorized(w)
	default:
		httputil.Error(w, http.StatusNotFound, "Not found")
	}
	return nil, false
}

func (h *Handler) fetchOwned(ctx context.Context, client *domain.Client, membershipID int64) (*domain.Membership, error) {
	membership, err := h.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.ClientID != client.ClientID {
		return nil, domain.ErrUnauthorized
	}
	if !membership.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrMembershipExpired
	}
	return membership, nil
}
