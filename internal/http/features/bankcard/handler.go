package bankcard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ironclub/ironclub-api/internal/http/middleware"
	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/internal/validate"
	"github.com/ironclub/ironclub-api/pkg/domain"
	"github.com/ironclub/ironclub-api/pkg/repository"
)

// Handler handles stored bank cards. Clients can only see and delete their
// own cards.
type Handler struct {
	logger    *slog.Logger
	bankCards *repository.BankCardsRepository
}

// NewHandler creates a new bank card handler.
func NewHandler(logger *slog.Logger, bankCards *repository.BankCardsRepository) *Handler {
	return &Handler{logger: logger, bankCards: bankCards}
}

// AddRequest mirrors the card input schema.
type AddRequest struct {
	CardNumber     string `json:"card_number" validate:"required,max=20"`
	CardholderName string `json:"cardholder_name" validate:"required,max=255"`
	ExpiresAt      string `json:"expires_at" validate:"required,datetime=2006-01-02"`
	CVV            string `json:"cvv" validate:"required,max=4"`
}

// DeleteRequest identifies the card to remove.
type DeleteRequest struct {
	BankCardID int64 `json:"bank_card_id" validate:"required,gt=0"`
}

// List returns the authenticated client's cards.
// GET /v1/bank-card
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	cards, err := h.bankCards.GetByClientID(r.Context(), client.ClientID)
	if err != nil {
		h.logger.Error("failed to list bank cards", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to list bank cards")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "bank_cards": cards})
}

// Add stores a new card for the authenticated client.
// POST /v1/bank-card
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	card := &domain.BankCard{
		ClientID:       client.ClientID,
		CardNumber:     req.CardNumber,
		CardholderName: req.CardholderName,
		ExpiresAt:      req.ExpiresAt,
		CVV:            req.CVV,
	}
	if err := h.bankCards.Create(r.Context(), card); err != nil {
		h.logger.Error("failed to store bank card", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to store bank card")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "bank_card": card})
}

// Delete removes a card identified in the request body.
// DELETE /v1/bank-card
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.delete(w, r, req.BankCardID)
}

// DeleteByID removes a card identified in the path.
// DELETE /v1/bank-card/{bank_card_id}
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	bankCardID, err := strconv.ParseInt(chi.URLParam(r, "bank_card_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "bank_card_id must be a number")
		return
	}

	h.delete(w, r, bankCardID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, bankCardID int64) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	card, err := h.bankCards.GetByID(r.Context(), bankCardID)
	if err != nil {
		if errors.Is(err, domain.ErrBankCardNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to get bank card", "error", err, "bank_card_id", bankCardID)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete bank card")
		return
	}
	if card.ClientID != client.ClientID {
		httputil.Unauthorized(w)
		return
	}

	if err := h.bankCards.Delete(r.Context(), bankCardID); err != nil {
		h.logger.Error("failed to delete bank card", "error", err, "bank_card_id", bankCardID)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete bank card")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}
