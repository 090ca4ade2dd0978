package payment

import (
	"log/slog"
	"net/http"

	"github.com/ironclub/ironclub-api/internal/http/middleware"
	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/pkg/repository"
)

// Handler exposes the authenticated client's payment history.
type Handler struct {
	logger   *slog.Logger
	payments *repository.PaymentsRepository
}

// NewHandler creates a new payment handler.
func NewHandler(logger *slog.Logger, payments *repository.PaymentsRepository) *Handler {
	return &Handler{logger: logger, payments: payments}
}

// List returns every payment the authenticated client has made, newest first.
// GET /v1/payment-history
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	payments, err := h.payments.GetByClientID(r.Context(), client.ClientID)
	if err != nil {
		h.logger.Error("failed to load payment history", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load payment history")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "payment_history": payments})
}
