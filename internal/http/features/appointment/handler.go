package appointment

import (
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
	"github.com/ironclub/ironclub-api/pkg/visitgraph"
)

// Handler handles personal trainer appointment booking and lookup.
type Handler struct {
	logger       *slog.Logger
	appointments *repository.AppointmentsRepository
	employees    *repository.EmployeesRepository
	bankCards    *repository.BankCardsRepository
	payments     *repository.PaymentsRepository
	sessions     middleware.Authenticator
}

// NewHandler creates a new appointment handler.
func NewHandler(logger *slog.Logger, appointments *repository.AppointmentsRepository, employees *repository.EmployeesRepository, bankCards *repository.BankCardsRepository, payments *repository.PaymentsRepository, sessions middleware.Authenticator) *Handler {
	return &Handler{
		logger:       logger,
		appointments: appointments,
		employees:    employees,
		bankCards:    bankCards,
		payments:     payments,
		sessions:     sessions,
	}
}

// CreateRequest books a trainer for a time slot, paid with the given card.
type CreateRequest struct {
	EmployeeID  int64  `json:"employee_id" validate:"required,gt=0"`
	GymID       int64  `json:"gym_id" validate:"required,gt=0"`
	BankCardID  int64  `json:"bank_card_id" validate:"required,gt=0"`
	AppointedAt string `json:"appointed_at" validate:"required"`
	EndsAt      string `json:"ends_at" validate:"required"`
}

// DeleteRequest identifies the appointment to cancel.
type DeleteRequest struct {
	TrainerAppointmentID int64 `json:"trainer_appointment_id" validate:"required,gt=0"`
}

// Get returns the caller's appointments in the requested range. With
// as_employee=true the caller's active trainer profile is used instead,
// returning the sessions they are booked to lead.
// GET /v1/trainer-appointment?range=<iso>&range=<iso>&as_employee=<bool>
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	rng, err := parseRangeQuery(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "range must be two ISO timestamps")
		return
	}

	if r.URL.Query().Get("as_employee") == "true" {
		token, _ := middleware.GetToken(r.Context())
		_, employee, err := h.sessions.AuthenticateEmployee(r.Context(), token)
		if err != nil {
			httputil.Unauthorized(w)
			return
		}
		h.respond(w, r, func() ([]*domain.AppointmentDetails, error) {
			return h.appointments.GetByEmployeeID(r.Context(), employee.EmployeeID, rng.Start, rng.End)
		})
		return
	}

	h.respond(w, r, func() ([]*domain.AppointmentDetails, error) {
		return h.appointments.GetByClientID(r.Context(), client.ClientID, rng.Start, rng.End)
	})
}

// GetByClient returns any client's appointments in the requested range.
// Admin only.
// GET /v1/trainer-appointment/{client_id}?range=<iso>&range=<iso>
func (h *Handler) GetByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(chi.URLParam(r, "client_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "client_id must be a number")
		return
	}

	rng, err := parseRangeQuery(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "range must be two ISO timestamps")
		return
	}

	h.respond(w, r, func() ([]*domain.AppointmentDetails, error) {
		return h.appointments.GetByClientID(r.Context(), clientID, rng.Start, rng.End)
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fetch func() ([]*domain.AppointmentDetails, error)) {
	appointments, err := fetch()
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{
		"success":              true,
		"trainer_appointments": appointments,
	})
}

// Create books a trainer appointment, charging the slot price to the
// caller's bank card in the same transaction.
// POST /v1/trainer-appointment
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	appointedAt, err := time.Parse(time.RFC3339, req.AppointedAt)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "appointed_at must be an ISO timestamp")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "ends_at must be an ISO timestamp")
		return
	}
	if !endsAt.After(appointedAt) {
		httputil.Error(w, http.StatusBadRequest, "ends_at must be after appointed_at")
		return
	}

	card, err := h.bankCards.GetByID(r.Context(), req.BankCardID)
	if err != nil {
		if errors.Is(err, domain.ErrBankCardNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to load bank card", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load bank card")
		return
	}
	if card.ClientID != client.ClientID {
		httputil.Unauthorized(w)
		return
	}

	trainer, err := h.employees.GetByID(r.Context(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to load trainer", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load trainer")
		return
	}
	if trainer.LeftAt != nil {
		httputil.Error(w, http.StatusBadRequest, "Trainer is no longer employed")
		return
	}

	price := pricing.AppointmentPrice(appointedAt, endsAt)

	appointment, err := h.payments.CreateAppointment(r.Context(), client.ClientID, req.EmployeeID, req.GymID, req.BankCardID, appointedAt, endsAt, price)
	if err != nil {
		h.logger.Error("failed to book appointment", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to book appointment")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"trainer_appointment": appointment,
	})
}

// Delete cancels an upcoming appointment identified in the request body.
// DELETE /v1/trainer-appointment
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

	h.cancel(w, r, req.TrainerAppointmentID)
}

// DeleteByID cancels an upcoming appointment identified in the path.
// DELETE /v1/trainer-appointment/{trainer_appointment_id}
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(chi.URLParam(r, "trainer_appointment_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "trainer_appointment_id must be a number")
		return
	}

	h.cancel(w, r, appointmentID)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request, appointmentID int64) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	appointment, err := h.appointments.GetByID(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to load appointment", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load appointment")
		return
	}

	if appointment.ClientID != client.ClientID && !h.isAdmin(r) {
		httputil.Unauthorized(w)
		return
	}

	if err := h.appointments.Revoke(r.Context(), appointmentID); err != nil {
		if errors.Is(err, domain.ErrAppointmentNotFound) {
			httputil.Error(w, http.StatusBadRequest, "Appointment already started or revoked")
			return
		}
		h.logger.Error("failed to revoke appointment", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to revoke appointment")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) isAdmin(r *http.Request) bool {
	// The Admin middleware has already resolved the employee on admin
	// routes; elsewhere the token is checked against the session store.
	if employee, ok := middleware.GetEmployee(r.Context()); ok {
		return employee.IsAdmin()
	}
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		return false
	}
	_, employee, err := h.sessions.AuthenticateEmployee(r.Context(), token)
	return err == nil && employee.IsAdmin()
}

func parseRangeQuery(r *http.Request) (visitgraph.Range, error) {
	values := r.URL.Query()["range"]
	if len(values) != 2 {
		return visitgraph.Range{}, domain.ErrInvalidRange
	}
	return visitgraph.ParseRange(values[0], values[1])
}
