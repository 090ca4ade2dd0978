package employee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/internal/validate"
	"github.com/ironclub/ironclub-api/pkg/domain"
	"github.com/ironclub/ironclub-api/pkg/repository"
)

// Handler handles staff management. All routes are admin only.
type Handler struct {
	logger    *slog.Logger
	employees *repository.EmployeesRepository
	clients   *repository.ClientsRepository
}

// NewHandler creates a new employee handler.
func NewHandler(logger *slog.Logger, employees *repository.EmployeesRepository, clients *repository.ClientsRepository) *Handler {
	return &Handler{logger: logger, employees: employees, clients: clients}
}

// PromoteRequest grants a client account a staff role.
type PromoteRequest struct {
	ClientID     int64  `json:"client_id" validate:"required,gt=0"`
	EmployeeType string `json:"employee_type" validate:"required,oneof=ADMIN INSTRUCTOR TRAINER"`
}

// FireRequest identifies the employee to let go.
type FireRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
}

// List returns every employee joined with their client profile.
// GET /v1/employee
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.GetExpanded(r.Context())
	if err != nil {
		h.logger.Error("failed to list employees", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list employees")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "employees": employees})
}

// Promote creates an employee record for an existing client.
// POST /v1/employee
func (h *Handler) Promote(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.clients.GetByID(r.Context(), req.ClientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to load client", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load client")
		return
	}

	if _, err := h.employees.GetActiveByClientID(r.Context(), req.ClientID); err == nil {
		httputil.Error(w, http.StatusBadRequest, "Client is already an employee")
		return
	} else if !errors.Is(err, domain.ErrEmployeeNotFound) {
		h.logger.Error("failed to check employee", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to check employee")
		return
	}

	employee := &domain.Employee{
		ClientID:     req.ClientID,
		EmployeeType: domain.EmployeeType(req.EmployeeType),
	}
	if err := h.employees.Create(r.Context(), employee); err != nil {
		h.logger.Error("failed to create employee", "error", err, "client_id", req.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create employee")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "employee": employee})
}

// Fire marks the employee in the request body as having left.
// DELETE /v1/employee
func (h *Handler) Fire(w http.ResponseWriter, r *http.Request) {
	var req FireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.fire(w, r, req.EmployeeID)
}

// FireByID marks the employee in the path as having left.
// DELETE /v1/employee/{employee_id}
func (h *Handler) FireByID(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employee_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "employee_id must be a number")
		return
	}

	h.fire(w, r, employeeID)
}

func (h *Handler) fire(w http.ResponseWriter, r *http.Request, employeeID int64) {
	if err := h.employees.Fire(r.Context(), employeeID); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to fire employee", "error", err, "employee_id", employeeID)
		httputil.Error(w, http.StatusInternalServerError, "failed to fire employee")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}
