package gym

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
	"github.com/ironclub/ironclub-api/pkg/visitgraph"
)

// Handler handles gym locations, visit tracking and visit history graphs.
type Handler struct {
	logger     *slog.Logger
	gyms       *repository.GymsRepository
	visits     *repository.VisitsRepository
	sessions   middleware.Authenticator
	aggregator *visitgraph.Aggregator
}

// NewHandler creates a new gym handler.
func NewHandler(logger *slog.Logger, gyms *repository.GymsRepository, visits *repository.VisitsRepository, sessions middleware.Authenticator, aggregator *visitgraph.Aggregator) *Handler {
	return &Handler{
		logger:     logger,
		gyms:       gyms,
		visits:     visits,
		sessions:   sessions,
		aggregator: aggregator,
	}
}

// AddRequest mirrors the gym input schema.
type AddRequest struct {
	City        string `json:"city" validate:"required,max=64"`
	Street      string `json:"street" validate:"required,max=64"`
	Building    string `json:"building" validate:"required,max=64"`
	Description string `json:"description" validate:"required"`
}

// DeleteRequest identifies the gym to remove.
type DeleteRequest struct {
	GymID int64 `json:"gym_id" validate:"required,gt=0"`
}

// EnterRequest records a gym entry. client_id may only be set by an admin
// entering a visit on behalf of a client.
type EnterRequest struct {
	GymID    int64 `json:"gym_id" validate:"required,gt=0"`
	ClientID int64 `json:"client_id" validate:"omitempty,gt=0"`
}

// LeaveRequest closes an open visit at the named gym.
type LeaveRequest struct {
	GymID int64 `json:"gym_id" validate:"required,gt=0"`
}

// List returns every gym location. Public.
// GET /v1/gym
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	gyms, err := h.gyms.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list gyms", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to list gyms")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "gyms": gyms})
}

// Add creates a gym location. Admin only.
// POST /v1/gym
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	gym := &domain.Gym{
		City:        req.City,
		Street:      req.Street,
		Building:    req.Building,
		Description: req.Description,
	}
	if err := h.gyms.Create(r.Context(), gym); err != nil {
		h.logger.Error("failed to create gym", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create gym")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "gym": gym})
}

// Delete removes a gym identified in the request body. Admin only.
// DELETE /v1/gym
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

	h.deleteGym(w, r, req.GymID)
}

// DeleteByID removes a gym identified in the path. Admin only.
// DELETE /v1/gym/{gym_id}
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	gymID, err := strconv.ParseInt(chi.URLParam(r, "gym_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "gym_id must be a number")
		return
	}

	h.deleteGym(w, r, gymID)
}

func (h *Handler) deleteGym(w http.ResponseWriter, r *http.Request, gymID int64) {
	if err := h.gyms.Delete(r.Context(), gymID); err != nil {
		if errors.Is(err, domain.ErrGymNotFound) {
			httputil.Error(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("failed to delete gym", "error", err, "gym_id", gymID)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete gym")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Enter records a gym entry for the authenticated client, or for another
// client when requested by an admin.
// POST /v1/gym/visit
func (h *Handler) Enter(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	var req EnterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	targetID := client.ClientID
	if req.ClientID != 0 && req.ClientID != client.ClientID {
		if !h.isAdmin(r) {
			httputil.Unauthorized(w)
			return
		}
		targetID = req.ClientID
	}

	visit, err := h.visits.Enter(r.Context(), req.GymID, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInGym) {
			httputil.Error(w, http.StatusBadRequest, "Already in the gym")
			return
		}
		h.logger.Error("failed to record entry", "error", err, "client_id", targetID)
		httputil.Error(w, http.StatusInternalServerError, "failed to record entry")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "visit_history": visit})
}

// Leave closes the authenticated client's open visit at the named gym.
// DELETE /v1/gym/visit
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	var req LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	visit, err := h.visits.Leave(r.Context(), req.GymID, client.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotInGym) {
			httputil.Error(w, http.StatusBadRequest, "No open gym visit")
			return
		}
		h.logger.Error("failed to record exit", "error", err, "client_id", client.ClientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to record exit")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "visit_history": visit})
}

// History returns the authenticated client's visit history and per-day
// duration graph for the requested range.
// GET /v1/gym/history?range=<iso>&range=<iso>
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	client, ok := middleware.GetClient(r.Context())
	if !ok {
		httputil.Unauthorized(w)
		return
	}

	h.history(w, r, client.ClientID)
}

// HistoryByClient returns any client's visit history and graph.
// GET /v1/gym/history/{client_id}?range=<iso>&range=<iso>
func (h *Handler) HistoryByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseInt(chi.URLParam(r, "client_id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "client_id must be a number")
		return
	}

	h.history(w, r, clientID)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request, clientID int64) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "range must be two ISO timestamps")
		return
	}

	visits, err := h.visits.History(r.Context(), clientID, rng.Start, rng.End)
	if err != nil {
		h.logger.Error("failed to load visit history", "error", err, "client_id", clientID)
		httputil.Error(w, http.StatusInternalServerError, "failed to load visit history")
		return
	}

	graph, err := h.aggregator.Aggregate(visits, rng)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "range must not end before it starts")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"visit_history": visits,
		"graph":         graph,
	})
}

// parseRangeQuery reads the repeated `range` query parameter as an
// inclusive [start, end] timestamp pair.
func parseRangeQuery(r *http.Request) (visitgraph.Range, error) {
	values := r.URL.Query()["range"]
	if len(values) != 2 {
		return visitgraph.Range{}, domain.ErrInvalidRange
	}
	return visitgraph.ParseRange(values[0], values[1])
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
