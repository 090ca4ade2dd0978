package gym

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ironclub/ironclub-api/internal/http/middleware"
	"github.com/ironclub/ironclub-api/pkg/domain"
	"github.com/ironclub/ironclub-api/pkg/visitgraph"
)

type denyAll struct{}

func (denyAll) Authenticate(context.Context, string) (*domain.Client, error) {
	return nil, domain.ErrUnauthorized
}

func (denyAll) AuthenticateEmployee(context.Context, string) (*domain.Client, *domain.Employee, error) {
	return nil, nil, domain.ErrUnauthorized
}

func testHandler() *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, nil, nil, denyAll{}, visitgraph.New(visitgraph.ModeElapsedDays))
}

func authed(req *http.Request, clientID int64) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ClientKey, &domain.Client{ClientID: clientID})
	ctx = context.WithValue(ctx, middleware.TokenKey, "token")
	return req.WithContext(ctx)
}

func TestHistoryRangeValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "no range", query: ""},
		{name: "single range value", query: "?range=2024-03-01T00:00:00Z"},
		{name: "three range values", query: "?range=2024-03-01T00:00:00Z&range=2024-03-02T00:00:00Z&range=2024-03-03T00:00:00Z"},
		{name: "unparseable", query: "?range=yesterday&range=today"},
	}

	h := testHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/gym/history"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.History(rec, authed(req, 1))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHistoryRequiresClient(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/v1/gym/history", nil)
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestEnterValidation(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/gym/visit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Enter(rec, authed(req, 1))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body.Error, "gym_id is required") {
		t.Errorf("error = %q, want gym_id is required", body.Error)
	}
}

func TestEnterOnBehalfRequiresAdmin(t *testing.T) {
	// The authenticator rejects everyone, so naming another client must 401.
	h := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/v1/gym/visit", strings.NewReader(`{"gym_id":1,"client_id":99}`))
	rec := httptest.NewRecorder()

	h.Enter(rec, authed(req, 1))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLeaveValidation(t *testing.T) {
	// An exit names the gym being left, like an entry does.
	h := testHandler()

	req := httptest.NewRequest(http.MethodDelete, "/v1/gym/visit", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Leave(rec, authed(req, 1))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body.Error, "gym_id is required") {
		t.Errorf("error = %q, want gym_id is required", body.Error)
	}
}

type allowAdmin struct{}

func (allowAdmin) Authenticate(context.Context, string) (*domain.Client, error) {
	return &domain.Client{ClientID: 1}, nil
}

func (allowAdmin) AuthenticateEmployee(context.Context, string) (*domain.Client, *domain.Employee, error) {
	return &domain.Client{ClientID: 1}, &domain.Employee{EmployeeType: domain.EmployeeAdmin}, nil
}

func TestEnterOnBehalfUsesContextEmployee(t *testing.T) {
	// A non-admin employee already resolved by the middleware decides the
	// check; the session store is not consulted again.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, nil, nil, allowAdmin{}, visitgraph.New(visitgraph.ModeElapsedDays))

	req := httptest.NewRequest(http.MethodPost, "/v1/gym/visit", strings.NewReader(`{"gym_id":1,"client_id":99}`))
	ctx := context.WithValue(req.Context(), middleware.ClientKey, &domain.Client{ClientID: 1})
	ctx = context.WithValue(ctx, middleware.EmployeeKey, &domain.Employee{EmployeeType: domain.EmployeeTrainer})
	rec := httptest.NewRecorder()

	h.Enter(rec, req.WithContext(ctx))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
