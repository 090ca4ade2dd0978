package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ironclub/ironclub-api/internal/config"
	"github.com/ironclub/ironclub-api/internal/http/features/appointment"
	"github.com/ironclub/ironclub-api/internal/http/features/bankcard"
	"github.com/ironclub/ironclub-api/internal/http/features/client"
	"github.com/ironclub/ironclub-api/internal/http/features/employee"
	"github.com/ironclub/ironclub-api/internal/http/features/gym"
	"github.com/ironclub/ironclub-api/internal/http/features/membership"
	"github.com/ironclub/ironclub-api/internal/http/features/payment"
	"github.com/ironclub/ironclub-api/internal/http/middleware"
	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/pkg/auth"
	"github.com/ironclub/ironclub-api/pkg/repository"
	"github.com/ironclub/ironclub-api/pkg/visitgraph"
)

// Deps carries everything the router needs to assemble the API.
type Deps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Sessions   *auth.SessionService
	Hasher     auth.PasswordHasher
	Aggregator *visitgraph.Aggregator

	Clients      *repository.ClientsRepository
	BankCards    *repository.BankCardsRepository
	Memberships  *repository.MembershipsRepository
	Gyms         *repository.GymsRepository
	Visits       *repository.VisitsRepository
	Employees    *repository.EmployeesRepository
	Payments     *repository.PaymentsRepository
	Appointments *repository.AppointmentsRepository
}

// NewRouter wires middleware, handlers and routes.
func NewRouter(d Deps) http.Handler {
	globalLimiter, authLimiter := middleware.CreateRateLimiters(d.Config.RateLimit, d.Logger)

	passwordPolicy := auth.NewPasswordPolicy(d.Config.PasswordPolicy)
	clientHandler := client.NewHandler(d.Logger, d.Clients, d.Sessions, d.Hasher, passwordPolicy)
	bankCardHandler := bankcard.NewHandler(d.Logger, d.BankCards)
	membershipHandler := membership.NewHandler(d.Logger, d.Memberships, d.BankCards, d.Payments)
	gymHandler := gym.NewHandler(d.Logger, d.Gyms, d.Visits, d.Sessions, d.Aggregator)
	appointmentHandler := appointment.NewHandler(d.Logger, d.Appointments, d.Employees, d.BankCards, d.Payments, d.Sessions)
	employeeHandler := employee.NewHandler(d.Logger, d.Employees, d.Clients)
	paymentHandler := payment.NewHandler(d.Logger, d.Payments)

	r := chi.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.SecurityHeaders(d.Config.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(d.Config.MaxRequestBodySize))
	r.Use(globalLimiter)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Public routes. Login and registration get the stricter limiter.
		r.Group(func(r chi.Router) {
			r.Use(authLimiter)
			r.Post("/client/register", clientHandler.Register)
			r.Post("/client/login", clientHandler.Login)
		})

		r.Route("/gym", func(r chi.Router) {
			r.Get("/", gymHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(d.Sessions))
				r.Post("/visit", gymHandler.Enter)
				r.Delete("/visit", gymHandler.Leave)
				r.Get("/history", gymHandler.History)
				r.Get("/history/{client_id}", gymHandler.HistoryByClient)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Admin(d.Sessions))
					r.Post("/", gymHandler.Add)
					r.Delete("/", gymHandler.Delete)
					r.Delete("/{gym_id}", gymHandler.DeleteByID)
				})
			})
		})

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.Sessions))

			r.Route("/client", func(r chi.Router) {
				r.Get("/", clientHandler.Me)
				r.Delete("/signout", clientHandler.SignOut)
				r.Delete("/signout/all", clientHandler.SignOutAll)
				r.Get("/all", clientHandler.All)
				r.Get("/{client_id}", clientHandler.GetByID)
			})

			r.Route("/bank-card", func(r chi.Router) {
				r.Get("/", bankCardHandler.List)
				r.Post("/", bankCardHandler.Add)
				r.Delete("/", bankCardHandler.Delete)
				r.Delete("/{bank_card_id}", bankCardHandler.DeleteByID)
			})

			r.Route("/membership", func(r chi.Router) {
				r.Post("/", membershipHandler.Subscribe)
				r.Delete("/", membershipHandler.Cancel)
				r.Get("/active", membershipHandler.Active)
				r.Post("/freeze", membershipHandler.Freeze)
				r.Delete("/freeze/{membership_id}", membershipHandler.Unfreeze)
			})

			r.Route("/trainer-appointment", func(r chi.Router) {
				r.Get("/", appointmentHandler.Get)
				r.Post("/", appointmentHandler.Create)
				r.Delete("/", appointmentHandler.Delete)
				r.Delete("/{trainer_appointment_id}", appointmentHandler.DeleteByID)

				r.With(middleware.Admin(d.Sessions)).Get("/{client_id}", appointmentHandler.GetByClient)
			})

			r.Route("/employee", func(r chi.Router) {
				r.Use(middleware.Admin(d.Sessions))
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Promote)
				r.Delete("/", employeeHandler.Fire)
				r.Delete("/{employee_id}", employeeHandler.FireByID)
			})

			r.Get("/payment-history", paymentHandler.List)
		})
	})

	return r
}
