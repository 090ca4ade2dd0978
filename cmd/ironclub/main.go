package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ironclub/ironclub-api/internal/config"
	ironhttp "github.com/ironclub/ironclub-api/internal/http"
	"github.com/ironclub/ironclub-api/pkg/auth"
	"github.com/ironclub/ironclub-api/pkg/repository"
	"github.com/ironclub/ironclub-api/pkg/visitgraph"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database ready", "host", cfg.DBHost, "name", cfg.DBName)

	clients := repository.NewClientsRepository(db)
	sessions := repository.NewSessionsRepository(db)
	memberships := repository.NewMembershipsRepository(db)
	bankCards := repository.NewBankCardsRepository(db)
	gyms := repository.NewGymsRepository(db)
	visits := repository.NewVisitsRepository(db)
	employees := repository.NewEmployeesRepository(db)
	payments := repository.NewPaymentsRepository(db)
	appointments := repository.NewAppointmentsRepository(db)

	var hasher auth.PasswordHasher
	switch cfg.PasswordHasher {
	case config.HasherArgon2id:
		hasher = auth.NewArgon2Hasher()
	default:
		hasher = auth.NewHMACHasher([]byte(cfg.PasswordSalt))
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret))
	sessionService := auth.NewSessionService(auth.SessionConfig{
		SessionTTL:      cfg.SessionTTL,
		VerifySignature: cfg.VerifySignature,
	}, tokens, sessions, clients, employees)

	mode := visitgraph.ModeElapsedDays
	if cfg.GraphDayCount == config.DayCountDayOfMonth {
		mode = visitgraph.ModeDayOfMonthDiff
	}
	aggregator := visitgraph.New(mode)

	router := ironhttp.NewRouter(ironhttp.Deps{
		Logger:     logger,
		Config:     cfg,
		Sessions:   sessionService,
		Hasher:     hasher,
		Aggregator: aggregator,

		Clients:      clients,
		BankCards:    bankCards,
		Memberships:  memberships,
		Gyms:         gyms,
		Visits:       visits,
		Employees:    employees,
		Payments:     payments,
		Appointments: appointments,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
