// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shivanand-hulikatti/event-booking/internal/auth"
	"github.com/Shivanand-hulikatti/event-booking/internal/config"
	"github.com/Shivanand-hulikatti/event-booking/internal/handler"
	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/Shivanand-hulikatti/event-booking/internal/notify"
	"github.com/Shivanand-hulikatti/event-booking/internal/repository"
	"github.com/Shivanand-hulikatti/event-booking/internal/service"
	"github.com/Shivanand-hulikatti/event-booking/internal/store"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.App.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	ctx := context.Background()

	// ── 1. Open the document store ───────────────────────────────────────
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("open %s store: %v", cfg.Store.Driver, err))
	}
	defer st.Close()
	log.Info("STORE", fmt.Sprintf("Using %s store", cfg.Store.Driver))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	var seed *repository.Dataset
	if cfg.App.SeedDemoData {
		seed = repository.Seed()
	}
	repo := repository.New(st, seed, log)

	authz, err := auth.NewSharedSecret(cfg.Auth.AdminSecret, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal("AUTH", err.Error())
	}

	var publisher notify.Publisher = notify.NewLogPublisher(log)
	if cfg.Kafka.Enabled {
		publisher = notify.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info("NOTIFY", fmt.Sprintf("Publishing to kafka topic %s", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	core := service.NewCore(repo, publisher, clockwork.NewRealClock(), log, cfg.App.Location)
	h := handler.New(
		service.NewEventService(core, authz),
		service.NewBookingService(core),
		service.NewUserService(core),
		log,
	)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.NewRouter(h, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("SERVER", fmt.Sprintf("Listening on http://localhost:%s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until SIGINT, SIGTERM or a listener failure.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("SERVER", err.Error())
	}

	log.Info("SERVER", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("SERVER", fmt.Sprintf("graceful shutdown failed: %v", err))
	}
	log.Info("SERVER", "Server stopped")
}
