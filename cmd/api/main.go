package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/albarakah/voyages/internal/api"
	"github.com/albarakah/voyages/internal/cache"
	"github.com/albarakah/voyages/internal/kafka"
	"github.com/albarakah/voyages/internal/notify"
	"github.com/albarakah/voyages/internal/ports"
	"github.com/albarakah/voyages/internal/repository"
	"github.com/albarakah/voyages/internal/service"
	"github.com/albarakah/voyages/internal/utils"
	"github.com/albarakah/voyages/pkg/config"
	"github.com/albarakah/voyages/pkg/health"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config   *config.Config
	server   *http.Server
	db       *pgxpool.Pool
	cache    *cache.TripCache
	producer *kafka.Producer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	a.cache = cache.NewTripCache(
		a.config.Redis.Addr,
		a.config.Redis.Password,
		a.config.Redis.DB,
		a.config.Redis.TripsTTL,
	)
	a.producer = kafka.NewProducer(a.config.Kafka.Brokers)

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
}

func (a *App) setupServices() Services {
	repo := repository.NewBookingRepository(a.db)
	notifier := notify.NewClient(
		notify.WithBaseURL(a.config.Notifier.BaseURL),
		notify.WithAPIKey(a.config.Notifier.APIKey),
	)

	return Services{
		BookingService: service.NewBookingService(
			repo,
			notifier,
			service.WithTripCache(a.cache),
			service.WithRetryPublisher(a.producer, a.config.Kafka.RetryTopic),
		),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()
	const versionPrefix = "/v1"

	router.HandleFunc(versionPrefix+"/health", health.HealthGet())

	bookingHandler := utilsChain(api.BookingHandler(services.BookingService), "POST", "GET")
	router.HandleFunc(versionPrefix+"/bookings", bookingHandler)

	tripsHandler := utilsChain(api.TripsHandler(services.BookingService), "GET")
	router.HandleFunc(versionPrefix+"/trips", tripsHandler)

	contactHandler := utilsChain(api.ContactHandler(services.BookingService), "POST")
	router.HandleFunc(versionPrefix+"/contact", contactHandler)

	return router
}

func utilsChain(next http.HandlerFunc, methods ...string) http.HandlerFunc {
	return utils.AllowedMethods(
		utils.AllowedContentTypes(next, "application/json"),
		methods...,
	)
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		log.Println("Starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.producer != nil {
		a.producer.Close()
	}
	if a.cache != nil {
		a.cache.Close()
	}
	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := NewApp(cfg)
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
