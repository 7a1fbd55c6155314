package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/akuprof/fleetmanager/internal/app"
	"github.com/akuprof/fleetmanager/internal/config"
	"github.com/akuprof/fleetmanager/internal/handler"
	internalRedis "github.com/akuprof/fleetmanager/internal/redis"
	"github.com/akuprof/fleetmanager/internal/repository/postgres"
	"github.com/akuprof/fleetmanager/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	payoutRepo := postgres.NewPayoutRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	maintenanceRepo := postgres.NewMaintenanceRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	dutyLogRepo := postgres.NewDutyLogRepository(db)

	// Initialize services.
	authService := service.NewAuthService(userRepo, driverRepo, sessionStore, cfg.Auth.BcryptCost)
	vehicleService := service.NewVehicleService(db, vehicleRepo, driverRepo, assignmentRepo, cacheStore)
	driverService := service.NewDriverService(driverRepo)
	tripService := service.NewTripService(db, tripRepo, vehicleRepo, driverRepo, cacheStore)
	expenseService := service.NewExpenseService(expenseRepo, vehicleRepo, cacheStore)
	payoutService := service.NewPayoutService(payoutRepo, tripRepo, driverRepo, lockStore)
	reportService := service.NewReportService(tripRepo, vehicleRepo, driverRepo, expenseRepo)
	dashboardService := service.NewDashboardService(tripRepo, vehicleRepo, driverRepo, expenseRepo, cacheStore)
	alertService := service.NewAlertService(alertRepo, vehicleRepo)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
	dutyService := service.NewDutyService(db, dutyLogRepo, assignmentRepo, driverRepo, vehicleRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	driverHandler := handler.NewDriverHandler(driverService)
	tripHandler := handler.NewTripHandler(tripService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	alertHandler := handler.NewAlertHandler(alertService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	dutyHandler := handler.NewDutyHandler(dutyService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:        authHandler,
		VehicleHandler:     vehicleHandler,
		DriverHandler:      driverHandler,
		TripHandler:        tripHandler,
		ExpenseHandler:     expenseHandler,
		PayoutHandler:      payoutHandler,
		ReportHandler:      reportHandler,
		DashboardHandler:   dashboardHandler,
		AlertHandler:       alertHandler,
		MaintenanceHandler: maintenanceHandler,
		DutyHandler:        dutyHandler,
		SessionStore:       sessionStore,
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
