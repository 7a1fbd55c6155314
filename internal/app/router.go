package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/akuprof/fleetmanager/internal/domain"
	"github.com/akuprof/fleetmanager/internal/handler"
	"github.com/akuprof/fleetmanager/internal/middleware"
	internalRedis "github.com/akuprof/fleetmanager/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler        *handler.AuthHandler
	VehicleHandler     *handler.VehicleHandler
	DriverHandler      *handler.DriverHandler
	TripHandler        *handler.TripHandler
	ExpenseHandler     *handler.ExpenseHandler
	PayoutHandler      *handler.PayoutHandler
	ReportHandler      *handler.ReportHandler
	DashboardHandler   *handler.DashboardHandler
	AlertHandler       *handler.AlertHandler
	MaintenanceHandler *handler.MaintenanceHandler
	DutyHandler        *handler.DutyHandler
	SessionStore       internalRedis.SessionStoreInterface
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := string(domain.UserRoleAdmin)
	manager := string(domain.UserRoleManager)
	driver := string(domain.UserRoleDriver)

	authed := middleware.AuthMiddleware(deps.SessionStore)
	managersOnly := middleware.RequireRole(admin, manager)
	anyRole := middleware.RequireRole(admin, manager, driver)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", authed, deps.AuthHandler.Logout)
			auth.GET("/me", authed, deps.AuthHandler.Me)
			auth.POST("/register", authed, middleware.RequireRole(admin), deps.AuthHandler.Register)
		}

		// Dashboard routes.
		dashboard := v1.Group("/dashboard", authed, managersOnly)
		{
			dashboard.GET("/metrics", deps.DashboardHandler.GetMetrics)
			dashboard.GET("/top-vehicles", deps.DashboardHandler.GetTopVehicles)
			dashboard.GET("/recent-trips", deps.DashboardHandler.GetRecentTrips)
		}

		// Report routes.
		v1.GET("/reports", authed, managersOnly, deps.ReportHandler.GetReport)

		// Vehicle routes.
		vehicles := v1.Group("/vehicles", authed, managersOnly)
		{
			vehicles.POST("", deps.VehicleHandler.CreateVehicle)
			vehicles.GET("", deps.VehicleHandler.ListVehicles)
			vehicles.GET("/assignments", deps.VehicleHandler.ListAssignments)
			vehicles.GET("/:id", deps.VehicleHandler.GetVehicle)
			vehicles.PATCH("/:id", deps.VehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", deps.VehicleHandler.DeleteVehicle)
			vehicles.POST("/:id/assign", deps.VehicleHandler.AssignDriver)
		}

		// Driver routes.
		drivers := v1.Group("/drivers", authed, managersOnly)
		{
			drivers.POST("", deps.DriverHandler.CreateDriver)
			drivers.GET("", deps.DriverHandler.ListDrivers)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.PATCH("/:id", deps.DriverHandler.UpdateDriver)
			drivers.DELETE("/:id", deps.DriverHandler.DeleteDriver)
		}

		// Trip routes. Drivers can list their own trips; mutations are
		// manager-only.
		trips := v1.Group("/trips", authed)
		{
			trips.GET("", anyRole, deps.TripHandler.ListTrips)
			trips.GET("/:id", anyRole, deps.TripHandler.GetTrip)
			trips.POST("", managersOnly, deps.TripHandler.CreateTrip)
			trips.PATCH("/:id", managersOnly, deps.TripHandler.UpdateTrip)
			trips.DELETE("/:id", managersOnly, deps.TripHandler.DeleteTrip)
		}

		// Expense routes.
		expenses := v1.Group("/expenses", authed, managersOnly)
		{
			expenses.POST("", deps.ExpenseHandler.CreateExpense)
			expenses.GET("", deps.ExpenseHandler.ListExpenses)
			expenses.GET("/:id", deps.ExpenseHandler.GetExpense)
			expenses.PATCH("/:id", deps.ExpenseHandler.UpdateExpense)
			expenses.DELETE("/:id", deps.ExpenseHandler.DeleteExpense)
		}

		// Payout routes. Drivers can view their own payouts.
		payouts := v1.Group("/payouts", authed)
		{
			payouts.GET("", anyRole, deps.PayoutHandler.ListPayouts)
			payouts.GET("/pending", managersOnly, deps.PayoutHandler.ListPending)
			payouts.GET("/:id", anyRole, deps.PayoutHandler.GetPayout)
			payouts.POST("/generate", managersOnly, deps.PayoutHandler.GeneratePayout)
			payouts.POST("/:id/paid", managersOnly, deps.PayoutHandler.MarkPaid)
			payouts.POST("/:id/failed", managersOnly, deps.PayoutHandler.MarkFailed)
		}

		// Alert routes.
		alerts := v1.Group("/alerts", authed, managersOnly)
		{
			alerts.GET("", deps.AlertHandler.ListAlerts)
			alerts.POST("/scan", deps.AlertHandler.ScanDocuments)
			alerts.POST("/:id/read", deps.AlertHandler.MarkRead)
		}

		// Maintenance routes.
		maintenance := v1.Group("/maintenance", authed, managersOnly)
		{
			maintenance.POST("", deps.MaintenanceHandler.CreateMaintenanceLog)
			maintenance.GET("", deps.MaintenanceHandler.ListMaintenanceLogs)
			maintenance.GET("/:id", deps.MaintenanceHandler.GetMaintenanceLog)
			maintenance.PATCH("/:id", deps.MaintenanceHandler.UpdateMaintenanceLog)
			maintenance.DELETE("/:id", deps.MaintenanceHandler.DeleteMaintenanceLog)
		}

		// Duty routes.
		duty := v1.Group("/duty", authed, anyRole)
		{
			duty.POST("/start", deps.DutyHandler.StartDuty)
			duty.POST("/end", deps.DutyHandler.EndDuty)
			duty.GET("/history", deps.DutyHandler.DutyHistory)
		}
	}

	return router
}
