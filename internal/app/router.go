package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ridebook/internal/auth"
	"ridebook/internal/domain"
	"ridebook/internal/handler"
	"ridebook/internal/middleware"
	"ridebook/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	FavoritesHandler    *handler.FavoritesHandler
	AdminHandler        *handler.AdminHandler
	BookingHandler      *handler.BookingHandler
	DriverHandler       *handler.DriverHandler
	UserHandler         *handler.UserHandler
	AuthHandler         *handler.AuthHandler
	SubscriptionHandler *handler.SubscriptionHandler
	AllowedOrigins      []string
	Issuer              *auth.Issuer // nil disables authentication
	IdempotencyStore    redis.IdempotencyStoreInterface // nil disables replay
	NewRelicApp         *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributesMiddleware())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	staff := middleware.RequireRole(deps.Issuer, domain.UserRoleDriver, domain.UserRoleOperator, domain.UserRoleAdmin)
	admin := middleware.RequireRole(deps.Issuer, domain.UserRoleAdmin)

	// Attached after the role guards on each route.
	idempotent := middleware.IdempotencyMiddleware(deps.IdempotencyStore)

	api := router.Group("/api")
	{
		api.POST("/auth/guest", deps.AuthHandler.GuestLogin)

		// User routes.
		users := api.Group("/users")
		{
			users.POST("", idempotent, deps.UserHandler.Register)
			users.GET("/:id", deps.UserHandler.Get)

			users.POST("/favorite-locations/add", idempotent, deps.FavoritesHandler.AddFavoriteLocation)
			users.POST("/saved-routes/add", idempotent, deps.FavoritesHandler.AddSavedRoute)
			users.POST("/generate-admin-id", admin, idempotent, deps.AdminHandler.GenerateAdminID)

			users.GET("/:id/favorite-locations", deps.FavoritesHandler.ListFavoriteLocations)
			users.GET("/:id/saved-routes", deps.FavoritesHandler.ListSavedRoutes)
			users.GET("/:id/favorite-drivers", deps.FavoritesHandler.ListFavoriteDrivers)
			users.POST("/:id/favorite-drivers", idempotent, deps.FavoritesHandler.AddFavoriteDriver)
			users.GET("/:id/subscribe", deps.SubscriptionHandler.Subscribe)
		}

		api.POST("/bookings", idempotent, deps.BookingHandler.CreateBooking)

		// Operator routes.
		operator := api.Group("/operator", staff, idempotent)
		{
			operator.GET("/bookings", deps.BookingHandler.ListBookings)
			operator.GET("/bookings/:id", deps.BookingHandler.GetBooking)
			operator.POST("/bookings/:id", deps.BookingHandler.UpdateBooking)
		}

		// Driver routes.
		drivers := api.Group("/drivers")
		{
			drivers.GET("/nearby", deps.DriverHandler.NearbyDrivers)
			drivers.POST("/:id/availability", idempotent, deps.DriverHandler.SetAvailability)
			drivers.POST("/:id/location", idempotent, deps.DriverHandler.UpdateLocation)
			drivers.GET("/:id/ride-requests", deps.DriverHandler.RideRequests)
		}
	}

	return router
}
