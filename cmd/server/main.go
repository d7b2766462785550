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
	"go.mongodb.org/mongo-driver/mongo"

	"ridebook/internal/app"
	"ridebook/internal/auth"
	"ridebook/internal/config"
	"ridebook/internal/events"
	"ridebook/internal/handler"
	"ridebook/internal/realtime"
	internalRedis "ridebook/internal/redis"
	"ridebook/internal/service"
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

	// Initialize the document store.
	var repos app.Repositories
	switch cfg.Store.Backend {
	case config.StoreBackendMongo:
		mongoClient, db, err := app.NewMongoDatabase(ctx, cfg.Mongo)
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		defer disconnectMongo(mongoClient)
		repos = app.NewMongoRepositories(db)
		log.Println("Connected to MongoDB")
	case config.StoreBackendPostgres:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer closeDatabase(db)
		repos = app.NewPostgresRepositories(db)
		log.Println("Connected to PostgreSQL")
	default:
		log.Fatalf("unknown STORE_BACKEND %q (want %q or %q)", cfg.Store.Backend, config.StoreBackendPostgres, config.StoreBackendMongo)
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Booking events go to Kafka only when brokers are configured.
	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Printf("failed to close kafka writer: %v", err)
			}
		}()
		publisher = kafkaPublisher
		log.Printf("Publishing booking events to %s", cfg.Kafka.BookingTopic)
	}

	var issuer *auth.Issuer
	if cfg.Auth.Enabled() {
		issuer = auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	} else {
		log.Println("AUTH_SECRET is empty: authentication is disabled")
	}

	hub := realtime.NewHub()
	defer hub.Close()

	// Wire dependencies.
	server := wireServer(repos, redisClient, publisher, hub, issuer, nrApp, cfg)

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

	// Live subscriptions are hijacked connections that Shutdown does not wait for.
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(cfg.Server.ShutdownTimeout)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	repos app.Repositories,
	redisClient *redis.Client,
	publisher service.EventPublisher,
	hub *realtime.Hub,
	issuer *auth.Issuer,
	nrApp *newrelic.Application,
	cfg *config.Config,
) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize services.
	notificationService := service.NewNotificationService(publisher)
	identifierService := service.NewIdentifierService(repos.Counters)
	favoritesService := service.NewFavoritesService(repos.FavoriteLocations, repos.SavedRoutes, repos.FavoriteDrivers, repos.Users, hub)
	bookingService := service.NewBookingService(repos.Bookings, lockStore, cacheStore, notificationService)
	driverService := service.NewDriverService(locationStore, cacheStore, repos.Bookings)
	userService := service.NewUserService(repos.Users, identifierService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		FavoritesHandler:    handler.NewFavoritesHandler(favoritesService),
		AdminHandler:        handler.NewAdminHandler(identifierService),
		BookingHandler:      handler.NewBookingHandler(bookingService),
		DriverHandler:       handler.NewDriverHandler(driverService),
		UserHandler:         handler.NewUserHandler(userService),
		AuthHandler:         handler.NewAuthHandler(issuer),
		SubscriptionHandler: handler.NewSubscriptionHandler(favoritesService, hub, cfg.Server.AllowedOrigins),
		AllowedOrigins:      cfg.Server.AllowedOrigins,
		Issuer:              issuer,
		IdempotencyStore:    internalRedis.NewIdempotencyStore(redisClient),
		NewRelicApp:         nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func closeDatabase(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("failed to close database: %v", err)
	}
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("failed to disconnect mongo: %v", err)
	}
}
