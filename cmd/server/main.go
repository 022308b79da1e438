package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "civichub-backend/internal/api/http"
	"civichub-backend/internal/cache"
	"civichub-backend/internal/config"
	"civichub-backend/internal/logger"
	"civichub-backend/internal/messaging"
	"civichub-backend/internal/metrics"
	"civichub-backend/internal/repository/postgres"
	"civichub-backend/internal/security"
	"civichub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CivicHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Membership Cache
	membershipCache := cache.NewMemoryCache(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second,
	)

	// Initialize Event Publisher
	var publisher *messaging.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = messaging.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		logger.Info("Event publishing disabled")
	}

	// Initialize Metrics
	registry := metrics.NewRegistry()

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	affiliationSvc := service.NewAffiliationService(
		store.ProfileRepository,
		store.OrganisationRepository,
		store.AffiliationRequestRepository,
		store.NotificationRepository,
		emailSvc,
		publisher,
		membershipCache,
		registry,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)
	organisationSvc := service.NewOrganisationService(
		store.OrganisationRepository,
		store.ProfileRepository,
		store.NotificationRepository,
		emailSvc,
		publisher,
		membershipCache,
	)
	profileSvc := service.NewProfileService(store.ProfileRepository)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(
		affiliationSvc,
		organisationSvc,
		profileSvc,
		notificationSvc,
		tokenManager,
		registry,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
