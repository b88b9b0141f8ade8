package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "scooter-rental-backend/internal/api/http"
	"scooter-rental-backend/internal/config"
	"scooter-rental-backend/internal/logger"
	"scooter-rental-backend/internal/repository/postgres"
	"scooter-rental-backend/internal/security"
	"scooter-rental-backend/internal/service"
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
	logger.Info("Starting Scooter Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

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

	// Initialize card cipher and token manager
	cipher, err := security.NewCardCipher(cfg.Vault.EncryptionKey)
	if err != nil {
		logger.Error("Failed to initialize card cipher", "error", err)
		log.Fatalf("Failed to initialize card cipher: %v", err)
	}
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	pricingService := service.NewPricingService(store.PricingConfigRepository)
	scooterService := service.NewScooterService(store.ScooterRepository)
	rentalService := service.NewRentalService(
		store.RentalRepository,
		store.UserRepository,
		pricingService,
		emailService,
		time.Duration(cfg.Rental.SweepGraceMinutes)*time.Minute,
	)
	cardVault := service.NewCardService(store.CardRepository, cipher)
	gateway := service.NewSimulatedGateway(cfg.Gateway.SuccessRate)
	paymentService := service.NewPaymentService(
		store.PaymentRepository,
		store.RentalRepository,
		store.UserRepository,
		cardVault,
		gateway,
		emailService,
	)
	revenueService := service.NewRevenueService(
		store.RevenueStatsRepository,
		store.PaymentRepository,
		store.RentalRepository,
	)

	// Initialize HTTP server
	apiServer := httpapi.NewServer(&httpapi.Services{
		Scooter: scooterService,
		Pricing: pricingService,
		Rental:  rentalService,
		Card:    cardVault,
		Payment: paymentService,
		Revenue: revenueService,
	}, tokenManager)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
