package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "rentflow-backend/internal/api/http"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/repository/postgres"
	"rentflow-backend/internal/service"

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
	logger.Info("Starting RentFlow Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Partner configuration", "inventory", cfg.Partners.InventoryURL, "payment", cfg.Partners.PaymentURL, "reservation", cfg.Partners.ReservationURL)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	// Initialize Partner Clients
	partnerTimeout := time.Duration(cfg.Partners.TimeoutSeconds) * time.Second
	inventorySvc := service.NewInventoryClient(cfg.Partners.InventoryURL, partnerTimeout)
	paymentSvc := service.NewPaymentClient(cfg.Partners.PaymentURL, partnerTimeout)
	reservationSvc := service.NewReservationClient(cfg.Partners.ReservationURL, partnerTimeout)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	auditSvc := service.NewAuditService(store.AuditRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.SequenceRepository,
		inventorySvc,
		paymentSvc,
		reservationSvc,
		emailSvc,
		auditSvc,
		time.Duration(cfg.Booking.ExpiryHours)*time.Hour,
		cfg.Booking.DailyCapacity,
	)
	receiptSvc := service.NewReceiptService(
		store.ReceiptRepository,
		store.DiscrepancyRepository,
		store.AvizoRepository,
		store.SequenceRepository,
		inventorySvc,
		emailSvc,
		auditSvc,
	)
	avizoSvc := service.NewAvizoService(store.AvizoRepository, store.SequenceRepository, auditSvc)

	// Set up HTTP server
	router := httpapi.NewRouter(bookingSvc, receiptSvc, avizoSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
