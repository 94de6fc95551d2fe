package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/config"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/database"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/repository"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	salesTransactionRepo := repository.NewSalesTransactionRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	makeModelRepo := repository.NewMakeModelRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	integrationService, err := service.NewIntegrationService(settingsRepo, cfg.Auth.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize integration service: %v", err)
	}
	availability := service.NewVehicleAvailabilityCoordinator(vehicleRepo)
	salesTransactionService := service.NewSalesTransactionService(
		salesTransactionRepo,
		vehicleRepo,
		availability,
	)
	vehicleService := service.NewVehicleService(vehicleRepo)
	taxonomyService := service.NewTaxonomyService(makeModelRepo, lookupRepo)
	leadService := service.NewLeadService(leadRepo, vehicleRepo)
	reconciliationService := service.NewReconciliationService(salesTransactionRepo, availability)

	// Periodically re-drive vehicle availability writes that failed after a
	// transaction closed.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		reconciled, err := reconciliationService.ReconcileVehicleAvailability(ctx)
		if err != nil {
			log.Printf("Vehicle availability reconciliation failed: %v", err)
			return
		}
		if reconciled > 0 {
			log.Printf("Reconciled vehicle availability for %d transaction(s)", reconciled)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reconciler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:           systemService,
		Integration:      integrationService,
		SalesTransaction: salesTransactionService,
		Vehicle:          vehicleService,
		Taxonomy:         taxonomyService,
		Lead:             leadService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
