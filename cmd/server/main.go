package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"mis-backend/internal/auth"
	"mis-backend/internal/cache"
	"mis-backend/internal/config"
	"mis-backend/internal/db"
	"mis-backend/internal/handlers"
	"mis-backend/internal/health"
	h "mis-backend/internal/http"
	"mis-backend/internal/middleware"
	"mis-backend/internal/monitoring"
	"mis-backend/internal/repositories"
	"mis-backend/internal/services"
	"mis-backend/internal/store"
)

func main() {
	// Parse command-line flags
	storeKind := flag.String("store", "postgres", "Stage store backend: postgres or memory")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Select the stage store backend
	var stageStore store.Store
	switch *storeKind {
	case "memory":
		log.Println("Using in-memory stage store (state is lost on restart)")
		stageStore = store.NewMemoryStore()
	case "postgres":
		pool := db.Connect(cfg)
		defer pool.Close()

		pg := &store.PostgresStore{DB: pool}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare stage store schema: %v", err)
		}
		log.Println("Connected to Postgres stage store")
		stageStore = pg
	default:
		log.Fatalf("Unknown store backend %q", *storeKind)
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard will read the store directly)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(stageStore)

	// Start monitoring endpoint in background
	go monitoring.NewMonitoringServer(healthChecker, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repository and stage services
	stageRepo := repositories.NewStageRepository(stageStore)

	enquiryService := services.NewEnquiryService(stageRepo)
	realisationService := services.NewRealisationService(stageRepo)
	deliveryService := services.NewDeliveryService(stageRepo)
	vehicleService := services.NewVehicleService(stageRepo)
	followUpService := services.NewFollowUpService(stageRepo)
	receivingService := services.NewReceivingService(stageRepo)
	dashboardService := services.NewDashboardService(
		stageRepo,
		enquiryService,
		deliveryService,
		vehicleService,
		followUpService,
		receivingService,
	)
	reportService := services.NewReportService(deliveryService)
	backupService := services.NewBackupService(stageRepo, services.BackupConfig{
		Endpoint:  cfg.Backup.Endpoint,
		Region:    cfg.Backup.Region,
		AccessKey: cfg.Backup.AccessKey,
		SecretKey: cfg.Backup.SecretKey,
		Bucket:    cfg.Backup.Bucket,
	})

	// Keep the dashboard cache warm
	refresherCtx, stopRefresher := context.WithCancel(context.Background())
	defer stopRefresher()
	go dashboardService.StartRefresher(refresherCtx)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, jwtManager)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	realisationHandler := handlers.NewRealisationHandler(realisationService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	followUpHandler := handlers.NewFollowUpHandler(followUpService)
	receivingHandler := handlers.NewReceivingHandler(receivingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	backupHandler := handlers.NewBackupHandler(backupService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		enquiryHandler,
		realisationHandler,
		deliveryHandler,
		vehicleHandler,
		followUpHandler,
		receivingHandler,
		dashboardHandler,
		reportHandler,
		backupHandler,
		healthHandler,
		authMiddleware,
	)

	handler := corsMiddleware(middleware.MetricsMiddleware(middleware.PanicRecovery(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
