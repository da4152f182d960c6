package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mis-backend/internal/handlers"
	"mis-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	enquiryHandler *handlers.EnquiryHandler,
	realisationHandler *handlers.RealisationHandler,
	deliveryHandler *handlers.DeliveryHandler,
	vehicleHandler *handlers.VehicleHandler,
	followUpHandler *handlers.FollowUpHandler,
	receivingHandler *handlers.ReceivingHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Enquiries (stage 1)
	enquiriesAPI := r.PathPrefix("/api/enquiries").Subrouter()
	enquiriesAPI.Use(authMiddleware.Authenticate)
	enquiriesAPI.HandleFunc("", enquiryHandler.Create).Methods("POST")
	enquiriesAPI.HandleFunc("/pending", enquiryHandler.Pending).Methods("GET")
	enquiriesAPI.HandleFunc("/history", enquiryHandler.History).Methods("GET")
	enquiriesAPI.HandleFunc("/{id}", enquiryHandler.Delete).Methods("DELETE")

	// Protected API routes - Order Realisation (stage 2)
	realisationsAPI := r.PathPrefix("/api/realisations").Subrouter()
	realisationsAPI.Use(authMiddleware.Authenticate)
	realisationsAPI.HandleFunc("", realisationHandler.Realise).Methods("POST")
	realisationsAPI.HandleFunc("/pending", realisationHandler.Pending).Methods("GET")
	realisationsAPI.HandleFunc("/history", realisationHandler.History).Methods("GET")

	// Protected API routes - Delivery Orders (stage 3)
	deliveriesAPI := r.PathPrefix("/api/deliveries").Subrouter()
	deliveriesAPI.Use(authMiddleware.Authenticate)
	deliveriesAPI.HandleFunc("", deliveryHandler.Create).Methods("POST")
	deliveriesAPI.HandleFunc("/pending", deliveryHandler.Pending).Methods("GET")
	deliveriesAPI.HandleFunc("/history", deliveryHandler.History).Methods("GET")

	// Protected API routes - Vehicle Placement (stage 4)
	vehiclesAPI := r.PathPrefix("/api/vehicles").Subrouter()
	vehiclesAPI.Use(authMiddleware.Authenticate)
	vehiclesAPI.HandleFunc("", vehicleHandler.Place).Methods("POST")
	vehiclesAPI.HandleFunc("/pending", vehicleHandler.Pending).Methods("GET")
	vehiclesAPI.HandleFunc("/history", vehicleHandler.History).Methods("GET")

	// Protected API routes - Follow Up (stage 5)
	followUpsAPI := r.PathPrefix("/api/followups").Subrouter()
	followUpsAPI.Use(authMiddleware.Authenticate)
	followUpsAPI.HandleFunc("", followUpHandler.Submit).Methods("POST")
	followUpsAPI.HandleFunc("/pending", followUpHandler.Pending).Methods("GET")
	followUpsAPI.HandleFunc("/history", followUpHandler.History).Methods("GET")

	// Protected API routes - Receiving (stage 6)
	receivingsAPI := r.PathPrefix("/api/receivings").Subrouter()
	receivingsAPI.Use(authMiddleware.Authenticate)
	receivingsAPI.HandleFunc("", receivingHandler.Receive).Methods("POST")
	receivingsAPI.HandleFunc("/pending", receivingHandler.Pending).Methods("GET")
	receivingsAPI.HandleFunc("/history", receivingHandler.History).Methods("GET")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.Snapshot).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/delivery-order/{id}", reportHandler.DeliveryOrderPDF).Methods("GET")

	// Protected API routes - Backups
	backupsAPI := r.PathPrefix("/api/backups").Subrouter()
	backupsAPI.Use(authMiddleware.Authenticate)
	backupsAPI.HandleFunc("", backupHandler.Create).Methods("POST")
	backupsAPI.HandleFunc("", backupHandler.List).Methods("GET")
	backupsAPI.HandleFunc("/restore", backupHandler.Restore).Methods("POST")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
