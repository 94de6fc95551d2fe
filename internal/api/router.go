package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/handlers"
	custommiddleware "github.com/mkuiper/Dealership-CRM-Backend/internal/api/middleware"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/config"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/model"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System           *service.SystemService
	Integration      *service.IntegrationService
	SalesTransaction *service.SalesTransactionService
	Vehicle          *service.VehicleService
	Taxonomy         *service.TaxonomyService
	Lead             *service.LeadService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System, svc.Integration)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Get("/integration", systemHandler.GetIntegration)
				r.Put("/integration", systemHandler.UpdateIntegration)
			})
		})

		r.Route("/sales-transactions", func(r chi.Router) {
			salesHandler := handlers.NewSalesTransactionHandler(svc.SalesTransaction)
			r.Get("/", salesHandler.ListTransactions)
			r.Get("/summary", salesHandler.GetSummary)
			r.Post("/", salesHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", salesHandler.GetTransaction)
				r.Patch("/", salesHandler.UpdateTransaction)
				r.Post("/complete", salesHandler.CompleteTransaction)
				r.Post("/cancel", salesHandler.CancelTransaction)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Delete("/", salesHandler.DeleteTransaction)
				})
			})
		})

		r.Route("/vehicles", func(r chi.Router) {
			vehicleHandler := handlers.NewVehicleHandler(svc.Vehicle)
			r.Get("/", vehicleHandler.ListVehicles)
			r.Post("/", vehicleHandler.CreateVehicle)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", vehicleHandler.GetVehicle)
				r.Put("/", vehicleHandler.UpdateVehicle)
				r.Delete("/", vehicleHandler.DeleteVehicle)
			})
		})

		taxonomyHandler := handlers.NewTaxonomyHandler(svc.Taxonomy)
		r.Route("/makes", func(r chi.Router) {
			r.Get("/", taxonomyHandler.ListMakes)
			r.Post("/", taxonomyHandler.CreateMake)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", taxonomyHandler.DeleteMake)
			})
		})
		r.Route("/models", func(r chi.Router) {
			r.Get("/", taxonomyHandler.ListModels)
			r.Post("/", taxonomyHandler.CreateModel)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", taxonomyHandler.DeleteModel)
			})
		})

		// Name-only lookup tables share one handler; the kind is fixed per route.
		for path, kind := range map[string]string{
			"/fuel-types":       model.LookupFuelType,
			"/drive-types":      model.LookupDriveType,
			"/vehicle-types":    model.LookupVehicleType,
			"/vehicle-statuses": model.LookupVehicleStatus,
		} {
			r.Route(path, func(r chi.Router) {
				r.Get("/", taxonomyHandler.ListLookups(kind))
				r.Post("/", taxonomyHandler.CreateLookup(kind))

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Delete("/", taxonomyHandler.DeleteLookup(kind))
				})
			})
		}

		r.Route("/leads", func(r chi.Router) {
			leadHandler := handlers.NewLeadHandler(svc.Lead)
			r.Post("/", leadHandler.CreateLead)
			r.Get("/", leadHandler.ListLeads)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", leadHandler.GetLead)
				r.Delete("/", leadHandler.DeleteLead)
			})
		})
	})

	return r
}
