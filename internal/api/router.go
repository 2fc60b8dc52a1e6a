package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Budget-Projection-Backend/internal/api/middleware"
	"github.com/ndewijer/Budget-Projection-Backend/internal/config"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
)

// Services bundles the services the HTTP layer delegates to.
type Services struct {
	System       *service.SystemService
	Account      *service.AccountService
	Paycheck     *service.PaycheckService
	Bill         *service.BillService
	Bucket       *service.BucketService
	Transaction  *service.TransactionService
	Projection   *service.ProjectionService
	Materialized *service.MaterializedService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svc.Account)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
				r.Get("/amortization", accountHandler.AmortizationSchedule)
			})
		})

		r.Route("/paycheck", func(r chi.Router) {
			paycheckHandler := handlers.NewPaycheckHandler(svc.Paycheck)
			r.Get("/", paycheckHandler.Paychecks)
			r.Post("/", paycheckHandler.CreatePaycheck)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", paycheckHandler.GetPaycheck)
				r.Put("/", paycheckHandler.UpdatePaycheck)
				r.Delete("/", paycheckHandler.DeletePaycheck)
			})
		})

		r.Route("/bill", func(r chi.Router) {
			billHandler := handlers.NewBillHandler(svc.Bill)
			r.Get("/", billHandler.Bills)
			r.Post("/", billHandler.CreateBill)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", billHandler.GetBill)
				r.Put("/", billHandler.UpdateBill)
				r.Delete("/", billHandler.DeleteBill)
				r.Put("/period", billHandler.SetPeriodBill)
			})
		})

		r.Route("/bucket", func(r chi.Router) {
			bucketHandler := handlers.NewBucketHandler(svc.Bucket)
			r.Get("/", bucketHandler.Buckets)
			r.Post("/", bucketHandler.CreateBucket)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", bucketHandler.GetBucket)
				r.Put("/", bucketHandler.UpdateBucket)
				r.Delete("/", bucketHandler.DeleteBucket)
				r.Put("/period", bucketHandler.SetPeriodBucket)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/projection", func(r chi.Router) {
			projectionHandler := handlers.NewProjectionHandler(svc.Materialized, svc.Projection)
			r.Get("/", projectionHandler.Projection)
			r.Get("/refresh", projectionHandler.RefreshInfo)
			r.With(custommiddleware.RateLimit(cfg.RateLimit.RefreshPerMinute, cfg.RateLimit.RefreshBurst)).
				Post("/refresh", projectionHandler.Refresh)
			r.Put("/line", projectionHandler.EditLine)
		})
	})

	return r
}
