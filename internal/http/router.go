package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/dentalbudget/internal/auth"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/budget"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/category"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/fiscal"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/mapping"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/practice"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/report"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/user"
)

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Practices  *practice.Handler
	Fiscal     *fiscal.Handler
	Categories *category.Handler
	Budget     *budget.Handler
	Mappings   *mapping.Handler
	Reports    *report.Handler
	Users      *user.Handler
	Audit      *audit.Handler
}

type Options struct {
	Name           string
	Version        string
	AllowedOrigins []string
	Tokens         *auth.Tokens
	AuthRequired   bool
	DB             Pinger
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{
			"name":    opts.Name,
			"version": opts.Version,
			"status":  "running",
		})
	})

	router.Get("/health", health(opts.DB))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Users.AuthRoutes)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(opts.Tokens, opts.AuthRequired))

			r.Route("/practices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Practices.Routes(r)
			})

			r.Route("/fiscal-years", h.Fiscal.YearRoutes)
			r.Route("/periods", h.Fiscal.PeriodRoutes)
			r.Route("/categories", h.Categories.Routes)
			r.Route("/budget", h.Budget.BudgetRoutes)
			r.Route("/actuals", h.Budget.ActualRoutes)
			r.Route("/mappings", h.Mappings.Routes)
			r.Route("/reports", h.Reports.Routes)
			r.Route("/users", h.Users.Routes)
			r.Route("/audit-logs", h.Audit.Routes)
		})
	})

	return router
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "unreachable",
			})

			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
