package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	auditStore "github.com/MrJamesThe3rd/dentalbudget/internal/audit/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/auth"
	"github.com/MrJamesThe3rd/dentalbudget/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/dentalbudget/internal/budget/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/category"
	categoryStore "github.com/MrJamesThe3rd/dentalbudget/internal/category/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/config"
	"github.com/MrJamesThe3rd/dentalbudget/internal/database"
	"github.com/MrJamesThe3rd/dentalbudget/internal/export"
	"github.com/MrJamesThe3rd/dentalbudget/internal/fiscal"
	fiscalStore "github.com/MrJamesThe3rd/dentalbudget/internal/fiscal/store"
	budgetHttp "github.com/MrJamesThe3rd/dentalbudget/internal/http"
	auditHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/audit"
	budgetHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/category"
	fiscalHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/fiscal"
	mappingHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/mapping"
	practiceHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/practice"
	reportHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/report"
	userHandler "github.com/MrJamesThe3rd/dentalbudget/internal/http/user"
	"github.com/MrJamesThe3rd/dentalbudget/internal/importer"
	"github.com/MrJamesThe3rd/dentalbudget/internal/logging"
	"github.com/MrJamesThe3rd/dentalbudget/internal/mapping"
	mappingStore "github.com/MrJamesThe3rd/dentalbudget/internal/mapping/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/practice"
	practiceStore "github.com/MrJamesThe3rd/dentalbudget/internal/practice/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/report"
	reportStore "github.com/MrJamesThe3rd/dentalbudget/internal/report/store"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
	userStore "github.com/MrJamesThe3rd/dentalbudget/internal/user/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Auth.Secret == "" {
		slog.Warn("JWT_SECRET is not set, login is disabled")
	}

	auditLog := auditStore.New(db)

	var (
		practiceService = practice.NewService(practiceStore.New(db, auditLog))
		fiscalService   = fiscal.NewService(fiscalStore.New(db, auditLog))
		categoryService = category.NewService(categoryStore.New(db, auditLog))
		mappingService  = mapping.NewService(mappingStore.New(db, auditLog))
		budgetService   = budget.NewService(budgetStore.New(db, auditLog), fiscalService, categoryService, mappingService)
		importService   = importer.NewService(budgetService)
		reportService   = report.NewService(reportStore.New(db))
		exportService   = export.NewService(reportService)
		userService     = user.NewService(userStore.New(db, auditLog))
		auditService    = audit.NewService(auditLog)
		tokens          = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	router := budgetHttp.New(budgetHttp.Handlers{
		Practices:  practiceHandler.NewHandler(practiceService),
		Fiscal:     fiscalHandler.NewHandler(fiscalService),
		Categories: categoryHandler.NewHandler(categoryService),
		Budget:     budgetHandler.NewHandler(budgetService, importService),
		Mappings:   mappingHandler.NewHandler(mappingService),
		Reports:    reportHandler.NewHandler(reportService, exportService),
		Users:      userHandler.NewHandler(userService, tokens),
		Audit:      auditHandler.NewHandler(auditService),
	}, budgetHttp.Options{
		Name:           cfg.App.Name,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Tokens:         tokens,
		AuthRequired:   cfg.Auth.Required,
		DB:             db,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "version", cfg.App.Version)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
