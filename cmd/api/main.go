package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inventariolab/inventario/internal/config"
	"github.com/inventariolab/inventario/internal/db"
	"github.com/inventariolab/inventario/internal/demo"
	"github.com/inventariolab/inventario/internal/handlers"
	"github.com/inventariolab/inventario/internal/inventory"
	"github.com/inventariolab/inventario/internal/metrics"
	"github.com/inventariolab/inventario/internal/middleware"
	"github.com/inventariolab/inventario/internal/models"
	"github.com/inventariolab/inventario/internal/repo"
	"github.com/inventariolab/inventario/internal/scheduler"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		table     inventory.TableStore
		eventLog  inventory.EventLog
		locations handlers.LocationDirectory
		types     handlers.TypeDirectory
		users     handlers.UserDirectory
	)

	switch cfg.StoreBackend {
	case config.BackendFile:
		fs, err := inventory.OpenFileStore(cfg.StoreFile)
		if err != nil {
			slog.Error("failed to open store file", "path", cfg.StoreFile, "error", err)
			os.Exit(1)
		}
		demoUsers, err := demo.NewUsers()
		if err != nil {
			slog.Error("failed to seed demo users", "error", err)
			os.Exit(1)
		}
		table, eventLog = fs, fs
		locations, types, users = demo.NewLocations(), demo.NewTypes(), demoUsers
		slog.Info("using file store", "path", cfg.StoreFile)

	case config.BackendPostgres:
		database, err := db.Connect(cfg)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := db.Migrate(cfg.DatabaseURL()); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

		table = repo.NewAssetRepo(database)
		eventLog = repo.NewChangelogRepo(database)
		locations = repo.NewLocationRepo(database)
		types = repo.NewTypeRepo(database)
		users = repo.NewUserRepo(database)

	default:
		slog.Error("unknown store backend", "backend", cfg.StoreBackend)
		os.Exit(1)
	}

	store, err := inventory.NewStore(ctx, table, eventLog)
	if err != nil {
		slog.Error("failed to load assets", "error", err)
		os.Exit(1)
	}
	store.OnEvent = func(e models.ChangeEvent) {
		metrics.IncChangelogEvent(e.Action)
	}
	ledger := inventory.NewLedger(eventLog)

	go func() {
		if err := scheduler.Run(ctx, store, cfg.MetricsRefreshSpec); err != nil {
			slog.Error("metrics scheduler stopped", "error", err)
		}
	}()

	r := buildRouter(cfg, store, ledger, locations, types, users)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func setupLogger(cfg config.Config) {
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func buildRouter(
	cfg config.Config,
	store *inventory.Store,
	ledger *inventory.Ledger,
	locations handlers.LocationDirectory,
	types handlers.TypeDirectory,
	users handlers.UserDirectory,
) chi.Router {
	assetH := &handlers.AssetHandler{Store: store, Ledger: ledger}
	changelogH := &handlers.ChangelogHandler{Ledger: ledger}
	locationH := &handlers.LocationHandler{Dir: locations}
	typeH := &handlers.TypeHandler{Dir: types}
	userH := &handlers.UserHandler{Dir: users}
	authH := &handlers.AuthHandler{
		Users:       users,
		Secret:      []byte(cfg.JWTSecret),
		ExpireHours: cfg.JWTExpireHours,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/register", authH.Register)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.JWT([]byte(cfg.JWTSecret)))

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetH.ListAssets)
			r.Post("/", assetH.CreateAsset)
			r.Get("/{id}", assetH.GetAsset)
			r.Patch("/{id}", assetH.UpdateAsset)
			r.Delete("/{id}", assetH.DeleteAsset)
			r.Post("/{id}/relocate", assetH.RelocateAsset)
			r.Post("/{id}/cost", assetH.UpdateCost)
			r.Post("/{id}/status", assetH.ChangeStatus)
			r.Get("/{id}/history", assetH.AssetHistory)
		})

		r.Get("/changelog", changelogH.ListChangelog)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", locationH.ListLocations)
			r.Post("/", locationH.CreateLocation)
			r.Patch("/{id}", locationH.UpdateLocation)
			r.Delete("/{id}", locationH.DeleteLocation)
		})

		r.Route("/types", func(r chi.Router) {
			r.Get("/", typeH.ListTypes)
			r.Post("/", typeH.CreateType)
			r.Patch("/{id}", typeH.UpdateType)
			r.Delete("/{id}", typeH.DeleteType)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userH.ListUsers)
			r.Post("/", userH.CreateUser)
			r.Get("/{id}", userH.GetUser)
			r.Patch("/{id}", userH.UpdateUser)
			r.Delete("/{id}", userH.DeleteUser)
		})
	})

	return r
}
