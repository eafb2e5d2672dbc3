package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"evalx/internal/domain/employee"
	"evalx/internal/domain/evaluation"
	"evalx/internal/domain/identity"
	"evalx/internal/domain/manager"
	"evalx/internal/domain/reports"
	"evalx/internal/platform/config"
	"evalx/internal/platform/db"
	"evalx/internal/platform/metrics"
	"evalx/internal/transport/http/api"
	authhandler "evalx/internal/transport/http/handlers/auth"
	employeeshandler "evalx/internal/transport/http/handlers/employees"
	managershandler "evalx/internal/transport/http/handlers/managers"
	reportshandler "evalx/internal/transport/http/handlers/reports"
	"evalx/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects to the database, applies migrations and seed data when
// enabled, and builds the full route tree. Callers own the returned App
// and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, DB: pool, Metrics: metrics.New()}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	cfg := a.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(a.Metrics))
	}

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	identityStore := identity.NewStore(a.DB)
	employeeStore := employee.NewStore(a.DB)
	managerStore := manager.NewStore(a.DB)
	reportsStore := reports.NewStore(a.DB)
	writer := evaluation.NewWriter(a.DB)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		authhandler.NewHandler(identityStore, cfg.JWTSecret).RegisterRoutes(r)
		employeeshandler.NewHandler(employeeStore).RegisterRoutes(r)
		managershandler.NewHandler(identityStore, managerStore, writer, reportsStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportsStore).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run is the blocking entrypoint used by cmd/server.
func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
