package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/breakeven/internal/apperr"
	"github.com/Simplici0/breakeven/internal/cache"
	"github.com/Simplici0/breakeven/internal/catalog"
	"github.com/Simplici0/breakeven/internal/config"
	"github.com/Simplici0/breakeven/internal/db"
	"github.com/Simplici0/breakeven/internal/logging"
	"github.com/Simplici0/breakeven/internal/migrations"
	"github.com/Simplici0/breakeven/internal/scenario"
	"github.com/Simplici0/breakeven/internal/seed"
)

const (
	devSessionSecret = "breakeven-dev-secret"
	shutdownTimeout  = 10 * time.Second
	svgBurst         = 60
	svgRefill        = time.Minute
	memoryCacheSize  = 512
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"num":       formatFloat,
	"cardField": cardField,
}

type server struct {
	db         *sql.DB
	catalog    *catalog.Store
	cache      cache.Store
	deals      *dealSigner
	chartWidth float64
	trustProxy bool
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	cfg := config.Load()
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seedCfg := seed.DefaultConfig()
	if cfg.ScenarioFile != "" {
		presets, err := scenario.LoadFile(cfg.ScenarioFile)
		if err != nil {
			return fmt.Errorf("failed to load scenario presets: %w", err)
		}
		seedCfg.Scenarios = append(seedCfg.Scenarios, presets...)
	}
	stats, err := seed.Run(ctx, database, seedCfg)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	logging.Info("catalog seeded", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	store, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	secret := cfg.SessionSecret
	if secret == "" {
		if !cfg.IsDev() {
			return errors.New("SESSION_SECRET is required outside development")
		}
		secret = devSessionSecret
	}

	srv := &server{
		db:         database,
		catalog:    catalog.NewStore(database),
		cache:      store,
		deals:      newDealSigner(secret),
		chartWidth: cfg.ChartWidth,
		trustProxy: cfg.TrustProxy,
	}

	limiter := newRateLimiter(svgBurst, svgRefill)
	defer limiter.Stop()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(limiter),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newCache(ctx context.Context, cfg config.Config) (cache.Store, error) {
	if cfg.RedisAddr == "" {
		logging.Info("using in-process chart cache")
		return cache.NewMemory(cfg.CacheTTL, memoryCacheSize), nil
	}

	store, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect chart cache: %w", err)
	}
	logging.Info("using redis chart cache", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	return store, nil
}

// closeStore releases stores that hold connections, such as the Redis client.
func closeStore(store cache.Store) {
	closer, ok := store.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn("failed to close chart cache", zap.Error(err))
	}
}

func (s *server) routes(limiter *rateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.With(limiter.middleware).Get("/chart.svg", s.handleChartSVG)
	r.Get("/calc/bep", s.handleCalcBEP)
	r.Get("/calc/mos", s.handleCalcMOS)
	r.Get("/export.csv", s.handleExportCSV)
	r.Get("/selftest", s.handleSelfTest)
	r.Get("/quiz", s.handleQuiz)
	r.Post("/quiz/check", s.handleQuizCheck)
	r.Post("/quiz/reveal", s.handleQuizReveal)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		logging.Error("failed to parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		logging.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

// writeError maps typed errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.Error("request failed", zap.Error(err))
		http.Error(w, "internal server error", status)
		return
	}
	http.Error(w, apperr.Message(err), status)
}
