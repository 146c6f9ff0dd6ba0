package main

// GET    /health, /metrics
// GET    /products, POST /products, PUT|DELETE /products/{id}, PUT /products/{id}/stock
// GET    /categories, POST /categories, PUT|DELETE /categories/{id}
// GET    /clients, POST /clients, DELETE /clients/{id}
// GET|DELETE /cart, POST /cart/add, /cart/update, /cart/remove, /cart/client
// POST   /checkout/order, GET /sales
// GET    /reports, /dashboard

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"libreria-pos/config"
	"libreria-pos/handler"
	"libreria-pos/service"
	"libreria-pos/state"
	"libreria-pos/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// --- EMBED MIGRATIONS ---
//
//go:embed migrations.sql
var migrationSQL string

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Store setup failed: %v", err)
	}
	defer st.Close()

	// --- State ---
	appState := state.New(st, logger)
	if err := appState.Load(ctx); err != nil {
		log.Fatalf("Loading state failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := appState.SeedDemo(ctx); err != nil {
			log.Fatalf("Seeding demo catalog failed: %v", err)
		}
	}

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	// --- Service ---
	svc := service.NewService(appState, st, metrics, logger, service.WithLowStockThreshold(cfg.LowStockThreshold))
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers ---
	h := handler.NewHandler(serviceInterface)

	// --- Router ---
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	h.RegisterRoutes(r)

	// --- Server ---
	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	logger.Info("server running", "addr", cfg.Addr(), "store", cfg.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory store; data is lost on exit")
		return store.NewMemoryStore(), nil
	}
	pg, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if _, err := pg.DB.ExecContext(ctx, migrationSQL); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info("database migrations executed")
	}
	return pg, nil
}
