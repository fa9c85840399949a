package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/georgemunganga/bandiwala-backend/internal/config"
	"github.com/georgemunganga/bandiwala-backend/internal/database"
	"github.com/georgemunganga/bandiwala-backend/internal/logger"
	"github.com/georgemunganga/bandiwala-backend/internal/modules/product"
	"github.com/georgemunganga/bandiwala-backend/internal/modules/vendor"
	"github.com/georgemunganga/bandiwala-backend/internal/server"
)

// stores bundles the repositories for the selected driver.
type stores struct {
	vendors  vendor.Repository
	products product.Repository
	ping     server.PingFunc
	close    func()
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}
	cfg := config.Load()

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("could not open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()

	// ── Metrics ─────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := server.NewMetrics(registry)

	// ── Vendors & Products ──────────────────────────────────
	productService := product.NewService(st.products, cfg.Store.Timeout)
	vendorService := vendor.NewService(st.vendors, vendor.Config{
		PutReplace:   cfg.Vendor.PutReplace,
		StoreTimeout: cfg.Store.Timeout,
	})
	vendorHandler := vendor.NewHandler(vendorService, productService, appLogger)

	router := server.NewRouter(server.Options{
		Logger:       appLogger.Named("http"),
		Metrics:      metrics,
		Gatherer:     registry,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Ping:         st.ping,
	}, vendorHandler)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Bandiwala API server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("put_replace", cfg.Vendor.PutReplace))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := database.MigratePostgres(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		appLogger.Info("Connected to PostgreSQL database")
		return &stores{
			vendors:  vendor.NewPostgresRepository(db),
			products: product.NewPostgresRepository(db),
			ping:     db.PingContext,
			close:    func() { db.Close() },
		}, nil

	case config.DriverMongo:
		client, mdb, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		appLogger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))
		return &stores{
			vendors:  vendor.NewMongoRepository(mdb),
			products: product.NewMongoRepository(mdb),
			ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		appLogger.Warn("Using in-memory store; data is lost on restart")
		return &stores{
			vendors:  vendor.NewMemoryRepository(),
			products: product.NewMemoryRepository(),
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
