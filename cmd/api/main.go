package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"orderscan/pkg/api"
	"orderscan/pkg/config"
	"orderscan/pkg/fulfillment"
	"orderscan/pkg/ingest"
	"orderscan/pkg/logger"
	"orderscan/pkg/order"
	"orderscan/pkg/order/memory"
	"orderscan/pkg/order/postgres"
	"orderscan/pkg/order/redis"
	"orderscan/pkg/otel"
)

const serviceName = "orderscan"

// @title Order Scan API
// @version 1.0.0
// @description Warehouse order scanning and fulfillment tracking
// @host localhost:5000
// @BasePath /
func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), serviceName, otel.GetTraceID)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := otel.InitTracing(log, otel.Config{ServiceName: serviceName, Host: cfg.OTELHost, Probability: 1.0})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	log.Info(ctx, "storage ready", "backend", cfg.Storage)

	svc := fulfillment.New(repo, log)

	if cfg.SeedFile != "" {
		orders, err := order.LoadFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		n, err := svc.Import(ctx, orders)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info(ctx, "seeded orders", "file", cfg.SeedFile, "count", n)
	}

	consumerDone := make(chan struct{})
	if len(cfg.KafkaBrokers) > 0 {
		consumer := ingest.NewConsumer(ingest.NewReader(cfg.KafkaBrokers, cfg.KafkaTopic), svc, log)
		go func() {
			defer close(consumerDone)
			consumer.Run(ctx)
		}()
		log.Info(ctx, "order consumer started", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		close(consumerDone)
	}

	srv := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           api.NewRouter(api.NewHandler(svc, log), log, tp.Tracer(serviceName)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		stop()
		<-consumerDone
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-consumerDone
	return nil
}

// openRepository selects the order store named by cfg.Storage.
func openRepository(ctx context.Context, cfg *config.Config) (order.Repository, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return postgres.New(db), func() { db.Close() }, nil
	case config.StorageRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redis.New(client), func() { client.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
