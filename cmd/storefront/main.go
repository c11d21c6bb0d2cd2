package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/cozy_storefront/internal/cache"
	"github.com/fjod/cozy_storefront/internal/catalog"
	"github.com/fjod/cozy_storefront/internal/config"
	storefronthttp "github.com/fjod/cozy_storefront/internal/http"
	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/fjod/cozy_storefront/internal/publisher"
	"github.com/fjod/cozy_storefront/internal/repository"
	"github.com/fjod/cozy_storefront/internal/service"
	"github.com/fjod/cozy_storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// catalog, order and export payloads carry prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()

	zl, err := logger.New("storefront", cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("storefront stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	cartRepo, closeCarts, err := openCartRepository(ctx, cfg, zl)
	if err != nil {
		return err
	}
	closers = append(closers, closeCarts)

	submitter, orderLookup, closeOrders, err := openSubmitter(cfg, zl)
	if err != nil {
		return err
	}
	closers = append(closers, closeOrders)

	exporter, closeExporter := openExporter(cfg, zl)
	closers = append(closers, closeExporter)

	sessions := service.NewSessions(service.SessionDeps{
		Repo:      cartRepo,
		Submitter: submitter,
		Exporter:  exporter,
		Navigator: service.LogNavigator{Logger: zl},
		Policy:    service.Policy{IncludeAddOnSurcharges: cfg.IncludeAddOnSurcharges},
		Logger:    zl,
	}, cfg.SessionTTL)
	closers = append(closers, func() { _ = sessions.Close() })

	httpServer := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: storefronthttp.NewRouter(storefronthttp.RouterDeps{
			Catalog:        openCatalog(cfg, zl),
			Sessions:       sessions,
			Orders:         orderLookup,
			Logger:         zl,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port %s: %w", cfg.GRPCPort, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("http server listening", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		zl.Info("grpc health server listening", zap.String("port", cfg.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down storefront")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	zl.Info("storefront stopped")
	return err
}

// openCartRepository picks the cart storage backend. A configured Redis
// sits in front of it as a read-through cache.
func openCartRepository(ctx context.Context, cfg *config.Config, zl *zap.Logger) (repository.CartRepository, func(), error) {
	var (
		repo    repository.CartRepository
		closers []func()
	)

	switch cfg.CartStorage {
	case config.StorageMemory:
		repo = repository.NewMemoryRepository()
	case config.StorageMongo:
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		zl.Info("connected to mongodb", zap.String("database", cfg.MongoDBName))
		repo = repository.NewMongoRepository(db)
		closers = append(closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(disconnectCtx)
		})
	case config.StorageSQLite:
		sqlite, err := repository.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := sqlite.RunMigrations(); err != nil {
			_ = sqlite.Close()
			return nil, nil, fmt.Errorf("failed to run cart migrations: %w", err)
		}
		zl.Info("cart storage ready", zap.String("path", cfg.SQLitePath))
		repo = sqlite
		closers = append(closers, func() { _ = sqlite.Close() })
	default:
		return nil, nil, fmt.Errorf("unknown cart storage %q", cfg.CartStorage)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			zl.Warn("redis unavailable, cart cache disabled", zap.Error(err))
			_ = client.Close()
		} else {
			repo = repository.NewCachedRepository(repo, cache.NewRedisCache(client, cfg.SessionTTL), zl)
			closers = append(closers, func() { _ = client.Close() })
		}
	}

	return repo, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}

func openCatalog(cfg *config.Config, zl *zap.Logger) catalog.Source {
	static := catalog.NewStaticSource(catalog.DefaultProducts())
	if cfg.CatalogAPIURL == "" {
		return static
	}
	remote := catalog.NewRemoteSource(cfg.CatalogAPIURL, cfg.RequestTimeout, zl)
	return catalog.NewFallbackSource(remote, static, zl)
}

// openSubmitter prefers the remote order API. Without one, orders are kept
// by the built-in order store, in Postgres when configured, and can be read
// back through the returned lookup.
func openSubmitter(cfg *config.Config, zl *zap.Logger) (orders.Submitter, storefronthttp.OrderLookup, func(), error) {
	if cfg.OrderAPIURL != "" {
		zl.Info("using remote order api", zap.String("url", cfg.OrderAPIURL))
		return orders.NewHTTPClient(cfg.OrderAPIURL, cfg.RequestTimeout, zl), nil, func() {}, nil
	}

	if !cfg.Postgres.Enabled() {
		zl.Warn("no order api or database configured, orders are kept in memory")
		repo := orders.NewMemoryRepository()
		return orders.NewLocalSubmitter(repo, cfg.PaymentURLBase, zl), repo, func() {}, nil
	}

	creds := &orders.Credentials{
		Host:              cfg.Postgres.Host,
		Port:              cfg.Postgres.Port,
		User:              cfg.Postgres.User,
		Password:          cfg.Postgres.Password,
		DBName:            cfg.Postgres.DBName,
		MigrationsDirPath: cfg.Postgres.MigrationsDirPath,
	}
	repo, err := orders.NewRepository(creds)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to order database: %w", err)
	}
	if err := repo.RunMigrations(creds); err != nil {
		_ = repo.Close()
		return nil, nil, nil, fmt.Errorf("failed to run order migrations: %w", err)
	}
	zl.Info("order database migrations completed")
	return orders.NewLocalSubmitter(repo, cfg.PaymentURLBase, zl), repo, func() { _ = repo.Close() }, nil
}

func openExporter(cfg *config.Config, zl *zap.Logger) (publisher.Exporter, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return publisher.NewLogExporter(zl), func() {}
	}
	exp := publisher.NewKafkaExporter(zl, cfg.KafkaBrokers...)
	zl.Info("exporting orders to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", publisher.ExportTopic))
	return exp, func() { _ = exp.Close() }
}
