package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront-backend/internal/repository/breaker"
	"github.com/DRSN-tech/storefront-backend/internal/repository/memory"
	"github.com/DRSN-tech/storefront-backend/internal/repository/mongodb"
	"github.com/DRSN-tech/storefront-backend/internal/repository/pgdb"
	"github.com/DRSN-tech/storefront-backend/internal/repository/redis"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/closer"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/DRSN-tech/storefront-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const (
	redisPingTimeout   = 3 * time.Second
	kafkaTopicTimeout  = 5 * time.Second
	closerForceTimeout = 2 * time.Second
)

// App владеет всеми ресурсами процесса: хранилищем, кэшем, продюсером и серверами.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
}

// NewApp собирает зависимости. Недоступность хранилища, Redis или Kafka не мешает старту:
// каталог отдаёт базовые товары, а диагностика показывает состояние хранилища.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(closerForceTimeout),
	}

	store := a.initStore()

	var (
		docStore  usecase.DocumentStore
		inspector usecase.StoreInspector
	)
	if store != nil {
		inspector = store
		docStore = store
		if cfg.Breaker.Enabled {
			docStore = breaker.NewDocumentStore(store, cfg.Breaker, logger)
		}
	}

	catalogUC := usecase.NewCatalogUC(docStore, a.initCache(), logger)
	subscriptionUC := usecase.NewSubscriptionUC(docStore, a.initProducer(), logger)
	diagnosticsUC := usecase.NewDiagnosticsUC(inspector, usecase.DiagnosticsSettings{
		StoreDriver: cfg.Store.Driver,
		URLSet:      cfg.Store.URLSet,
		NameSet:     cfg.Store.NameSet,
	}, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(catalogUC, subscriptionUC, diagnosticsUC)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	if cfg.Grpc.Enabled {
		a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, logger)
		a.grpcSrv.RegisterServices(diagnosticsUC)
	}

	// закрываются в обратном порядке: сначала серверы, потом зависимости
	a.closer.Add("http server", a.httpSrv.Stop)
	if a.grpcSrv != nil {
		a.closer.Add("grpc server", a.grpcSrv.Stop)
	}

	return a, nil
}

// Run запускает серверы и блокируется до сигнала завершения или падения одного из них.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			return err
		}
		return nil
	})

	if a.grpcSrv != nil {
		g.Go(func() error {
			a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
			if err := a.grpcSrv.Start(gctx); err != nil {
				a.logger.Errorf(err, "gRPC server failed")
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Infof("Stopping gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := a.closer.Close(shutdownCtx); err != nil {
			a.logger.Errorf(err, "shutdown error")
			return err
		}

		a.logger.Infof("Application shutdown complete")
		return nil
	})

	return g.Wait()
}

// initStore подключает хранилище документов по STORE_DRIVER.
// nil означает «хранилище не инициализировано».
func (a *App) initStore() breaker.Store {
	cfg := a.cfg.Store

	switch cfg.Driver {
	case config.StoreDriverMemory:
		a.logger.Warnf("Using in-memory document store, data is lost on restart")
		return memory.NewDocumentStore()
	case config.StoreDriverPostgres:
		return a.initPostgresStore(cfg)
	default:
		return a.initMongoStore(cfg)
	}
}

func (a *App) initMongoStore(cfg *config.StoreCfg) breaker.Store {
	if !cfg.URLSet || !cfg.NameSet {
		a.logger.Warnf("DATABASE_URL or DATABASE_NAME is not set, document store is not initialized")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := clients.NewMongoClient(ctx, cfg)
	if err != nil {
		a.logger.Errorf(err, "failed to create mongodb client")
		return nil
	}
	a.closer.Add("mongodb", client.Close)

	if err := client.Ping(ctx); err != nil {
		a.logger.Warnf("MongoDB is not reachable yet: %v", err)
	}

	return mongodb.NewDocumentStore(client.Database)
}

func (a *App) initPostgresStore(cfg *config.StoreCfg) breaker.Store {
	if !cfg.URLSet {
		a.logger.Warnf("DATABASE_URL is not set, document store is not initialized")
		return nil
	}

	db, err := postgres.Connect(cfg)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil
	}
	a.closer.Add("postgres", db.Close)

	return migratedStore(pgdb.NewDocumentStore(db.Pool), func() error {
		return db.RunMigrations(a.logger)
	}, a.logger)
}

// migratedStore отдаёт store только после успешных миграций. Без таблицы documents каждое
// обращение падало бы до перезапуска, поэтому хранилище считается не инициализированным.
func migratedStore(store breaker.Store, migrate func() error, log logger.Logger) breaker.Store {
	if err := migrate(); err != nil {
		log.Errorf(err, "failed to run migrations, document store is not initialized")
		return nil
	}

	return store
}

// initCache возвращает nil, если кэш выключен или Redis не отвечает.
func (a *App) initCache() usecase.CatalogCache {
	if !a.cfg.Redis.Enabled() {
		return nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Warnf("Redis is not reachable, catalog cache disabled: %v", err)
		_ = redisClient.Close(ctx)
		return nil
	}
	a.closer.Add("redis", redisClient.Close)

	return redis.NewCatalogCache(redisClient, a.cfg.Redis, a.logger)
}

// initProducer возвращает nil, если публикация событий выключена.
func (a *App) initProducer() usecase.SubscriberEventProducer {
	if !a.cfg.Kafka.Enabled() {
		return nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		a.logger.Warnf("Kafka topic %s is not ready: %v", a.cfg.Kafka.Topic, err)
	}
	a.closer.Add("kafka producer", producer.Close)

	return producer
}
