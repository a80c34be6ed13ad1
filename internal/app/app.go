package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/product-ordering/db"
	config "github.com/DRSN-tech/product-ordering/internal/cfg"
	v1Grpc "github.com/DRSN-tech/product-ordering/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/product-ordering/internal/delivery/v1/http"
	"github.com/DRSN-tech/product-ordering/internal/infrastructure/kafka"
	s3Repo "github.com/DRSN-tech/product-ordering/internal/repository/minio"
	"github.com/DRSN-tech/product-ordering/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/product-ordering/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-ordering/internal/repository/redis"
	redisConv "github.com/DRSN-tech/product-ordering/internal/repository/redis/converter"
	"github.com/DRSN-tech/product-ordering/internal/session"
	"github.com/DRSN-tech/product-ordering/internal/usecase"
	"github.com/DRSN-tech/product-ordering/pkg/closer"
	"github.com/DRSN-tech/product-ordering/pkg/clients"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/DRSN-tech/product-ordering/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout         = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
	topicTimeout        = 10 * time.Second
	healthCheckInterval = 15 * time.Second
	forcedCloseTimeout  = 3 * time.Second
)

// App — собранное приложение: HTTP API сессий, служебный gRPC, воркер outbox.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	worker   *kafka.OutboxWorker
	sessions *session.Manager
	probes   map[string]v1Grpc.Probe
}

// NewApp подключается к внешним зависимостям и собирает слои. Уже открытые ресурсы
// закрываются, если сборка не удалась.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(forcedCloseTimeout),
	}

	if err := a.init(); err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if closeErr := a.closer.Close(ctx); closeErr != nil {
			logger.Warnf("cleanup after failed init: %v", closeErr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	pg, err := initPGDB(ctx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddSimple("postgres", pg.Close)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", redisClient.Close)
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize kafka producer")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	productRepo := pgdb.NewProductRepo(pg.Pool, pgdbConv.NewProductConverterImpl(), pgdbConv.NewPriceEntryConverterImpl())
	orderRepo := pgdb.NewOrderRepo(pg.Pool, pgdbConv.NewOrderConverterImpl())
	itemRepo := pgdb.NewOrderItemRepo(pg.Pool, pgdbConv.NewOrderItemConverterImpl())
	outboxRepo := pgdb.NewOutboxEventRepo(pg.Pool, pgdbConv.NewOutboxEventConverterImpl(), a.cfg.Outbox.Channel)
	cacheRepo := redis.NewCatalogCacheRepo(redisClient, redisConv.NewCatalogPageConverterImpl(),
		a.cfg.Redis, a.cfg.Catalog.PageSize, a.logger)
	archiveRepo := s3Repo.NewOrderArchiveRepo(minioClient, a.cfg.Minio)

	orderingUC := usecase.NewOrderingUC(
		pgdb.NewTxManager(pg.Pool, a.logger),
		productRepo,
		orderRepo,
		itemRepo,
		outboxRepo,
		cacheRepo,
		archiveRepo,
		producer,
		a.logger,
		a.cfg.Catalog,
	)

	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Outbox, pg.Dsn)
	a.sessions = session.NewManager(orderingUC, orderingUC, orderingUC, a.cfg.Session, a.logger)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(a.sessions, a.cfg.Http.SwaggerURL)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.probes = map[string]v1Grpc.Probe{
		"postgres": pg.Ping,
		"redis":    redisClient.Ping,
	}

	return nil
}

// Run запускает серверы и фоновые задачи и блокируется до сигнала или падения сервера.
// Ресурсы закрываются в обратном порядке регистрации.
func (a *App) Run() error {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a.closer.Add("background tasks", func(context.Context) error {
		bgCancel()
		return nil
	})

	a.worker.Start(bgCtx)
	a.closer.Add("outbox worker", a.worker.Stop)

	a.sessions.Start(bgCtx)
	a.closer.Add("sessions", a.sessions.Stop)

	go a.grpcSrv.WatchDependencies(bgCtx, healthCheckInterval, a.probes)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	pg, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := pg.RunMigrations(db.Migrations, db.MigrationsDir, logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		pg.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return pg, nil
}
