package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/telemetry"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
	"github.com/BruksfildServices01/barber-booking/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// TRACING
	// ======================================================
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		return err
	}

	// ======================================================
	// STORE
	// ======================================================
	var (
		db    *gorm.DB
		repo  domain.Repository
		sinks []audit.Sink
	)

	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := infraRepo.NewMemoryRepository()
		shop := infraRepo.SeedDemo(mem)
		repo = mem
		log.Info("using in-memory store",
			zap.String("demo_slug", shop.Slug),
			zap.Uint("demo_barbershop_id", shop.ID),
		)
	default:
		db, err = dbpkg.NewDB(cfg.DBUrl, log)
		if err != nil {
			return err
		}
		repo = infraRepo.NewAppointmentGormRepository(db)
		sinks = append(sinks, audit.New(db))
	}

	// ======================================================
	// REDIS (rate limit + idempotência) ou memória
	// ======================================================
	rdb, err := cache.NewRedis(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}

	idempotencyTTL := time.Duration(cfg.IdempotencyTTLMin) * time.Minute

	var (
		limiter     middleware.Limiter
		idempotency middleware.IdempotencyStore
		codes       verification.Store
	)
	if rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute)
		idempotency = middleware.NewRedisIdempotencyStore(rdb, idempotencyTTL)
		codes = verification.NewRedisStore(rdb)
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimitPerMinute)
		memStore := middleware.NewMemoryIdempotencyStore(idempotencyTTL)
		defer memStore.Stop()
		idempotency = memStore
		codes = verification.NewMemoryStore()
	}

	verifier := verification.NewService(
		codes,
		verification.NewLogSender(log.Named("verification"), !cfg.IsProduction()),
		log.Named("verification"),
	)

	// ======================================================
	// EVENTOS (Kafka) + AUDITORIA
	// ======================================================
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher := events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.Info("kafka publisher enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}

	dispatcher := audit.NewDispatcher(log.Named("audit"), sinks...)

	// ======================================================
	// STORAGE (logos)
	// ======================================================
	var uploader storage.Uploader
	s3, err := storage.NewS3Uploader(storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	switch {
	case err == nil:
		uploader = s3
	case errors.Is(err, storage.ErrDisabled):
		log.Info("logo upload disabled (no S3 bucket)")
	default:
		return err
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.Register(); err != nil {
		return err
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database_unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Log:         log,
		DB:          db,
		Repo:        repo,
		Audit:       dispatcher,
		Limiter:     limiter,
		Idempotency: idempotency,
		Uploader:    uploader,

		Verification: verifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit drain", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}

	return nil
}
