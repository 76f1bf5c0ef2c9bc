package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/compta/internal/adapter/http"
	"github.com/iho/compta/internal/adapter/http/handler"
	"github.com/iho/compta/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/compta/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/compta/internal/adapter/repository/redis"
	"github.com/iho/compta/internal/infrastructure/auth"
	"github.com/iho/compta/internal/infrastructure/config"
	"github.com/iho/compta/internal/infrastructure/export"
	"github.com/iho/compta/internal/infrastructure/logger"
	"github.com/iho/compta/internal/infrastructure/metrics"
	"github.com/iho/compta/internal/infrastructure/postgres"
	"github.com/iho/compta/internal/infrastructure/redis"
	"github.com/iho/compta/internal/infrastructure/storage"
	"github.com/iho/compta/internal/usecase"
)

const (
	rateLimitCleanupInterval = time.Minute
	rateLimitMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = logg
	zerolog.DefaultContextLogger = &logg

	if err := run(cfg, logg); err != nil {
		logg.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, logg zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, logg)

	// Run migrations before opening the pool
	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logg.Info().Msg("connected to postgres")

	// Connect to Redis
	idGen := postgresRepo.NewULIDGenerator()
	var (
		redisPinger      handler.Pinger
		idempotencyStore usecase.IdempotencyStore
		reportCache      *usecase.ReportCache
	)
	if cfg.RedisEnabled {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		logg.Info().Msg("connected to redis")

		redisPinger = handler.RedisPinger(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		reportCache = usecase.NewReportCache(redisRepo.NewCache(redisClient), idGen, cfg.ReportCacheTTL)
	} else {
		logg.Warn().Msg("redis disabled: idempotency keys and report caching are off")
	}

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	logg.Info().Str("provider", string(store.Provider())).Msg("justificatif storage ready")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegisterer(reg)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	assetRepo := postgresRepo.NewAssetRepository(pool)
	depreciationRepo := postgresRepo.NewDepreciationRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	chartRepo := postgresRepo.NewChartRepository(pool)
	bankAccountRepo := postgresRepo.NewBankAccountRepository(pool)
	bankTxRepo := postgresRepo.NewBankTransactionRepository(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	vatRepo := postgresRepo.NewVATRepository(pool)
	justificatifRepo := postgresRepo.NewJustificatifRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)

	// Initialize use cases
	assetUC := usecase.NewAssetUseCase(txManager, assetRepo, depreciationRepo, ledgerRepo, idGen, retrier, reportCache, auditRepo, m)
	bankUC := usecase.NewBankUseCase(txManager, bankAccountRepo, bankTxRepo, idGen, retrier, auditRepo, m)
	reconcileUC := usecase.NewReconciliationUseCase(bankAccountRepo, bankTxRepo, ledgerRepo, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, chartRepo, idGen, reportCache, m)
	reportUC := usecase.NewReportUseCase(ledgerRepo, chartRepo, export.NewXLSXExporter(), reportCache, m)
	invoiceUC := usecase.NewInvoiceUseCase(txManager, invoiceRepo, clientRepo, idGen, m)
	clientUC := usecase.NewClientUseCase(clientRepo, invoiceRepo, idGen, auditRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, auditRepo)
	revenueUC := usecase.NewRevenueUseCase(invoiceRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	vatUC := usecase.NewVATUseCase(invoiceRepo, vatRepo, idGen)
	justificatifUC := usecase.NewJustificatifUseCase(justificatifRepo, store, idGen, cfg.MaxUploadSize, m)
	authUC := usecase.NewAuthUseCase(cfg.AdminUsername, cfg.AdminPasswordHash, auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), auditRepo, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	go rateLimiter.RunCleanup(ctx, rateLimitCleanupInterval, rateLimitMaxIdle)

	routerCfg := httpAdapter.RouterConfig{
		AssetHandler:        handler.NewAssetHandler(assetUC),
		BankHandler:         handler.NewBankHandler(bankUC, reconcileUC),
		LedgerHandler:       handler.NewLedgerHandler(ledgerUC),
		ReportHandler:       handler.NewReportHandler(reportUC),
		InvoiceHandler:      handler.NewInvoiceHandler(invoiceUC),
		ClientHandler:       handler.NewClientHandler(clientUC),
		CompanyHandler:      handler.NewCompanyHandler(companyUC),
		RevenueHandler:      handler.NewRevenueHandler(revenueUC),
		VATHandler:          handler.NewVATHandler(vatUC),
		JustificatifHandler: handler.NewJustificatifHandler(justificatifUC, cfg.MaxUploadSize),
		AuthHandler:         handler.NewAuthHandler(authUC),
		AuditHandler:        handler.NewAuditHandler(auditUC),
		HealthHandler:       handler.NewHealthHandler(pool, redisPinger),
		Logger:              logg,
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         rateLimiter,
		HTTPMetrics:         middleware.NewHTTPMetrics(reg),
		MetricsHandler:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	if cfg.AuthEnabled {
		routerCfg.TokenVerifier = authUC
	} else {
		logg.Warn().Msg("authentication disabled: the API is open")
	}

	// Create server
	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logg.Info().Msg("server stopped")
	return nil
}

// newObjectStore opens the justificatif store selected by STORAGE_MODE.
func newObjectStore(ctx context.Context, cfg *config.Config) (usecase.ObjectStore, error) {
	switch cfg.StorageMode {
	case config.StorageModeLocal:
		store, err := storage.NewLocalStore(cfg.LocalStoragePath)
		if err != nil {
			return nil, fmt.Errorf("open local storage: %w", err)
		}
		return store, nil
	case config.StorageModeS3:
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("open s3 storage: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket %s: %w", store.Bucket(), err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}
}

func listenAddr(port string) string {
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
