package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	integrationapp "github.com/erp/fulfillment-router/internal/application/integration"
	"github.com/erp/fulfillment-router/internal/domain/integration"
	"github.com/erp/fulfillment-router/internal/domain/shared"
	"github.com/erp/fulfillment-router/internal/infrastructure/auth"
	"github.com/erp/fulfillment-router/internal/infrastructure/cache"
	"github.com/erp/fulfillment-router/internal/infrastructure/config"
	"github.com/erp/fulfillment-router/internal/infrastructure/ecommerce"
	"github.com/erp/fulfillment-router/internal/infrastructure/logger"
	"github.com/erp/fulfillment-router/internal/infrastructure/persistence"
	"github.com/erp/fulfillment-router/internal/infrastructure/scheduler"
	"github.com/erp/fulfillment-router/internal/infrastructure/storage"
	"github.com/erp/fulfillment-router/internal/infrastructure/telemetry"
	"github.com/erp/fulfillment-router/internal/interfaces/http/handler"
	"github.com/erp/fulfillment-router/internal/interfaces/http/middleware"
	"github.com/erp/fulfillment-router/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/fulfillment-router/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const version = "1.0.0"

//	@title			Fulfillment Router API
//	@version		1.0
//	@description	Moves Shopify fulfillment orders to the location selected by each order's fulfillment mode

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin token issued by cmd/admintoken. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, logger.WithFields(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	tel, err := initTelemetry(ctx, cfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer tel.shutdown(baseLog)

	// Logs reach stdout and, when export is enabled, the collector
	log := baseLog
	if tel.logs.IsEnabled() {
		log = telemetry.NewBridgedLogger(baseLog,
			telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, tel.logs, logger.ParseLevel(cfg.Log.Level)))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting fulfillment router",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	fulfillmentMetrics, err := telemetry.NewFulfillmentMetrics(telemetry.FulfillmentMetricsConfig{
		Meter:  tel.metrics.Meter("fulfillment-router"),
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to create fulfillment metrics", zap.Error(err))
	}

	var healthChecks []handler.HealthCheck

	// Reconciliation run journal (optional)
	var runRepo integration.ReconciliationRunRepository
	if cfg.Database.Enabled {
		db, err := openJournal(cfg, log, tel.metrics)
		if err != nil {
			log.Fatal("Failed to open run journal", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		repo := persistence.NewGormReconciliationRunRepository(db.DB)
		runRepo = repo
		healthChecks = append(healthChecks, handler.HealthCheck{Name: "database", Check: db.PingContext})

		if cfg.Database.RunRetention > 0 {
			retentionCfg := scheduler.DefaultRetentionConfig()
			retentionCfg.Retention = cfg.Database.RunRetention
			retentionCfg.DailyHour = cfg.Database.RetentionHour
			retention, err := scheduler.NewRetentionJob(retentionCfg, repo, log)
			if err != nil {
				log.Fatal("Invalid journal retention", zap.Error(err))
			}
			if err := retention.Start(ctx); err != nil {
				log.Fatal("Failed to start journal retention", zap.Error(err))
			}
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = retention.Stop(stopCtx)
			}()
		}
	} else {
		log.Info("Database disabled, reconciliation runs are not journaled")
	}

	// Delivery de-duplication store
	deliveryStore, err := cache.NewDeliveryStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create delivery store", zap.Error(err))
	}
	defer func() {
		_ = deliveryStore.Close()
	}()
	if redisStore, ok := deliveryStore.(*cache.RedisDeliveryStore); ok {
		healthChecks = append(healthChecks, handler.HealthCheck{Name: "redis", Check: redisStore.Ping})
	}

	archive, err := newPayloadArchive(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create payload archive", zap.Error(err))
	}

	// Shopify Admin API
	shopifyConfig := &ecommerce.ShopifyConfig{
		AdminToken:     cfg.Shopify.AdminToken,
		APIVersion:     cfg.Shopify.APIVersion,
		WebhookSecret:  cfg.Shopify.WebhookSecret,
		APISecret:      cfg.Shopify.APISecret,
		StoreDomain:    cfg.Shopify.StoreDomain,
		APIBaseURL:     cfg.Shopify.APIBaseURL,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	}
	shopifyClient, err := ecommerce.NewShopifyGraphQLClient(shopifyConfig)
	if err != nil {
		log.Fatal("Failed to create Shopify client", zap.Error(err))
	}
	shopifyClient.SetFulfillmentMetrics(fulfillmentMetrics)
	fulfillmentAdapter := ecommerce.NewShopifyFulfillmentAdapter(shopifyClient)
	companyAdapter := ecommerce.NewShopifyCompanyAdapter(shopifyClient)

	// Application services
	policy, err := integration.NewLocationPolicy(cfg.Fulfillment.Locations)
	if err != nil {
		log.Fatal("Invalid fulfillment location table", zap.Error(err))
	}
	reconciler := integrationapp.NewReconciler(fulfillmentAdapter, integrationapp.ReconcilerConfig{
		PageSize:        cfg.Fulfillment.PageSize,
		MaxPages:        cfg.Fulfillment.MaxPages,
		MoveConcurrency: cfg.Fulfillment.MoveConcurrency,
	})
	reconciler.SetFulfillmentMetrics(fulfillmentMetrics)

	serviceOpts := []integrationapp.OrderWebhookServiceOption{
		integrationapp.WithIdempotencyStore(deliveryStore, shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		}),
		integrationapp.WithPayloadArchive(archive),
		integrationapp.WithFulfillmentMetrics(fulfillmentMetrics),
	}
	if runRepo != nil {
		serviceOpts = append(serviceOpts, integrationapp.WithRunRepository(runRepo))
	}
	orderService := integrationapp.NewOrderWebhookService(policy, reconciler, serviceOpts...)
	companyService := integrationapp.NewCompanyService(companyAdapter)

	// Handlers
	verify := cfg.App.IsProduction() || cfg.Shopify.VerifyWebhooks
	if !verify {
		log.Warn("Shopify signature verification is disabled")
	}
	adminOpts := []handler.AdminHandlerOption{handler.WithDefaultShop(cfg.Shopify.StoreDomain)}
	if runRepo != nil {
		adminOpts = append(adminOpts, handler.WithRunQuerier(integrationapp.NewRunQueryService(runRepo)))
	}
	handlers := router.Handlers{
		Webhooks: handler.NewShopifyWebhookHandler(orderService, shopifyConfig, handler.ShopifyWebhookConfig{
			VerifySignatures: verify,
			MaxBodySize:      cfg.HTTP.WebhookMaxBodySize,
		}),
		Proxy: handler.NewProxyHandler(companyService, shopifyConfig, handler.ProxyConfig{
			VerifySignatures: verify,
			StoreDomain:      cfg.Shopify.StoreDomain,
		}),
		Admin:  handler.NewAdminHandler(shopifyClient, orderService, adminOpts...),
		System: handler.NewSystemHandler(cfg.App.Name, version, healthChecks...),
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: the request ID comes first so every later layer can log it,
	// and tracing precedes the enricher that writes to its span.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tel.tracer.IsEnabled(),
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: tel.metrics,
		Enabled:       tel.metrics.IsEnabled(),
	}))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   tel.profiler.IsEnabled(),
		SkipPaths: []string{"/health"},
	}))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.RequestTimeout(cfg.Fulfillment.RunTimeout))

	var proxyLimiter *middleware.RateLimiter
	if cfg.HTTP.ProxyRateLimit > 0 {
		proxyLimiter = middleware.NewRateLimiter(cfg.HTTP.ProxyRateLimit, cfg.HTTP.ProxyRateWindow)
		defer proxyLimiter.Stop()
		log.Info("Proxy rate limiting enabled",
			zap.Int("limit", cfg.HTTP.ProxyRateLimit),
			zap.Duration("window", cfg.HTTP.ProxyRateWindow),
		)
	}

	tokens := auth.NewJWTService(cfg.JWT)

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.JWTAuthMiddleware(tokens)),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterFulfillmentRoutes(r, handlers, router.RouteConfig{
		WebhookMaxBodySize: cfg.HTTP.WebhookMaxBodySize,
		Tokens:             tokens,
		ProxyLimiter:       proxyLimiter,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// telemetryProviders holds the OpenTelemetry providers and the profiler
type telemetryProviders struct {
	tracer   *telemetry.TracerProvider
	metrics  *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

func initTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*telemetryProviders, error) {
	t := cfg.Telemetry

	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           t.Enabled,
		CollectorEndpoint: t.CollectorEndpoint,
		SamplingRatio:     t.SamplingRatio,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           t.Enabled && t.MetricsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	logs, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           t.Enabled && t.LogsEnabled,
		CollectorEndpoint: t.CollectorEndpoint,
		ServiceName:       t.ServiceName,
		Insecure:          t.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         t.ProfilingEnabled,
		ServerAddress:   t.PyroscopeAddress,
		ApplicationName: t.ServiceName,
	}, log)
	if err != nil {
		return nil, err
	}
	if profiler.IsEnabled() && tracer.IsEnabled() {
		tracer.EnableSpanProfiles()
	}

	return &telemetryProviders{tracer: tracer, metrics: metrics, logs: logs, profiler: profiler}, nil
}

// shutdown flushes exporters in reverse start order
func (t *telemetryProviders) shutdown(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}
	if err := t.logs.Shutdown(ctx); err != nil {
		log.Error("Failed to shut down log export", zap.Error(err))
	}
	if err := t.metrics.Shutdown(ctx); err != nil {
		log.Error("Failed to shut down metric export", zap.Error(err))
	}
	if err := t.tracer.Shutdown(ctx); err != nil {
		log.Error("Failed to shut down trace export", zap.Error(err))
	}
}

func openJournal(cfg *config.Config, log *zap.Logger, metrics *telemetry.MeterProvider) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	if err := telemetry.InstrumentDatabase(db.DB, telemetry.DBInstrumentationConfig{
		TracingEnabled:     cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, metrics.Meter("fulfillment-router/db"), log); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	log.Info("Database connected successfully",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)
	return db, nil
}

func newPayloadArchive(ctx context.Context, cfg *config.Config, log *zap.Logger) (integration.PayloadArchive, error) {
	if !cfg.Archive.Enabled {
		log.Info("Payload archive disabled")
		return storage.NoopPayloadArchive{}, nil
	}

	archive, err := storage.NewS3PayloadArchive(&cfg.Archive, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Payload archive enabled", zap.String("bucket", archive.Bucket()))
	return archive, nil
}
