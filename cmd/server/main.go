package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgdesk/backend/internal/application/action"
	catalogapp "github.com/orgdesk/backend/internal/application/catalog"
	companyapp "github.com/orgdesk/backend/internal/application/company"
	identityapp "github.com/orgdesk/backend/internal/application/identity"
	orgapp "github.com/orgdesk/backend/internal/application/organization"
	partnerapp "github.com/orgdesk/backend/internal/application/partner"
	"github.com/orgdesk/backend/internal/application/workflow"
	"github.com/orgdesk/backend/internal/domain/partner"
	"github.com/orgdesk/backend/internal/infrastructure/auth"
	"github.com/orgdesk/backend/internal/infrastructure/cache"
	"github.com/orgdesk/backend/internal/infrastructure/config"
	"github.com/orgdesk/backend/internal/infrastructure/event"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"github.com/orgdesk/backend/internal/infrastructure/persistence"
	"github.com/orgdesk/backend/internal/infrastructure/scheduler"
	"github.com/orgdesk/backend/internal/infrastructure/storage"
	"github.com/orgdesk/backend/internal/infrastructure/telemetry"
	"github.com/orgdesk/backend/internal/interfaces/http/handler"
	"github.com/orgdesk/backend/internal/interfaces/http/middleware"
	"github.com/orgdesk/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			orgdesk API
//	@version		1.0
//	@description	Multi-tenant back office API: organizations, clients, suppliers, products, categories and companies

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}
	otel, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		_ = otel.Shutdown(context.Background())
	}()
	log = otel.BridgeLogger(log, zapcore.InfoLevel)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   cfg.Telemetry.ProfilingApplicationName,
		BasicAuthUser:     cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingBasicAuthPassword,
		ProfileTypes:      cfg.Telemetry.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.Enabled() && otel.Enabled() && cfg.Telemetry.SpanProfiles {
		otel.EnableSpanProfiles()
	}

	log.Info("Starting orgdesk",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)

	db, err := persistence.NewDatabase(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if otel.Enabled() && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.InstrumentGORM(db.DB, db.Driver, false); err != nil {
			log.Warn("Failed to instrument database", zap.Error(err))
		}
	}

	// Production schemas are managed by cmd/migrate
	if !cfg.IsProduction() {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Driver == "redis" {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
	}

	tagCache, err := cache.New(cfg.Cache, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}

	var revocations auth.RevocationList = auth.NewMemoryRevocationList()
	if redisClient != nil {
		revocations = auth.NewRedisRevocationList(redisClient, cfg.Cache.KeyPrefix)
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)

	// Event bus feeds the activity log
	eventBus := event.NewInMemoryEventBus(log)
	activityHandler := event.NewActivityLogHandler(activityRepo)
	eventBus.Subscribe(activityHandler, activityHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	actionMetrics, err := telemetry.NewActionMetrics(otel.Meter(serviceName))
	if err != nil {
		log.Fatal("Failed to create action metrics", zap.Error(err))
	}

	objectStorage, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	exec := action.NewExecutor(membershipRepo,
		action.WithCache(tagCache),
		action.WithObserver(actionMetrics),
		action.WithEvents(eventBus),
		action.WithLogger(log),
	)
	policy := workflow.Policy{Enforce: cfg.Workflow.EnforceStatusTransitions}
	ttl := cfg.Cache.TTL

	// Initialize application services
	tokens := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokens, revocations, exec, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	})
	orgService := orgapp.NewService(orgRepo, membershipRepo, userRepo, activityRepo, orgapp.OverviewSources{
		Clients:    clientRepo,
		Suppliers:  supplierRepo,
		Products:   productRepo,
		Categories: categoryRepo,
		Companies:  companyRepo,
	}, exec, ttl)
	clientService := partnerapp.NewClientService(clientRepo, exec, policy, ttl)
	supplierService := partnerapp.NewSupplierService(supplierRepo, exec, policy, ttl)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo, exec, policy, ttl)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, exec, ttl, cfg.Cache.TreeTTL)
	companyService := companyapp.NewService(companyRepo, objectStorage, exec, ttl, cfg.Storage.MaxLogoSize)
	owners := partnerapp.Owners{Clients: clientRepo, Suppliers: supplierRepo, Companies: companyRepo}
	contactService := partnerapp.NewContactService(contactRepo, owners, exec)
	addressService := partnerapp.NewAddressService(addressRepo, owners, exec)

	handlers := router.Handlers{
		Auth:              handler.NewAuthHandler(authService),
		Organizations:     handler.NewOrganizationHandler(orgService),
		Clients:           handler.NewClientHandler(clientService),
		Suppliers:         handler.NewSupplierHandler(supplierService),
		Products:          handler.NewProductHandler(productService),
		Categories:        handler.NewCategoryHandler(categoryService),
		Companies:         handler.NewCompanyHandler(companyService),
		ClientContacts:    handler.NewContactHandler(contactService, partner.OwnerClient),
		SupplierContacts:  handler.NewContactHandler(contactService, partner.OwnerSupplier),
		ClientAddresses:   handler.NewAddressHandler(addressService, partner.OwnerClient),
		SupplierAddresses: handler.NewAddressHandler(addressService, partner.OwnerSupplier),
		CompanyAddresses:  handler.NewAddressHandler(addressService, partner.OwnerCompany),
	}

	housekeeping := scheduler.New(scheduler.DefaultConfig(), log)

	guards := router.Guards{
		RequireAuth: middleware.Auth(middleware.AuthConfig{
			Tokens:      tokens,
			Revocations: revocations,
			Logger:      log,
		}),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		credentialLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		mustRegister(log, housekeeping, sweepTask("credential-limiter-sweep", credentialLimiter))
		guards.CredentialLimit = middleware.RateLimit(credentialLimiter)
	}

	checks := map[string]handler.HealthCheck{
		"database": func(context.Context) error { return db.Ping() },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	engineCfg := router.EngineConfig{
		HTTP:   cfg.HTTP,
		Logger: log,
		System: handler.NewSystemHandler(cfg.App.Name, version, checks),
	}
	if otel.Enabled() {
		engineCfg.ServiceName = serviceName
	}
	engineCfg.Profiling = profiler.Enabled()
	if cfg.Metrics.Enabled {
		engineCfg.Metrics = telemetry.NewHTTPMetrics("orgdesk")
		engineCfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.HTTP.RateLimitEnabled {
		globalLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		mustRegister(log, housekeeping, sweepTask("rate-limiter-sweep", globalLimiter))
		engineCfg.RateLimiter = globalLimiter
	}
	if memory, ok := revocations.(*auth.MemoryRevocationList); ok {
		mustRegister(log, housekeeping, scheduler.Task{
			Name:     "revocation-prune",
			Interval: cfg.JWT.AccessTokenExpiration,
			Run: func(context.Context) error {
				if n := memory.Prune(); n > 0 {
					log.Debug("Pruned expired token revocations", zap.Int("count", n))
				}
				return nil
			},
		})
	}

	if err := housekeeping.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = housekeeping.Stop(stopCtx)
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewEngine(engineCfg)
	router.NewRouter(engine).Register(router.APIGroups(handlers, guards)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func sweepTask(name string, limiter *middleware.RateLimiter) scheduler.Task {
	return scheduler.Task{
		Name:     name,
		Interval: limiter.Window(),
		Run: func(context.Context) error {
			limiter.Sweep()
			return nil
		},
	}
}

func mustRegister(log *zap.Logger, s *scheduler.Scheduler, task scheduler.Task) {
	if err := s.Register(task); err != nil {
		log.Fatal("Failed to register scheduled task", zap.String("task", task.Name), zap.Error(err))
	}
}
