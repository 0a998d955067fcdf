package app

import (
	"child_growth_backend/internal/config"
	"child_growth_backend/internal/controller"
	"child_growth_backend/internal/repository"
	"child_growth_backend/internal/service"
	"child_growth_backend/internal/util"
	"child_growth_backend/pkg/configwatcher"
	"child_growth_backend/pkg/database"
	"child_growth_backend/pkg/logger"
	"child_growth_backend/pkg/monitoring"
	"child_growth_backend/pkg/security"
	"child_growth_backend/pkg/tracing"
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client

	services        *services
	limiter         *security.Limiter
	memorySessions  *repository.MemorySessionStore
	shutdownTracer  func(context.Context) error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	child      *repository.ChildRepository
	question   *repository.QuestionRepository
	assessment *repository.AssessmentRepository
	session    repository.SessionStore
}

type services struct {
	entitlement     *service.EntitlementService
	scoring         *service.ScoringService
	dailyAssessment *service.DailyAssessmentService
}

type controllers struct {
	dailyAssessment *controller.DailyAssessmentController
	health          *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:       repository.NewUserRepository(db),
		child:      repository.NewChildRepository(db),
		question:   repository.NewQuestionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
	}

	if a.Config.Assessment.SessionStore == util.SessionStoreMemory {
		a.memorySessions = repository.NewMemorySessionStore(time.Now)
		repos.session = a.memorySessions
		logger.Log.Warn("Using in-process session store, do not run more than one instance")
	} else {
		repos.session = repository.NewRedisSessionStore(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) (*services, error) {
	clock, err := service.NewZonedClock(cfg.Assessment.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "load timezone %q", cfg.Assessment.Timezone)
	}

	s := &services{}
	s.entitlement = service.NewEntitlementService(repos.user, clock)
	s.scoring = service.NewScoringService(repos.assessment)
	s.dailyAssessment = service.NewDailyAssessmentService(
		db,
		repos.child,
		repos.question,
		repos.question,
		repos.session,
		repos.assessment,
		s.entitlement,
		s.scoring,
		clock,
		cfg.Assessment.SessionTTL(),
	)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		ttl := newCfg.Assessment.SessionTTL()
		if ttl != s.dailyAssessment.SessionTTL() {
			s.dailyAssessment.SetSessionTTL(ttl)
			logger.Log.Info("Session TTL updated", zap.Duration("ttl", ttl))
		}
	})
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		dailyAssessment: controller.NewDailyAssessmentController(s.dailyAssessment),
		health:          controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, window)
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 后台任务在 ctx 结束时退出
func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.limiter.RunJanitor(ctx, time.Minute)

	if a.memorySessions != nil {
		a.memorySessions.StartJanitor(time.Minute)
		go func() {
			<-ctx.Done()
			a.memorySessions.Stop()
		}()
	}

	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}
}

func NewApp(cfg *config.Config, configDir string) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, errors.Wrap(err, "initialize database")
	}

	// release 模式下默认不自动迁移，需要显式 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, errors.Wrap(err, "migrate database")
		}
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	if cfg.Assessment.SessionStore == util.SessionStoreRedis {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "initialize redis")
		}
		app.Redis = rdb
	}

	repos := app.initRepositories(db, app.Redis)
	services, err := app.initServices(repos, cfg, db)
	if err != nil {
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("child-growth-backend", cfg.Tracing.CollectorEndpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return nil, errors.Wrap(err, "initialize tracing")
		}
		app.shutdownTracer = tp.Shutdown
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == "debug" {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.startBackgroundTasks(ctx)

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Server listen failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}

// Close 释放数据库、Redis 和 tracer
func (a *App) Close(ctx context.Context) {
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Log.Error("Failed to close database", zap.Error(err))
		}
	}
	_ = logger.Log.Sync()
}
