package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school_records_backend/internal/config"
	"school_records_backend/internal/controller"
	"school_records_backend/internal/middleware"
	"school_records_backend/internal/model"
	"school_records_backend/internal/repository"
	"school_records_backend/internal/service"
	"school_records_backend/internal/util"
	"school_records_backend/pkg/configwatcher"
	"school_records_backend/pkg/database"
	"school_records_backend/pkg/logger"
	"school_records_backend/pkg/monitoring"
	"school_records_backend/pkg/security"
	"school_records_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user   *repository.UserRepository
	class  *repository.ClassRepository
	grade  *repository.GradeRepository
	rules  *repository.ApprovalRuleRepository
	export *repository.ExportRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	rules    *service.RulesService
	grade    *service.GradeService
	approval *service.ApprovalService
	export   *service.ExportService
}

type controllers struct {
	auth     *controller.AuthController
	grade    *controller.GradeController
	approval *controller.ApprovalController
	rules    *controller.RulesController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:   repository.NewUserRepository(db),
		class:  repository.NewClassRepository(db),
		grade:  repository.NewGradeRepository(db),
		rules:  repository.NewApprovalRuleRepository(db),
		export: repository.NewExportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	var cache service.ResultCache = service.NoopResultCache{}
	if rdb != nil {
		cache = service.NewRedisResultCache(rdb, cfg.Grading.ResultCacheTTL)
	}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.rules = service.NewRulesService(repos.rules, cfg.Grading)
	s.grade = service.NewGradeService(repos.class, repos.grade, s.rules, cache)
	s.approval = service.NewApprovalService(repos.class, repos.grade, s.rules, cache)
	s.export = service.NewExportService(s.approval, s.storage, repos.export)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.rules.Reload(newCfg.Grading)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		grade:    controller.NewGradeController(s.grade),
		approval: controller.NewApprovalController(s.approval, s.export),
		rules:    controller.NewRulesController(s.rules),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// connectRedis returns nil when redis is not configured or unreachable;
// results are then computed on every request.
func connectRedis(cfg *config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		logger.Log.Info("Redis not configured, result cache disabled")
		return nil
	}
	rdb, err := database.InitRedis(cfg)
	if err != nil {
		logger.Log.Warn("Failed to initialize redis, result cache disabled", zap.Error(err))
		return nil
	}
	return rdb
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
		DB:        db,
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb := connectRedis(&cfg.Redis)
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	return app
}

// CreateAdmin bootstraps the first administrator account.
func (a *App) CreateAdmin(ctx context.Context, email, password string) error {
	user := &model.User{
		Name:     "Administrador",
		Email:    email,
		Password: password,
		Role:     model.Admin,
	}
	if err := a.services.auth.CreateUser(ctx, user); err != nil {
		return err
	}
	logger.Log.Info("Admin account created", zap.String("email", email))
	return nil
}

func (a *App) watchConfig(ctx context.Context) {
	if a.ConfigDir == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.ConfigDir, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	a.watchConfig(ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// wait for an interrupt, then give in-flight requests 5 seconds
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
