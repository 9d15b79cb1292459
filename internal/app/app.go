package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/controller"
	"rhello_flow_backend/internal/repository"
	"rhello_flow_backend/internal/service"
	"rhello_flow_backend/pkg/configwatcher"
	"rhello_flow_backend/pkg/database"
	"rhello_flow_backend/pkg/logger"
	"rhello_flow_backend/pkg/monitoring"
	"rhello_flow_backend/pkg/security"
	"rhello_flow_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	candidate *repository.CandidateRepository
	vaga      *repository.VagaRepository
	template  *repository.TemplateRepository
	scorecard *repository.ScorecardRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	candidate    *service.CandidateService
	vaga         *service.VagaService
	template     *service.TemplateService
	scorecard    *service.ScorecardService
	externalTest *service.ExternalTestService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	candidate    *controller.CandidateController
	vaga         *controller.VagaController
	template     *controller.TemplateController
	scorecard    *controller.ScorecardController
	externalTest *controller.ExternalTestController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		candidate: repository.NewCandidateRepository(db),
		vaga:      repository.NewVagaRepository(db),
		template:  repository.NewTemplateRepository(db),
		scorecard: repository.NewScorecardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.candidate = service.NewCandidateService(repos.candidate, storage)
	s.vaga = service.NewVagaService(repos.vaga, repos.scorecard)
	s.template = service.NewTemplateService(repos.template)
	s.scorecard = service.NewScorecardService(repos.scorecard, repos.template, repos.candidate)
	s.externalTest = service.NewExternalTestService(repos.scorecard, repos.template, repos.candidate, rdb, cfg)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user),
		candidate:    controller.NewCandidateController(s.candidate),
		vaga:         controller.NewVagaController(s.vaga),
		template:     controller.NewTemplateController(s.template),
		scorecard:    controller.NewScorecardController(s.scorecard, s.externalTest),
		externalTest: controller.NewExternalTestController(s.externalTest),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1200
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("rhello-flow", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// recarrega a quente os campos seguros quando o arquivo de config muda
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		updated, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		cfg.ExternalTest = updated.ExternalTest
		cfg.JWT = updated.JWT
		logger.Log.Info("configuração recarregada")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
