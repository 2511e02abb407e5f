package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"school_backend/internal/config"
	"school_backend/internal/controller"
	"school_backend/internal/middleware"
	"school_backend/internal/repository"
	"school_backend/internal/service"
	"school_backend/internal/util"
	"school_backend/pkg/configwatcher"
	"school_backend/pkg/database"
	"school_backend/pkg/logger"
	"school_backend/pkg/monitoring"
	"school_backend/pkg/security"
	"school_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	origins         *security.OriginList
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	quiz     *repository.QuizRepository
	progress *repository.ProgressRepository
	report   *repository.ReportRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	user           *service.UserService
	course         *service.CourseService
	quiz           *service.QuizService
	progress       *service.ProgressService
	scoring        *service.ScoringService
	me             *service.MeService
	teacherStudent *service.TeacherStudentService
	export         *service.ExportService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	course         *controller.CourseController
	quiz           *controller.QuizController
	progress       *controller.ProgressController
	me             *controller.MeController
	teacherStudent *controller.TeacherStudentController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 热更新：只处理日志级别和 CORS 白名单
func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		quiz:     repository.NewQuizRepository(db),
		progress: repository.NewProgressRepository(db),
		report:   repository.NewReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.user, repos.quiz)
	s.quiz = service.NewQuizService(repos.quiz, repos.course)
	s.progress = service.NewProgressService(repos.progress, repos.course)
	s.scoring = service.NewScoringService(db, repos.quiz, repos.progress)
	s.me = service.NewMeService(repos.user, repos.course, repos.progress, repos.report, s.storage)
	s.teacherStudent = service.NewTeacherStudentService(repos.report, repos.user)
	s.export = service.NewExportService(s.teacherStudent)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.user),
		course:         controller.NewCourseController(s.course, s.progress, s.scoring),
		quiz:           controller.NewQuizController(s.quiz),
		progress:       controller.NewProgressController(s.progress),
		me:             controller.NewMeController(s.me),
		teacherStudent: controller.NewTeacherStudentController(s.teacherStudent, s.export),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、数据库并组装应用，失败时直接退出进程
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := NewWithDB(cfg, db)

	if cfg.Tracing.Enabled && !cfg.MigrateOnly {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// NewWithDB 使用已打开的数据库组装路由，不做迁移
func NewWithDB(cfg *config.Config, db *gorm.DB) *App {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := util.RegisterValidators(); err != nil {
		logger.Log.Warn("Failed to register validators", zap.Error(err))
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		origins: security.NewOriginList(cfg.CORS.AllowedOrigins),
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		if logger.SetLevel(newCfg.Log.Level) {
			logger.Log.Info("Log level updated", zap.String("level", newCfg.Log.Level))
		}
	})
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.origins.Set(newCfg.CORS.AllowedOrigins)
	})

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.Server.WatchConfig && a.Config.ConfigFile != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("listen failed", zap.Error(err))
			stop()
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if err := database.Close(a.DB); err != nil {
		logger.Log.Error("Failed to close database", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
