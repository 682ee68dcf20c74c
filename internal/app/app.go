package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/controller"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/pkg/database"
	"learning_path_backend/pkg/logger"
	"learning_path_backend/pkg/monitoring"
	"learning_path_backend/pkg/security"
	"learning_path_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	profile        *repository.ProfileRepository
	skill          *repository.SkillRepository
	category       *repository.CategoryRepository
	course         *repository.CourseRepository
	review         *repository.ReviewRepository
	courseProgress *repository.CourseProgressRepository
	pathProgress   *repository.PathProgressRepository
	learningPath   *repository.LearningPathRepository
}

type services struct {
	auth         *service.AuthService
	profile      *service.ProfileService
	skill        *service.SkillService
	category     *service.CategoryService
	course       *service.CourseService
	review       *service.ReviewService
	progress     *service.ProgressService
	learningPath *service.LearningPathService
	dashboard    *service.DashboardService
	stats        *service.StatsService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	profile      *controller.ProfileController
	skill        *controller.SkillController
	category     *controller.CategoryController
	course       *controller.CourseController
	review       *controller.ReviewController
	progress     *controller.ProgressController
	learningPath *controller.LearningPathController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig distributes a reloaded config to the registered listeners.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		profile:        repository.NewProfileRepository(db),
		skill:          repository.NewSkillRepository(db),
		category:       repository.NewCategoryRepository(db),
		course:         repository.NewCourseRepository(db),
		review:         repository.NewReviewRepository(db),
		courseProgress: repository.NewCourseProgressRepository(db),
		pathProgress:   repository.NewPathProgressRepository(db),
		learningPath:   repository.NewLearningPathRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.profile, cfg)
	s.profile = service.NewProfileService(repos.profile, repos.user, repos.skill, repos.course, repos.learningPath)
	s.skill = service.NewSkillService(repos.skill)
	s.category = service.NewCategoryService(repos.category)
	s.course = service.NewCourseService(repos.course, repos.category, repos.review, repos.courseProgress)
	s.review = service.NewReviewService(repos.review, repos.course)
	s.progress = service.NewProgressService(repos.courseProgress, repos.pathProgress, repos.course, repos.learningPath)
	s.learningPath = service.NewLearningPathService(repos.learningPath, repos.course)
	s.dashboard = service.NewDashboardService(repos.user, repos.profile, repos.skill, repos.course, repos.learningPath, repos.courseProgress, repos.pathProgress, s.progress)
	s.stats = service.NewStatsService(repos.course, repos.learningPath, repos.user, rdb, logger.Log)

	// Catalog writes invalidate the cached public totals.
	s.course.Stats = s.stats
	s.learningPath.Stats = s.stats

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		profile:      controller.NewProfileController(s.profile, s.storage),
		skill:        controller.NewSkillController(s.skill),
		category:     controller.NewCategoryController(s.category),
		course:       controller.NewCourseController(s.course),
		review:       controller.NewReviewController(s.review),
		progress:     controller.NewProgressController(s.progress),
		learningPath: controller.NewLearningPathController(s.learningPath),
		dashboard:    controller.NewDashboardController(s.dashboard, s.stats),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis only backs the public stats cache, so a missing instance
		// degrades rather than aborts.
		logger.Log.Warn("Redis unavailable, stats caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learning-path-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	logger.Log.Sync()
	log.Println("Server exiting")
}
