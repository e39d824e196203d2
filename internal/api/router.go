package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tasksea/marketplace-api/internal/api/handler"
	"github.com/tasksea/marketplace-api/internal/api/middleware"
	"github.com/tasksea/marketplace-api/internal/core/domain"
	"github.com/tasksea/marketplace-api/internal/core/service"
	mongodb "github.com/tasksea/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tasksea/marketplace-api/internal/infrastructure/db/redis"
	"github.com/tasksea/marketplace-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	taskRepo := mongodb.NewTaskRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	// --- Services ---
	taskService := service.NewTaskService(taskRepo, appRepo, userRepo, categoryRepo, log)
	appService := service.NewApplicationService(appRepo, taskRepo, userRepo, categoryRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, taskRepo, log)
	adminService := service.NewAdminService(userRepo, taskRepo, appRepo, categoryRepo, statsCache, log)
	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)

	// --- Handlers ---
	taskHandler := handler.NewTaskHandler(taskService)
	appHandler := handler.NewApplicationHandler(appService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminHandler := handler.NewAdminHandler(adminService, categoryService)
	authHandler := handler.NewAuthHandler(authService)

	authRequired := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Task routes ---
	// The /user/* routes must be registered before /:id so Echo does not
	// capture "user" as a task id.
	tasks := e.Group("/v1/tasks")
	tasks.GET("/user/posted", taskHandler.ListPosted, authRequired)
	tasks.GET("/user/applications", appHandler.ListMine, authRequired)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create, authRequired)
	tasks.PUT("/:id", taskHandler.Update, authRequired)
	tasks.DELETE("/:id", taskHandler.Delete, authRequired)
	tasks.POST("/:id/apply", appHandler.Apply, authRequired)
	tasks.GET("/:id/applications", appHandler.ListForTask, authRequired)
	tasks.PUT("/:id/applications/:applicationId", appHandler.Decide, authRequired)

	// --- Category routes ---
	categories := e.Group("/v1/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, authRequired, adminOnly)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authRequired, adminOnly)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/tasks", adminHandler.ListTasks)
	admin.DELETE("/tasks/:id", adminHandler.DeleteTask)
	admin.GET("/categories", adminHandler.ListCategories)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
