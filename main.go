package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file found: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
}

func setupRouter(tokens *services.TokenService) *gin.Engine {
	router := gin.New()

	var redisClient *redis.Client
	if services.GlobalStatsCache != nil {
		redisClient = services.GlobalStatsCache.Client()
	}

	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.MetricsMiddleware())

	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	projectRepo := repository.GetProjectRepo(utils.MongoClient)
	taskRepo := repository.GetTaskRepo(utils.MongoClient)
	worklogRepo := repository.GetWorklogRepo(utils.MongoClient)
	activityRepo := repository.GetActivityRepo(utils.MongoClient)

	// Services
	projectService := &usecase.ProjectService{Projects: projectRepo}
	taskService := &usecase.TaskService{Tasks: taskRepo, Projects: projectRepo}
	worklogService := &usecase.WorklogService{Worklogs: worklogRepo, Users: userRepo}
	userService := &usecase.UserService{Users: userRepo}

	// Handlers
	authHandler := &handler.AuthHandler{Tokens: tokens, Users: userRepo, Activity: activityRepo}
	projectHandler := &handler.ProjectHandler{Projects: projectService, Activity: activityRepo}
	taskHandler := &handler.TaskHandler{Tasks: taskService, Activity: activityRepo}
	worklogHandler := &handler.WorklogHandler{Worklogs: worklogService, Activity: activityRepo}
	reportHandler := &handler.ReportHandler{WorklogReports: worklogRepo, Activity: activityRepo}
	dashboardHandler := &handler.DashboardHandler{
		Users:    userRepo,
		Projects: projectRepo,
		Tasks:    taskRepo,
		Worklogs: worklogRepo,
	}
	settingsHandler := &handler.SettingsHandler{Users: userService, Activity: activityRepo}

	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimit := middleware.RateLimitMiddleware(redisClient, 100, 15*time.Minute)
	canManage := middleware.RequireRoles(model.RoleAdmin, model.RoleTeamLead)

	// Public routes
	public := router.Group("/api")
	public.Use(rateLimit)
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(rateLimit)
	protected.Use(middleware.AuthMiddleware(tokens, userRepo))
	{
		auth := protected.Group("/auth")
		{
			auth.GET("/verify", authHandler.Verify)
			auth.POST("/logout", authHandler.Logout)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("", canManage, projectHandler.Create)
			projects.PUT("/:id", canManage, projectHandler.Update)
			projects.DELETE("/:id", canManage, projectHandler.Delete)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.GET("/:id", taskHandler.Get)
			tasks.POST("", canManage, taskHandler.Create)
			tasks.PUT("/:id", canManage, taskHandler.Update)
			tasks.DELETE("/:id", canManage, taskHandler.Delete)
		}

		worklogs := protected.Group("/worklogs")
		{
			worklogs.GET("/my", worklogHandler.My)
			worklogs.GET("", worklogHandler.List)
			worklogs.POST("", worklogHandler.Log)
			worklogs.PUT("/:id", worklogHandler.Update)
		}

		reports := protected.Group("/reports")
		reports.Use(canManage)
		{
			reports.GET("", reportHandler.Worklogs)
			reports.GET("/activity", reportHandler.ActivityLogs)
			reports.GET("/top-users", reportHandler.TopUsers)
		}

		protected.GET("/dashboard/stats", dashboardHandler.Stats)

		settings := protected.Group("/settings")
		{
			settings.GET("/profile", settingsHandler.GetProfile)
			settings.PUT("/profile", settingsHandler.UpdateProfile)
			settings.POST("/change-password", settingsHandler.ChangePassword)
			settings.POST("/deactivate", settingsHandler.Deactivate)
		}
	}

	return router
}

func main() {
	seed := flag.Bool("seed", false, "load the demo data set and exit")
	flag.Parse()

	dbConfig := config.LoadDatabaseConfig()
	utils.InitMongoClient(dbConfig.ClientOptions())

	if *seed {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := repository.SeedDemoData(ctx, utils.MongoClient, dbConfig.DatabaseName); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		return
	}

	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Redis is optional: without it the API runs with rate limiting and stats
	// caching disabled.
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewStatsCache(redisURL,
			utils.GetEnvAsDuration("STATS_CACHE_TTL", time.Minute))
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache: %v", err)
		} else {
			services.GlobalStatsCache = cache
		}
	}

	tokenConfig := config.LoadTokenConfig()
	tokens := services.NewTokenService(tokenConfig.Secret, tokenConfig.TTL)

	utils.StartSystemMetrics(15 * time.Second)

	router := setupRouter(tokens)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
