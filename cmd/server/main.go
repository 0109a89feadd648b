package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buildtrack/construct-api/internal/auth"
	"github.com/buildtrack/construct-api/internal/config"
	"github.com/buildtrack/construct-api/internal/database"
	"github.com/buildtrack/construct-api/internal/handlers"
	"github.com/buildtrack/construct-api/internal/logging"
	"github.com/buildtrack/construct-api/internal/middleware"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
	"github.com/buildtrack/construct-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.L().Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize Gin router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewManager(cfg.JWTSecretKey)
	accountService := services.NewAccountService(userRepo, projectRepo, taskRepo)
	authService := services.NewAuthService(userRepo, tokens)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, accountService)
	userHandler := handlers.NewUserHandler(accountService)
	projectHandler := handlers.NewProjectHandler(projectRepo, userRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo, projectRepo, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Construction API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// User routes (admin only, reads included)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens), middleware.RequireRole(models.RoleAdmin))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/projects", userHandler.GetAssociatedProjects)
		}

		// Project routes (any authenticated user)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		// Task routes (any authenticated user)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Start server
	logging.L().Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to start server")
	}
}
