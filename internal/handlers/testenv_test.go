package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildtrack/construct-api/internal/auth"
	"github.com/buildtrack/construct-api/internal/database"
	"github.com/buildtrack/construct-api/internal/middleware"
	"github.com/buildtrack/construct-api/internal/models"
	"github.com/buildtrack/construct-api/internal/repository"
	"github.com/buildtrack/construct-api/internal/services"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.Manager
	accounts    *services.AccountService
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewManager("test-secret")
	accounts := services.NewAccountService(userRepo, projectRepo, taskRepo)
	authService := services.NewAuthService(userRepo, tokens)

	authHandler := NewAuthHandler(authService, accounts)
	userHandler := NewUserHandler(accounts)
	projectHandler := NewProjectHandler(projectRepo, userRepo)
	taskHandler := NewTaskHandler(taskRepo, projectRepo, userRepo)

	r := gin.New()
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(tokens), middleware.RequireRole(models.RoleAdmin))
	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.PATCH("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)
	users.GET("/:id/projects", userHandler.GetAssociatedProjects)

	projects := api.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens))
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.PATCH("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	tasks := api.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokens))
	tasks.GET("", taskHandler.ListTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		tokens:      tokens,
		accounts:    accounts,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// createUser persists a user with the given role and returns it with a
// valid access token.
func (env testEnv) createUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()

	user, err := env.accounts.CreateUser(services.CreateUserInput{
		Username:        username,
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            role,
	})
	require.NoError(t, err)

	token, err := env.tokens.IssueAccess(user)
	require.NoError(t, err)

	return user, token
}

func (env testEnv) createProject(t *testing.T, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:      name,
		Location:  "Site A",
		Client:    "Acme Construction",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.ProjectStatusPlanning,
	}
	require.NoError(t, env.projectRepo.Create(project))
	return project
}

// request performs an authenticated JSON request against the test router.
func (env testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
