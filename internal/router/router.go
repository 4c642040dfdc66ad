package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sprintboard-dev/sprintboard/internal/handlers"
	"github.com/sprintboard-dev/sprintboard/internal/middleware"
	"github.com/sprintboard-dev/sprintboard/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r)

	return r
}

// RegisterRoutes wires the public API onto the engine.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
	r.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.BoardSocket)

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/profile", middleware.AuthMiddleware(), handlers.GetProfile)
		auth.PUT("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
		auth.DELETE("/profile", middleware.AuthMiddleware(), handlers.DeleteProfile)
	}

	projects := r.Group("/projects", middleware.AuthMiddleware())
	{
		projects.GET("/", handlers.ListProjects)
		projects.POST("/", handlers.CreateProject)
		projects.GET("/:project_id/", handlers.GetProject)
		projects.PUT("/:project_id/", handlers.UpdateProject)
		projects.DELETE("/:project_id/", handlers.DeleteProject)
		projects.GET("/:project_id/labels/", handlers.ListLabels)
		projects.POST("/:project_id/labels/", handlers.CreateLabel)
	}

	tasks := r.Group("/tasks", middleware.AuthMiddleware())
	{
		tasks.GET("/", handlers.ListTasks)
		tasks.POST("/", handlers.CreateTask)
		tasks.PATCH("/status-update/", handlers.StatusUpdate)
		tasks.GET("/search", handlers.SearchTasks)
		tasks.GET("/:task_id/", handlers.GetTask)
		tasks.PUT("/:task_id/", handlers.UpdateTask)
		tasks.DELETE("/:task_id/", handlers.DeleteTask)
		tasks.GET("/:task_id/comments/", handlers.ListComments)
		tasks.POST("/:task_id/comments/", handlers.CreateComment)
	}

	analytics := r.Group("/analytics", middleware.AuthMiddleware())
	{
		analytics.GET("/dashboard", handlers.AnalyticsDashboard)
		analytics.POST("/behavior", handlers.TrackBehavior)
	}

	r.GET("/kanban/:project_id/", middleware.AuthMiddleware(), handlers.KanbanBoard)
}
