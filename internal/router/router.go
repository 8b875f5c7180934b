package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	authpkg "github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/config"
	"github.com/teamboard-dev/teamboard/internal/handlers"
	"github.com/teamboard-dev/teamboard/internal/middleware"
)

func NewRouter(tokens *authpkg.TokenManager, bcryptCost int, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	// cors.New rejects an empty allow-list outright; fall back to the
	// development defaults.
	if len(allowedOrigins) == 0 {
		allowedOrigins = config.Config{}.Origins()
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(tokens, bcryptCost)
	requireAuth := middleware.AuthMiddleware(tokens)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, handlers.Me)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PATCH("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.POST("", handlers.CreateTask)
			tasks.GET("/project/:project_id", handlers.ListTasksByProject)
			tasks.PATCH("/:id", handlers.UpdateTask)
			tasks.DELETE("/:id", handlers.DeleteTask)
		}
	}

	return r
}
