package routes

import (
	"net/http"
	"time"

	"taskpilot/handlers"
	"taskpilot/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handler sets the router wires up.
type HandlerBundle struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Task     *handlers.TaskHandler
	Settings *handlers.SettingsHandler
}

// RegisterAuthRoutes registers registration/login/logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.DELETE("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/user")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("/profile", hb.User.GetProfileHandler)
	}
}

// RegisterTaskRoutes registers task CRUD endpoints.
func RegisterTaskRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/tasks")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.Task.ListTasksHandler)
		api.POST("", hb.Task.CreateTaskHandler)
		api.GET("/:id", hb.Task.GetTaskHandler)
		api.PUT("/:id", hb.Task.UpdateTaskHandler)
		api.DELETE("/:id", hb.Task.DeleteTaskHandler)
	}
}

// RegisterSettingsRoutes registers reminder-settings endpoints.
func RegisterSettingsRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/settings")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.Settings.GetSettingsHandler)
		api.PUT("", hb.Settings.UpdateSettingsHandler)
	}

	notif := r.Group("/api/notifications")
	notif.Use(middleware.JWTAuthMiddleware())
	{
		notif.POST("/test", hb.Settings.TestNotificationHandler)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires up cors and every route group.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterTaskRoutes(r, hb)
	RegisterSettingsRoutes(r, hb)
	RegisterHealthRoute(r)
}
