package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/leondli/gallery/internal/infrastructure/middleware"
	"github.com/leondli/gallery/pkg/jwt"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Folder *FolderHandler
	File   *FileHandler
	Tag    *TagHandler
	Event  *EventHandler
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers, jwtManager *jwt.Manager) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/refresh", handlers.Auth.RefreshToken)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		protected.POST("/auth/logout", handlers.Auth.Logout)
		protected.GET("/users/me", handlers.User.GetMe)

		// Folder routes
		folders := protected.Group("/folders")
		{
			folders.POST("", handlers.Folder.Create)
			folders.GET("", handlers.Folder.List)
			folders.GET("/:folder_id", handlers.Folder.Get)
			folders.GET("/:folder_id/files", handlers.File.List)
			folders.POST("/:folder_id/files", handlers.File.Register)
			folders.GET("/:folder_id/tags", handlers.Tag.ListByFolder)
			folders.POST("/:folder_id/tags", handlers.Tag.Create)
			folders.GET("/:folder_id/events", handlers.Event.Stream)
		}

		// File routes
		files := protected.Group("/files")
		{
			files.GET("/:file_id", handlers.File.Get)
			files.POST("/:file_id/tags", handlers.Tag.AddToFile)
			files.DELETE("/:file_id/tags", handlers.Tag.RemoveFromFile)
		}

		// Bulk tag routes
		tags := protected.Group("/tags")
		{
			tags.POST("/files", handlers.Tag.AddToFiles)
			tags.DELETE("/files", handlers.Tag.RemoveFromFiles)
		}
	}
}
