package routes

import (
	"teamvault_backend/internal/handlers"
	"teamvault_backend/internal/middleware"
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint under /api/v1. Everything except
// the auth endpoints and the health check requires a valid token.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, profileRepo repositories.ProfileRepository) {
	api := r.Group("/api/v1")

	api.GET("/health", h.HealthHandler.Check)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/refresh", h.AuthHandler.Refresh)
		auth.POST("/logout", h.AuthHandler.Logout)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(profileRepo))
	{
		files := authed.Group("/files")
		{
			files.GET("", h.GroupHandler.List)
			files.GET("/tags", h.GroupHandler.Tags)
			files.GET("/:id", h.GroupHandler.Detail)
			files.GET("/:id/edit", h.GroupHandler.GetForEdit)
			files.PUT("/:id", h.GroupHandler.Update)
			files.POST("/:id/editors", h.GroupHandler.AddEditor)
		}

		authed.POST("/upload",
			middleware.RequireRoles(models.ProfileRoleUploader, models.ProfileRoleAdmin),
			h.UploadHandler.Create)

		authed.GET("/members", h.MemberHandler.List)

		authed.GET("/settings", h.ProfileHandler.GetSettings)
		authed.PUT("/settings", h.ProfileHandler.UpdateSettings)

		admin := authed.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/stats", h.AdminHandler.Stats)
			admin.PUT("/members/:id", h.AdminHandler.UpdateMember)
		}
	}
}
