package middleware

import (
	"strings"

	"teamvault_backend/internal/auth"
	"teamvault_backend/internal/logger"
	"teamvault_backend/internal/models"
	"teamvault_backend/internal/repositories"
	"teamvault_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys set by AuthMiddleware.
	ContextUserIDKey  = "userID"
	ContextProfileKey = "profile"
)

// AuthMiddleware validates the Bearer token and loads the caller's
// profile into the request context. Every request behind it carries a
// real, current profile; role changes take effect on the next request.
func AuthMiddleware(profileRepo repositories.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header is missing or malformed"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		profile, err := profileRepo.FindByID(claims.UserID)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "token holder has no profile", "user_id", claims.UserID)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextProfileKey, profile)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireRoles rejects callers whose profile role is not in the allowed
// set. Must run after AuthMiddleware.
func RequireRoles(roles ...models.ProfileRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := ProfileFromContext(c)
		if profile == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}

		apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
		c.Abort()
	}
}

// AdminMiddleware restricts a group to admins.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.ProfileRoleAdmin)
}

// ProfileFromContext returns the profile set by AuthMiddleware, or nil.
func ProfileFromContext(c *gin.Context) *models.Profile {
	val, ok := c.Get(ContextProfileKey)
	if !ok {
		return nil
	}
	profile, ok := val.(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
