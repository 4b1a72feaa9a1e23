package handlers

import (
	"net/http"

	"teamvault_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

// Check pings the database through the pool placed in the request
// context by DBMiddleware.
func (h *HealthHandler) Check(c *gin.Context) {
	db := h.GetDB(c)

	sqlDB, err := db.DB()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
