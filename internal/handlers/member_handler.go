package handlers

import (
	"net/http"

	"teamvault_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewMemberHandler(base *BaseHandler, profileService services.ProfileService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// List returns the full roster, every profile with its login email.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.profileService.ListMembers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
