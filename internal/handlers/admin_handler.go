package handlers

import (
	"net/http"

	"teamvault_backend/internal/services"
	"teamvault_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService   services.AdminService
	profileService services.ProfileService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, profileService services.ProfileService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    base,
		adminService:   adminService,
		profileService: profileService,
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpdateMember changes a member's role and status.
func (h *AdminHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateMember(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
