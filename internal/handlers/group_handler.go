package handlers

import (
	"net/http"
	"sync"

	"teamvault_backend/internal/services"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/internal/types"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	*BaseHandler
	groupService services.GroupService
	seqGuards    sync.Map // viewer id -> *types.SequenceGuard
}

func NewGroupHandler(base *BaseHandler, groupService services.GroupService) *GroupHandler {
	return &GroupHandler{
		BaseHandler:  base,
		groupService: groupService,
	}
}

// List returns one page of upload groups. The optional seq parameter is
// the client's own query counter: it is echoed back, and the response is
// flagged stale when a higher number from the same viewer was already
// answered, so an overtaken filter query never replaces a newer result.
func (h *GroupHandler) List(c *gin.Context) {
	viewer, ok := h.CurrentProfile(c)
	if !ok {
		return
	}

	query := types.NewListQuery()
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.PageSize = types.DefaultPageSize

	resp, err := h.groupService.List(viewer, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if seq := ParseQueryInt64(c, "seq", 0); seq > 0 {
		resp.Seq = seq
		resp.Stale = !h.guardFor(viewer.ID).Observe(seq)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GroupHandler) guardFor(viewerID string) *types.SequenceGuard {
	g, _ := h.seqGuards.LoadOrStore(viewerID, &types.SequenceGuard{})
	return g.(*types.SequenceGuard)
}

// Tags returns every distinct tag for the filter dropdown.
func (h *GroupHandler) Tags(c *gin.Context) {
	tags, err := h.groupService.Tags()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *GroupHandler) Detail(c *gin.Context) {
	viewer, ok := h.CurrentProfile(c)
	if !ok {
		return
	}

	detail, err := h.groupService.GetDetail(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *GroupHandler) GetForEdit(c *gin.Context) {
	viewer, ok := h.CurrentProfile(c)
	if !ok {
		return
	}

	payload, err := h.groupService.GetForEdit(viewer, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (h *GroupHandler) Update(c *gin.Context) {
	viewer, ok := h.CurrentProfile(c)
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payload, err := h.groupService.Update(viewer, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (h *GroupHandler) AddEditor(c *gin.Context) {
	viewer, ok := h.CurrentProfile(c)
	if !ok {
		return
	}

	var req dto.AddEditorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payload, err := h.groupService.AddEditor(viewer, c.Param("id"), req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}
