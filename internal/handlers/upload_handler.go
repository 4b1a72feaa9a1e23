package handlers

import (
	"net/http"

	"teamvault_backend/internal/services"
	"teamvault_backend/internal/services/dto"
	"teamvault_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	maxFileSize   int64
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
	}
}

// Create accepts a multipart form with title, notes, repeated tags
// fields and the files themselves, and runs the upload workflow.
func (h *UploadHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	req := dto.CreateGroupRequest{
		UploaderID: userID,
		Title:      c.PostForm("title"),
		Notes:      c.PostForm("notes"),
		Tags:       form.Value["tags"],
	}

	headers := form.File["files"]
	for _, fh := range headers {
		if fh.Size > h.maxFileSize {
			apperrors.HandleError(c, apperrors.NewValidationError("File too large: "+fh.Filename))
			return
		}

		f, err := fh.Open()
		if err != nil {
			apperrors.HandleError(c, apperrors.UploadError(err, fh.Filename))
			return
		}
		defer f.Close()

		req.Files = append(req.Files, dto.FileInput{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	resp, err := h.uploadService.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
