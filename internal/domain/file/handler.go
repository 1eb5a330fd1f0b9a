package file

import (
	"errors"
	"net/http"

	"secureshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts owner-facing file routes; all require auth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	files := protected.Group("/files")
	{
		files.POST("", h.Upload)
		files.GET("", h.List)
		files.GET("/:id", h.GetByID)
		files.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Upload(c *gin.Context) {
	ownerID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	f, err := h.service.Upload(c.Request.Context(), ownerID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "File is empty")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds maximum allowed size")
		default:
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload file")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"file": f})
}

func (h *Handler) List(c *gin.Context) {
	ownerID := c.GetString("user_id")

	files, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list files")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"files": files})
}

func (h *Handler) GetByID(c *gin.Context) {
	ownerID := c.GetString("user_id")

	f, err := h.service.GetByID(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		writeOwnershipError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"file": f})
}

func (h *Handler) Delete(c *gin.Context) {
	ownerID := c.GetString("user_id")

	err := h.service.Delete(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		if errors.Is(err, ErrPartialDelete) {
			// The tombstone stays; the reconcile job finishes the work.
			response.Error(c, http.StatusInternalServerError, "PARTIAL_DELETE", "File deletion incomplete; it will be cleaned up automatically")
			return
		}
		writeOwnershipError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "File deleted"})
}

func writeOwnershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this file")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
