package device

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secureshare/internal/pkg/response"
)

// accessOwner resolves who owns the file behind a share, so the
// history endpoint can be restricted to the owner.
type accessOwner interface {
	FileOwnerForAccess(ctx context.Context, fileAccessID string) (string, error)
}

type Handler struct {
	service *Service
	owners  accessOwner
}

func NewHandler(service *Service, owners accessOwner) *Handler {
	return &Handler{service: service, owners: owners}
}

// RegisterPublicRoutes mounts the endpoints the shared page calls
// before any authentication exists.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	deviceGroup := v1.Group("/device")
	{
		deviceGroup.POST("/bind", h.Bind)
		deviceGroup.POST("/check", h.Check)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	deviceGroup := protected.Group("/device")
	{
		deviceGroup.GET("/history/:fileAccessId", h.History)
	}
}

type bindRequest struct {
	FileAccessID string `json:"file_access_id" binding:"required"`
	Fingerprint  string `json:"device_fingerprint" binding:"required"`
}

func (h *Handler) Bind(c *gin.Context) {
	var req bindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.service.BindOrVerify(c.Request.Context(), req.FileAccessID, req.Fingerprint)
	if err != nil {
		if errors.Is(err, ErrDeviceMismatch) {
			response.Error(c, http.StatusForbidden, "DEVICE_MISMATCH", "This link is already in use on another device")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to bind device")
		return
	}

	response.Success(c, http.StatusOK, outcome)
}

func (h *Handler) Check(c *gin.Context) {
	var req bindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ok, err := h.service.Check(c.Request.Context(), req.FileAccessID, req.Fingerprint)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check device")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"match": ok})
}

func (h *Handler) History(c *gin.Context) {
	fileAccessID := c.Param("fileAccessId")

	ownerID, err := h.owners.FileOwnerForAccess(c.Request.Context(), fileAccessID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Share not found")
		return
	}
	if ownerID != c.GetString("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this file")
		return
	}

	bindings, err := h.service.History(c.Request.Context(), fileAccessID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load device history")
		return
	}

	response.Success(c, http.StatusOK, bindings)
}
