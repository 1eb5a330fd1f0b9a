package share

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secureshare/internal/domain/file"
	"secureshare/internal/pkg/response"
)

// Handler serves the owner-facing share management endpoints. The
// anonymous redemption endpoints live in PublicHandler.
type Handler struct {
	issuer *Issuer
}

func NewHandler(issuer *Issuer) *Handler {
	return &Handler{issuer: issuer}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	shares := protected.Group("/shares")
	{
		shares.POST("", h.Create)
		shares.GET("/file/:fileId", h.ListForFile)
		shares.GET("/token/:token", h.GetByToken)
		shares.DELETE("/:id", h.Revoke)
		shares.POST("/file/:fileId/revoke", h.RevokeAllForFile)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.issuer.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		writeIssuerError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) ListForFile(c *gin.Context) {
	shares, err := h.issuer.ListForFile(c.Request.Context(), c.GetString("user_id"), c.Param("fileId"))
	if err != nil {
		writeIssuerError(c, err)
		return
	}

	response.Success(c, http.StatusOK, shares)
}

func (h *Handler) GetByToken(c *gin.Context) {
	s, err := h.issuer.GetByToken(c.Request.Context(), c.GetString("user_id"), c.Param("token"))
	if err != nil {
		writeIssuerError(c, err)
		return
	}

	response.Success(c, http.StatusOK, s)
}

func (h *Handler) Revoke(c *gin.Context) {
	err := h.issuer.Revoke(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		writeIssuerError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

func (h *Handler) RevokeAllForFile(c *gin.Context) {
	err := h.issuer.RevokeAllForFile(c.Request.Context(), c.GetString("user_id"), c.Param("fileId"))
	if err != nil {
		writeIssuerError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

func writeIssuerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, file.ErrFileNotFound), errors.Is(err, ErrShareNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrUnauthorized):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this file")
	case errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidExpiration),
		errors.Is(err, ErrInvalidDownloadLimit),
		errors.Is(err, ErrDownloadNeedsNoExpiry):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
