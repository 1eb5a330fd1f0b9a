package share

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"secureshare/internal/pkg/response"
)

const (
	headerFingerprint = "X-Device-Fingerprint"
	headerSessionID   = "X-Session-ID"
)

// auditLog receives best-effort access records. Implementations must
// never fail the request.
type auditLog interface {
	RecordAttempt(ctx context.Context, fileAccessID, fingerprint, ip, userAgent string)
}

// PublicHandler serves anonymous visitors redeeming share tokens.
type PublicHandler struct {
	gate  *Gate
	audit auditLog
}

func NewPublicHandler(gate *Gate, audit auditLog) *PublicHandler {
	return &PublicHandler{gate: gate, audit: audit}
}

// RegisterRoutes mounts the token redemption endpoints at the root,
// outside the versioned API group, so share URLs stay short.
func (h *PublicHandler) RegisterRoutes(r *gin.Engine) {
	shared := r.Group("/shared")
	{
		shared.GET("/:token", h.Resolve)
		shared.POST("/:token/view", h.View)
		shared.POST("/:token/download", h.Download)
	}
}

// fingerprint prefers the header; clients that cannot set headers may
// pass ?fingerprint= instead.
func fingerprint(c *gin.Context) string {
	if fp := c.GetHeader(headerFingerprint); fp != "" {
		return fp
	}
	return c.Query("fingerprint")
}

func (h *PublicHandler) Resolve(c *gin.Context) {
	access, err := h.gate.Resolve(c.Request.Context(), c.Param("token"), fingerprint(c))
	if err != nil {
		writeGateError(c, err)
		return
	}
	h.logAttempt(c, access.Share.ID)

	response.Success(c, http.StatusOK, access)
}

func (h *PublicHandler) View(c *gin.Context) {
	sessionID := c.GetHeader(headerSessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	grant, err := h.gate.GrantView(c.Request.Context(), c.Param("token"), fingerprint(c), sessionID)
	if err != nil {
		writeGateError(c, err)
		return
	}
	h.logAttempt(c, grant.Share.ID)

	response.Success(c, http.StatusOK, gin.H{
		"share":        grant.Share,
		"file":         grant.File,
		"signed_url":   grant.SignedURL,
		"view_counted": grant.ViewCounted,
		"session_id":   sessionID,
	})
}

func (h *PublicHandler) Download(c *gin.Context) {
	grant, err := h.gate.GrantDownload(c.Request.Context(), c.Param("token"), fingerprint(c))
	if err != nil {
		writeGateError(c, err)
		return
	}
	h.logAttempt(c, grant.Share.ID)

	response.Success(c, http.StatusOK, gin.H{
		"share":      grant.Share,
		"file":       grant.File,
		"signed_url": grant.SignedURL,
	})
}

func (h *PublicHandler) logAttempt(c *gin.Context, fileAccessID string) {
	h.audit.RecordAttempt(c.Request.Context(), fileAccessID,
		fingerprint(c), c.ClientIP(), c.Request.UserAgent())
}

// writeGateError keeps denial responses non-revealing: a missing,
// revoked and expired link all produce the same answer. Only the
// device mismatch is distinguishable, the shared page explains it to
// the visitor.
func writeGateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrFingerprintRequired):
		response.Error(c, http.StatusBadRequest, "FINGERPRINT_REQUIRED", "Device fingerprint header is required")
	case errors.Is(err, ErrShareNotFound), errors.Is(err, ErrRevoked), errors.Is(err, ErrExpired):
		response.Error(c, http.StatusNotFound, "LINK_INVALID", "This link is invalid or has expired")
	case errors.Is(err, ErrDeviceMismatch):
		response.Error(c, http.StatusForbidden, "DEVICE_MISMATCH", "This link is already in use on another device")
	case errors.Is(err, ErrDownloadNotAllowed):
		response.Error(c, http.StatusForbidden, "DOWNLOAD_NOT_ALLOWED", "This link does not permit downloads")
	case errors.Is(err, ErrQuotaExceeded):
		response.Error(c, http.StatusTooManyRequests, "QUOTA_EXCEEDED", "Download limit reached")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
