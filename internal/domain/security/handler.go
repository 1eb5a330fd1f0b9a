package security

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"secureshare/internal/domain/file"
	"secureshare/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the report endpoint: the viewer page has
// no credentials, only the share context.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	sec := v1.Group("/security")
	{
		sec.POST("/violations", h.ReportViolation)
		sec.POST("/access-attempts", h.ReportAttempt)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	sec := protected.Group("/security")
	{
		sec.GET("/violations/:fileId", h.ListViolations)
		sec.GET("/access-attempts/:fileId", h.ListAttempts)
	}
}

type violationRequest struct {
	FileAccessID  string `json:"file_access_id" binding:"required"`
	ViolationType string `json:"violation_type" binding:"required"`
	Details       string `json:"details"`
	Fingerprint   string `json:"device_fingerprint"`
}

// ReportViolation always answers 202: the reporter gets no signal
// about whether or how the event was stored.
func (h *Handler) ReportViolation(c *gin.Context) {
	var req violationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.service.RecordViolation(c.Request.Context(), &SecurityViolation{
		FileAccessID:  req.FileAccessID,
		ViolationType: req.ViolationType,
		Details:       req.Details,
		Fingerprint:   req.Fingerprint,
		UserAgent:     c.Request.UserAgent(),
	})

	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}

type attemptRequest struct {
	FileAccessID string   `json:"file_access_id" binding:"required"`
	Fingerprint  string   `json:"device_fingerprint"`
	Country      string   `json:"country"`
	City         string   `json:"city"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// ReportAttempt lets the shared page record a redemption explicitly,
// with whatever geolocation it resolved; the server also records
// attempts on its own for every gate decision.
func (h *Handler) ReportAttempt(c *gin.Context) {
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.service.RecordReportedAttempt(c.Request.Context(), &AccessAttempt{
		FileAccessID: req.FileAccessID,
		Fingerprint:  req.Fingerprint,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		Country:      req.Country,
		City:         req.City,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})

	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}

func (h *Handler) ListViolations(c *gin.Context) {
	violations, err := h.service.ListViolations(c.Request.Context(), c.GetString("user_id"), c.Param("fileId"))
	if err != nil {
		writeListError(c, err)
		return
	}

	response.Success(c, http.StatusOK, violations)
}

func (h *Handler) ListAttempts(c *gin.Context) {
	attempts, err := h.service.ListAttempts(c.Request.Context(), c.GetString("user_id"), c.Param("fileId"))
	if err != nil {
		writeListError(c, err)
		return
	}

	response.Success(c, http.StatusOK, attempts)
}

func writeListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, file.ErrFileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	case errors.Is(err, file.ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this file")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
