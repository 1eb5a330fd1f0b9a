package storage

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"secureshare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler serves blobs referenced by signed retrieval URLs.
type Handler struct {
	store  Store
	signer *URLSigner
}

func NewHandler(store Store, signer *URLSigner) *Handler {
	return &Handler{store: store, signer: signer}
}

// RegisterRoutes mounts the public retrieval endpoint. No auth: the
// signature is the credential.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/storage/*path", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	expires := c.Query("expires")
	sig := c.Query("sig")

	if path == "" || expires == "" || sig == "" {
		response.Error(c, http.StatusBadRequest, "MALFORMED_LINK", "Missing signature parameters")
		return
	}

	if err := h.signer.Verify(path, expires, sig); err != nil {
		if errors.Is(err, ErrLinkExpired) {
			response.Error(c, http.StatusGone, "LINK_EXPIRED", "This retrieval link has expired")
			return
		}
		response.Error(c, http.StatusForbidden, "BAD_SIGNATURE", "Invalid retrieval link")
		return
	}

	blob, err := h.store.Download(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "File not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read file")
		return
	}
	defer blob.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, blob); err != nil {
		// Headers are out; nothing left to do but log through gin.
		_ = c.Error(err)
	}
}
