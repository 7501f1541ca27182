package handlers

import (
	"context"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"codama/internal/services"

	"github.com/gin-gonic/gin"
)

type Downloader interface {
	Design(ctx context.Context, actor services.Actor, rawID string) (*services.Download, error)
	Storage(ctx context.Context, actor services.Actor, p string) (*services.Download, error)
}

type DownloadHandler struct {
	downloads Downloader
}

func NewDownloadHandler(downloads Downloader) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Design handles GET /api/v1/designs/:id/download
func (h *DownloadHandler) Design(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	download, err := h.downloads.Design(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		fail(c, err, "Failed to download design")
		return
	}
	defer download.Close()

	serveAttachment(c, download)
}

// Storage handles GET /storage/*path
func (h *DownloadHandler) Storage(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	p := strings.TrimPrefix(c.Param("path"), "/")
	download, err := h.downloads.Storage(c.Request.Context(), actor, p)
	if err != nil {
		fail(c, err, "Failed to download file")
		return
	}
	defer download.Close()

	serveAttachment(c, download)
}

func serveAttachment(c *gin.Context, download *services.Download) {
	contentType := mime.TypeByExtension(path.Ext(download.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": download.Filename})
	clearWriteDeadline(c.Writer)

	c.DataFromReader(http.StatusOK, download.Size, contentType, download, map[string]string{
		"Content-Disposition": disposition,
	})
}

// clearWriteDeadline lifts the server write timeout so large files can
// stream to slow clients. Writers without deadline support are left alone.
func clearWriteDeadline(w http.ResponseWriter) {
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
}
