package office

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fuelflow/internal/http/handlers/shared"
	"github.com/fuelflow/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadDocument attaches a file to an order.
func (h *Handler) UploadDocument(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	documentType := strings.TrimSpace(c.PostForm("document_type"))
	file, err := c.FormFile("file")
	if err != nil {
		shared.RespondError(c, response.CodeBadRequest, "file is required", err)
		return
	}

	doc, err := h.DocumentService.Upload(actor, orderID, documentType, file)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, doc)
}

// ListDocuments lists an order's attachments.
func (h *Handler) ListDocuments(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docs, err := h.DocumentService.List(actor, orderID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, docs)
}

// DeleteDocument removes one attachment.
func (h *Handler) DeleteDocument(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "doc_id")
	if !ok {
		return
	}
	if err := h.DocumentService.Delete(actor, orderID, documentID); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "document removed", nil)
}

// DownloadDocument streams one attachment.
func (h *Handler) DownloadDocument(c *gin.Context) {
	actor, ok := shared.Actor(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "doc_id")
	if !ok {
		return
	}

	doc, file, err := h.DocumentService.Open(actor, orderID, documentID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		shared.RequestLog(c).Warnw("document_download_stream_failed",
			"document_id", doc.ID,
			"error", err,
		)
	}
}
