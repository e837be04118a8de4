package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/documents"
	"github.com/lexdesk/lexdesk/internal/models"
	"github.com/lexdesk/lexdesk/pkg/metrics"
)

// DocumentHandler serves file attachments embedded under a case.
type DocumentHandler struct {
	cfg *config.Config
	svc *documents.Service
}

func NewDocumentHandler(cfg *config.Config, svc *documents.Service) *DocumentHandler {
	return &DocumentHandler{cfg: cfg, svc: svc}
}

func (h *DocumentHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/documents")
	g.POST("/:caseId", h.Upload)
	g.GET("/:caseId/:docId", h.Download)
	g.DELETE("/:caseId/:docId", h.Remove)
}

// Upload accepts a multipart "file" part capped at the configured size and
// appends a document record to the case.
func (h *DocumentHandler) Upload(c *gin.Context) {
	ident := mustIdentity(c)
	caseID, err := primitive.ObjectIDFromHex(c.Param("caseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrCaseNotFound.Error()})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if h.cfg.Upload.MaxBytes > 0 && fh.Size > h.cfg.Upload.MaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the upload size limit"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeDomainError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	contentType := fh.Header.Get("Content-Type")
	doc, err := h.svc.Upload(c.Request.Context(), ident.ID, caseID, fh.Filename, contentType, data)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	metrics.DocumentUploads.Inc()
	metrics.DocumentUploadBytes.Add(float64(len(data)))
	c.JSON(http.StatusCreated, doc)
}

// Download streams the stored file back under the same ownership filter as
// the rest of the case surface.
func (h *DocumentHandler) Download(c *gin.Context) {
	ident := mustIdentity(c)
	caseID, err := primitive.ObjectIDFromHex(c.Param("caseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrCaseNotFound.Error()})
		return
	}
	docID, err := primitive.ObjectIDFromHex(c.Param("docId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrDocumentNotFound.Error()})
		return
	}
	doc, rc, err := h.svc.Open(c.Request.Context(), ident.ID, caseID, docID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	defer rc.Close()

	contentType := doc.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	extra := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.Name),
	}
	c.DataFromReader(http.StatusOK, doc.Size, contentType, rc, extra)
}

// Remove deletes the backing blob and the embedded record.
func (h *DocumentHandler) Remove(c *gin.Context) {
	ident := mustIdentity(c)
	caseID, err := primitive.ObjectIDFromHex(c.Param("caseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrCaseNotFound.Error()})
		return
	}
	docID, err := primitive.ObjectIDFromHex(c.Param("docId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrDocumentNotFound.Error()})
		return
	}
	if err := h.svc.Remove(c.Request.Context(), ident.ID, caseID, docID); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
