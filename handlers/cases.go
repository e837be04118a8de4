package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/cases"
	"github.com/lexdesk/lexdesk/internal/models"
)

// CaseHandler serves the ownership-scoped case CRUD surface. List responses
// carry the referenced client joined in; closing a case is an ordinary
// update carrying status/resolution/closingDate together.
type CaseHandler struct {
	svc *cases.Service
}

func NewCaseHandler(svc *cases.Service) *CaseHandler {
	return &CaseHandler{svc: svc}
}

func (h *CaseHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/cases")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *CaseHandler) List(c *gin.Context) {
	ident := mustIdentity(c)
	out, err := h.svc.List(c.Request.Context(), ident.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CaseHandler) Create(c *gin.Context) {
	ident := mustIdentity(c)
	var cs models.Case
	if err := c.ShouldBindJSON(&cs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), ident.ID, &cs)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CaseHandler) Update(c *gin.Context) {
	ident := mustIdentity(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFoundOrUnauthorized.Error()})
		return
	}
	var patch models.CasePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), ident.ID, id, patch)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CaseHandler) Delete(c *gin.Context) {
	ident := mustIdentity(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFoundOrUnauthorized.Error()})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ident.ID, id); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "case deleted successfully"})
}
