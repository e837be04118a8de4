package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lexdesk/lexdesk/internal/clients"
	"github.com/lexdesk/lexdesk/internal/models"
)

// ClientHandler serves the ownership-scoped client CRUD surface.
type ClientHandler struct {
	svc *clients.Service
}

func NewClientHandler(svc *clients.Service) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Register routes under /api/clients. Caller must already be authenticated
// (the group carries the auth middleware).
func (h *ClientHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/clients")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ClientHandler) List(c *gin.Context) {
	ident := mustIdentity(c)
	out, err := h.svc.List(c.Request.Context(), ident.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) Create(c *gin.Context) {
	ident := mustIdentity(c)
	var cl models.Client
	if err := c.ShouldBindJSON(&cl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), ident.ID, &cl)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
	ident := mustIdentity(c)
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFoundOrUnauthorized.Error()})
		return
	}
	var patch models.ClientPatch
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

func (h *ClientHandler) Delete(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"message": "client deleted successfully"})
}
