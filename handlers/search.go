package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/lexdesk/internal/search"
)

// SearchHandler serves the scoped free-text lookup.
type SearchHandler struct {
	svc *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
}

func (h *SearchHandler) Search(c *gin.Context) {
	ident := mustIdentity(c)
	res, err := h.svc.Search(c.Request.Context(), ident.ID, c.Query("q"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
