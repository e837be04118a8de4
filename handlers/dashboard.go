package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/lexdesk/internal/analytics"
)

// DashboardHandler serves the derived statistics and hearing notifications.
// Everything is recomputed from a fresh scan per request.
type DashboardHandler struct {
	svc *analytics.Service
}

func NewDashboardHandler(svc *analytics.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/dashboard")
	g.GET("/stats", h.Stats)
	g.GET("/notifications", h.Notifications)
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ident := mustIdentity(c)
	st, err := h.svc.Stats(c.Request.Context(), ident.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *DashboardHandler) Notifications(c *gin.Context) {
	ident := mustIdentity(c)
	out, err := h.svc.Notifications(c.Request.Context(), ident.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
