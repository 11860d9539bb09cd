package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/view"
)

// Dashboard: estatísticas sobre a lista completa, sem filtro.
func (h *Handler) Dashboard(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	render(c, http.StatusOK, view.PageDashboard,
		view.NewDashboard(h.layout(c, "Dashboard", "dashboard"), ws.Store.All(), h.clock.Now()))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
