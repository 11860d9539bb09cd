package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/view"
)

const auditPageLimit = 200

// ListAuditLogs mostra as últimas operações registradas no diário.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page := view.AuditPage{
		Layout:  h.layout(c, "Auditoria", "auditoria"),
		Enabled: h.journal.Enabled(),
	}
	if page.Enabled {
		logs, err := h.journal.Recent(c.Request.Context(), auditPageLimit)
		if err != nil {
			h.log.Error().Err(err).Msg("loading audit logs")
			h.renderError(c, http.StatusInternalServerError, "Não foi possível carregar o diário de operações.")
			return
		}
		page.Entries = logs
	}
	render(c, http.StatusOK, view.PageAuditoria, page)
}
