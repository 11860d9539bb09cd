package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/ui"
)

// ConfirmModal executa a ação do diálogo aberto com os campos enviados.
// O resultado (toast, diálogo mantido por validação) aparece na página de volta.
func (h *Handler) ConfirmModal(c *gin.Context) {
	ws := middleware.Workspace(c)

	var values map[string]string
	if d, ok := ws.Modal.Current(); ok {
		values = make(map[string]string, len(d.Fields))
		for _, f := range d.Fields {
			values[f.Name] = c.PostForm(f.Name)
		}
	}

	err := ws.Modal.Confirm(c.Request.Context(), values)
	if errors.Is(err, ui.ErrNoDialog) {
		ws.Toasts.Warning("Nenhuma ação pendente.")
	} else if err != nil {
		h.log.Debug().Err(err).Str("workspace", ws.ID).Msg("dialog action failed")
	}
	redirectBack(c, "/ativos")
}

func (h *Handler) CancelModal(c *gin.Context) {
	middleware.Workspace(c).Modal.Cancel()
	redirectBack(c, "/ativos")
}
