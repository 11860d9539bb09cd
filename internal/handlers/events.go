package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/ui"
	"inventario-ativos/internal/view"
)

const keepAliveInterval = 25 * time.Second

// Events mantém um stream SSE com a grade e os toasts do workspace.
// O toast continua na fila até o cliente confirmar a exibição (AckToast)
// ou a próxima página renderizada drená-lo.
func (h *Handler) Events(c *gin.Context) {
	ws := middleware.Workspace(c)
	events, unsubscribe := ws.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()
	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-keepAlive.C:
			c.SSEvent("ping", "")
			return true
		case e, ok := <-events:
			if !ok {
				return false
			}
			h.sendEvent(c, e)
			return true
		}
	})
}

func (h *Handler) sendEvent(c *gin.Context, e ui.Event) {
	switch e.Kind {
	case ui.EventGrid:
		html, err := h.view.Grid(view.NewGrid(e.Ativos, e.Filter))
		if err != nil {
			h.log.Error().Err(err).Msg("rendering grid event")
			return
		}
		c.SSEvent(string(ui.EventGrid), html)
	case ui.EventToast:
		html, err := h.view.Toast(e.Toast)
		if err != nil {
			h.log.Error().Err(err).Msg("rendering toast event")
			return
		}
		c.SSEvent(string(ui.EventToast), html)
	}
}

// AckToast tira da fila um toast que o navegador já exibiu via SSE.
func (h *Handler) AckToast(c *gin.Context) {
	middleware.Workspace(c).Toasts.Dismiss(c.Param("id"))
	c.Status(http.StatusNoContent)
}
