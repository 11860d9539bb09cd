package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"inventario-ativos/internal/ui"
)

const (
	sessionWorkspaceKey = "workspace_id"
	contextWorkspaceKey = "Workspace"
)

// InjectWorkspace associa a sessão do navegador a um workspace e o coloca no contexto.
func InjectWorkspace(reg *ui.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		id, _ := sess.Get(sessionWorkspaceKey).(string)
		ws := reg.Get(id)
		// regrava a cada requisição para o MaxAge do cookie contar da última atividade
		sess.Set(sessionWorkspaceKey, ws.ID)
		if err := sess.Save(); err != nil {
			log.Ctx(c.Request.Context()).Warn().Err(err).Msg("saving session")
		}

		c.Set(contextWorkspaceKey, ws)
		c.Next()
	}
}

// Workspace devolve o workspace posto por InjectWorkspace.
func Workspace(c *gin.Context) *ui.Workspace {
	if v, ok := c.Get(contextWorkspaceKey); ok {
		if ws, ok := v.(*ui.Workspace); ok {
			return ws
		}
	}
	return nil
}
