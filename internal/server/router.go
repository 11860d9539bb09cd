package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"inventario-ativos/internal/config"
	"inventario-ativos/internal/database"
	"inventario-ativos/internal/handlers"
	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/ui"
	"inventario-ativos/internal/view"
)

const sessionName = "ativos_session"

// Deps: o que o roteador precisa além da configuração.
type Deps struct {
	Registry *ui.Registry
	Journal  *database.Journal
	Clock    ui.Clock
	Logger   zerolog.Logger
}

func NewRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	r.HTMLRender = renderer

	r.StaticFS("/static", view.StaticFS())

	// HEALTHCHECK / MÉTRICAS
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: int(cfg.WorkspaceIdleTimeout.Seconds())})

	app := r.Group("/")
	app.Use(sessions.Sessions(sessionName, store), middleware.InjectWorkspace(deps.Registry))

	h := handlers.New(renderer, deps.Journal, deps.Clock, deps.Logger)

	// PAINEL
	app.GET("/", h.Dashboard)

	// ATIVOS
	app.GET("/ativos", h.ListAtivos)
	app.GET("/ativos/grade", h.Grid)
	app.POST("/ativos/filtro/digitar", h.TypeFilter)
	app.POST("/ativos/filtro/selecionar", h.SelectFilter)
	app.POST("/ativos/filtro/limpar", h.ClearFilter)
	app.POST("/ativos/atualizar", h.Refresh)

	app.GET("/ativos/novo", h.ShowNewAtivo)
	app.POST("/ativos/novo", h.CreateAtivo)
	app.GET("/ativos/:tag", h.ShowAtivo)
	app.GET("/ativos/:tag/editar", h.ShowEditAtivo)
	app.POST("/ativos/:tag/editar", h.UpdateAtivo)
	app.POST("/ativos/:tag/excluir", h.DeleteAtivo)

	// MANUTENÇÕES
	app.POST("/ativos/:tag/manutencoes", h.AddManutencao)
	app.POST("/manutencoes/:id/editar", h.EditManutencao)
	app.POST("/manutencoes/:id/excluir", h.DeleteManutencao)

	// DIÁLOGO
	app.POST("/modal/confirmar", h.ConfirmModal)
	app.POST("/modal/cancelar", h.CancelModal)

	// EVENTOS
	app.GET("/eventos", h.Events)
	app.POST("/toasts/:id/visto", h.AckToast)

	// AUDITORIA
	app.GET("/auditoria", h.ListAuditLogs)

	return r, nil
}
