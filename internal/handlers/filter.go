package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/view"
)

// TypeFilter recebe cada tecla digitada num filtro de texto. A grade nova
// chega depois, pelo stream de eventos, quando o debounce dispara.
func (h *Handler) TypeFilter(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	if err := ws.TypeFilter(c.PostForm("campo"), c.PostForm("valor")); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusAccepted)
}

// SelectFilter aplica a seleção na hora e devolve o fragmento da grade.
func (h *Handler) SelectFilter(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	ativos, err := ws.SelectFilter(c.PostForm("campo"), c.PostForm("valor"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	render(c, http.StatusOK, view.FragmentGrid, view.NewGrid(ativos, ws.Store.Filter()))
}

func (h *Handler) ClearFilter(c *gin.Context) {
	middleware.Workspace(c).ClearFilter()
	c.Redirect(http.StatusFound, "/ativos")
}

// Grid devolve a grade do filtro aplicado (usado sem JavaScript e nos testes).
func (h *Handler) Grid(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())
	render(c, http.StatusOK, view.FragmentGrid, view.NewGrid(ws.Store.Display(), ws.Store.Filter()))
}

// Refresh relê a lista da API mantendo o filtro aplicado.
func (h *Handler) Refresh(c *gin.Context) {
	ws := middleware.Workspace(c)
	// a falha já vira toast pelo hook do store
	if err := ws.Store.Refresh(c.Request.Context()); err == nil {
		ws.Toasts.Info("Lista atualizada.")
	}
	redirectBack(c, "/ativos")
}
