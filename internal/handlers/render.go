package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"inventario-ativos/internal/apiclient"
	"inventario-ativos/internal/database"
	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/models"
	"inventario-ativos/internal/ui"
	"inventario-ativos/internal/view"
)

// Handler reúne as dependências das rotas web.
type Handler struct {
	view    *view.Renderer
	journal *database.Journal
	clock   ui.Clock
	log     zerolog.Logger
}

func New(renderer *view.Renderer, journal *database.Journal, clock ui.Clock, log zerolog.Logger) *Handler {
	if clock == nil {
		clock = ui.RealClock{}
	}
	return &Handler{view: renderer, journal: journal, clock: clock, log: log}
}

// layout monta o que toda página leva: toasts pendentes e o diálogo aberto.
func (h *Handler) layout(c *gin.Context, title, active string) view.Layout {
	l := view.Layout{
		Title:  title,
		Active: active,
		Path:   c.Request.URL.RequestURI(),
	}
	ws := middleware.Workspace(c)
	if ws == nil {
		return l
	}
	l.Toasts = ws.Toasts.Drain()
	if d, ok := ws.Modal.Current(); ok {
		l.Modal = &view.ModalView{Dialog: d, Next: l.Path}
	}
	return l
}

// render: c.HTML com o nome da página ou do fragmento.
func render(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int, msg string) {
	render(c, status, view.PageErro, view.ErrorPage{
		Layout:  h.layout(c, "Erro", ""),
		Message: msg,
	})
}

// statusFor traduz o erro de uma operação no status da resposta.
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return apiErr.StatusCode
	default:
		return http.StatusBadGateway
	}
}

// redirectBack volta para next (campo do formulário) ou para o Referer,
// aceitando só caminhos locais.
func redirectBack(c *gin.Context, fallback string) {
	c.Redirect(http.StatusFound, backTarget(c.PostForm("next"), c.Request.Referer(), fallback))
}

func backTarget(next, referer, fallback string) string {
	if isLocalPath(next) {
		return next
	}
	if u, err := url.Parse(referer); err == nil && isLocalPath(u.RequestURI()) && referer != "" {
		return u.RequestURI()
	}
	return fallback
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}
