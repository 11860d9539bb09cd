package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/middleware"
	"inventario-ativos/internal/models"
	"inventario-ativos/internal/ui"
	"inventario-ativos/internal/view"
)

// LISTA DE ATIVOS

func (h *Handler) ListAtivos(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	tipos, statuses := ws.Store.UniqueValues()
	render(c, http.StatusOK, view.PageAtivos, view.ListPage{
		Layout:   h.layout(c, "Gerenciar Ativos", "ativos"),
		Filter:   ws.Draft(),
		Tipos:    mergeOptions(models.Tipos, tipos),
		Statuses: mergeOptions(models.Statuses, statuses),
		Pending:  ws.FilterPending(),
		Grid:     view.NewGrid(ws.Store.Display(), ws.Store.Filter()),
	})
}

// mergeOptions acrescenta à lista fixa os valores encontrados nos dados.
func mergeOptions(fixed, found []string) []string {
	out := append([]string{}, fixed...)
	seen := map[string]bool{}
	for _, v := range fixed {
		seen[v] = true
	}
	for _, v := range found {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// DETALHE

func (h *Handler) ShowAtivo(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	ativo, ok := ws.Store.FindByTag(c.Param("tag"))
	if !ok {
		h.renderError(c, http.StatusNotFound, "Ativo não encontrado.")
		return
	}
	render(c, http.StatusOK, view.PageDetalhe, view.DetailPage{
		Layout: h.layout(c, ativo.Nome, "ativos"),
		Ativo:  ativo,
	})
}

// CADASTRO

func (h *Handler) ShowNewAtivo(c *gin.Context) {
	h.renderForm(c, http.StatusOK, false, models.Ativo{Status: models.StatusAtivo}, "")
}

func (h *Handler) CreateAtivo(c *gin.Context) {
	ws := middleware.Workspace(c)

	in, err := ativoInputFromForm(c)
	if err == nil {
		_, err = ws.Store.Create(c.Request.Context(), in)
	}
	if err != nil {
		msg := "Erro ao cadastrar: " + ui.Describe(err)
		ws.Toasts.Error(msg)
		h.renderForm(c, statusFor(err), false, models.Ativo{
			TagPatrimonio:  in.TagPatrimonio,
			Nome:           in.Nome,
			Tipo:           in.Tipo,
			Status:         in.Status,
			ValorAquisicao: in.ValorAquisicao,
		}, msg)
		return
	}

	ws.Toasts.Success("Ativo cadastrado com sucesso!")
	c.Redirect(http.StatusFound, "/ativos")
}

// EDIÇÃO

func (h *Handler) ShowEditAtivo(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	ativo, ok := ws.Store.FindByTag(c.Param("tag"))
	if !ok {
		ws.Toasts.Error("Ativo não encontrado para edição.")
		c.Redirect(http.StatusFound, "/ativos")
		return
	}
	h.renderForm(c, http.StatusOK, true, ativo, "")
}

func (h *Handler) UpdateAtivo(c *gin.Context) {
	ws := middleware.Workspace(c)
	tag := c.Param("tag")

	in, err := ativoInputFromForm(c)
	upd := models.AtivoUpdate{
		Nome:           in.Nome,
		Tipo:           in.Tipo,
		Status:         in.Status,
		ValorAquisicao: in.ValorAquisicao,
	}
	if err == nil {
		_, err = ws.Store.Update(c.Request.Context(), tag, upd)
	}
	if err != nil {
		msg := "Erro ao atualizar: " + ui.Describe(err)
		ws.Toasts.Error(msg)
		h.renderForm(c, statusFor(err), true, models.Ativo{
			TagPatrimonio:  tag,
			Nome:           upd.Nome,
			Tipo:           upd.Tipo,
			Status:         upd.Status,
			ValorAquisicao: upd.ValorAquisicao,
		}, msg)
		return
	}

	ws.Toasts.Success("Ativo atualizado com sucesso!")
	c.Redirect(http.StatusFound, "/ativos")
}

func (h *Handler) renderForm(c *gin.Context, status int, editing bool, ativo models.Ativo, errMsg string) {
	title, active := "Cadastrar Novo Ativo", "novo"
	if editing {
		title, active = "Editar Ativo", "ativos"
	}

	var tipos []string
	if ws := middleware.Workspace(c); ws != nil {
		tipos, _ = ws.Store.UniqueValues()
	}
	render(c, status, view.PageForm, view.FormPage{
		Layout:   h.layout(c, title, active),
		Editing:  editing,
		Ativo:    ativo,
		Error:    errMsg,
		Tipos:    mergeOptions(models.Tipos, tipos),
		Statuses: models.Statuses,
	})
}

// ativoInputFromForm lê o formulário; o valor aceita vírgula decimal.
func ativoInputFromForm(c *gin.Context) (models.AtivoInput, error) {
	in := models.AtivoInput{
		TagPatrimonio: strings.TrimSpace(c.PostForm("tag_patrimonio")),
		Nome:          strings.TrimSpace(c.PostForm("nome")),
		Tipo:          strings.TrimSpace(c.PostForm("tipo")),
		Status:        strings.TrimSpace(c.PostForm("status")),
	}
	valor, err := parseValor(c.PostForm("valor_aquisicao"))
	in.ValorAquisicao = valor
	return in, err
}

func parseValor(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, &models.ValidationError{
			Field:   "valor_aquisicao",
			Message: fmt.Sprintf("Valor de aquisição inválido: %q.", raw),
		}
	}
	return v, nil
}

// EXCLUSÃO

// DeleteAtivo abre a confirmação; a exclusão acontece em /modal/confirmar.
func (h *Handler) DeleteAtivo(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())
	tag := c.Param("tag")

	message := fmt.Sprintf("Tem certeza que deseja excluir o ativo %s?", tag)
	if a, ok := ws.Store.FindByTag(tag); ok {
		message = fmt.Sprintf("Tem certeza que deseja excluir o ativo %s (%s)? As manutenções registradas também serão removidas.", a.TagPatrimonio, a.Nome)
	}

	ws.Modal.Open(ui.Dialog{
		Kind:         ui.DialogConfirm,
		Title:        "Excluir ativo",
		Message:      message,
		ConfirmLabel: "Excluir",
		Danger:       true,
	}, func(ctx context.Context, _ map[string]string) error {
		if err := ws.Store.Delete(ctx, tag); err != nil {
			ws.Toasts.Error("Erro ao excluir: " + ui.Describe(err))
			return err
		}
		ws.Toasts.Success("Ativo excluído com sucesso!")
		return nil
	})

	redirectBack(c, "/ativos")
}
