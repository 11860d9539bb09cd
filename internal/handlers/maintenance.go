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
)

// Os três handlers abaixo só abrem diálogos; a gravação roda na ação
// executada por /modal/confirmar.

func (h *Handler) AddManutencao(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	ativo, ok := ws.Store.FindByTag(c.Param("tag"))
	if !ok {
		ws.Toasts.Error("Ativo não encontrado.")
		redirectBack(c, "/ativos")
		return
	}

	ws.Modal.Open(ui.Dialog{
		Kind:         ui.DialogForm,
		Title:        "Adicionar Manutenção",
		Message:      fmt.Sprintf("%s (%s)", ativo.Nome, ativo.TagPatrimonio),
		ConfirmLabel: "Salvar",
		Fields: []ui.Field{
			{Name: "descricao", Label: "Descrição", Type: "textarea", Required: true},
			{Name: "data_manutencao", Label: "Data", Type: "date", Value: models.NewDate(h.clock.Now()).String()},
		},
	}, func(ctx context.Context, values map[string]string) error {
		in := models.ManutencaoInput{
			AtivoID:   ativo.ID,
			Descricao: strings.TrimSpace(values["descricao"]),
		}
		if raw := strings.TrimSpace(values["data_manutencao"]); raw != "" {
			d, err := models.ParseDate(raw)
			if err != nil {
				return &models.ValidationError{Field: "data_manutencao", Message: "Data inválida."}
			}
			in.Data = &d
		}

		if _, err := ws.Store.AddManutencao(ctx, in); err != nil {
			ws.Toasts.Error("Erro ao adicionar manutenção: " + ui.Describe(err))
			return err
		}
		ws.Toasts.Success("Manutenção adicionada!")
		return nil
	})

	redirectBack(c, "/ativos")
}

func (h *Handler) EditManutencao(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	id, ok := manutencaoID(c)
	if !ok {
		return
	}
	_, m, found := ws.Store.FindManutencao(id)
	if !found {
		ws.Toasts.Error("Manutenção não encontrada.")
		redirectBack(c, "/ativos")
		return
	}

	ws.Modal.Open(ui.Dialog{
		Kind:         ui.DialogForm,
		Title:        "Editar Manutenção",
		ConfirmLabel: "Salvar",
		Fields: []ui.Field{
			{Name: "descricao", Label: "Descrição", Type: "textarea", Value: m.Descricao, Required: true},
		},
	}, func(ctx context.Context, values map[string]string) error {
		upd := models.ManutencaoUpdate{Descricao: strings.TrimSpace(values["descricao"])}
		if _, err := ws.Store.UpdateManutencao(ctx, id, upd); err != nil {
			ws.Toasts.Error("Erro ao atualizar manutenção: " + ui.Describe(err))
			return err
		}
		ws.Toasts.Success("Manutenção atualizada!")
		return nil
	})

	redirectBack(c, "/ativos")
}

func (h *Handler) DeleteManutencao(c *gin.Context) {
	ws := middleware.Workspace(c)
	ws.EnsureLoaded(c.Request.Context())

	id, ok := manutencaoID(c)
	if !ok {
		return
	}

	message := "Tem certeza que deseja excluir esta manutenção?"
	if a, m, found := ws.Store.FindManutencao(id); found {
		message = fmt.Sprintf("Excluir a manutenção \"%s\" do ativo %s?", m.Descricao, a.TagPatrimonio)
	}

	ws.Modal.Open(ui.Dialog{
		Kind:         ui.DialogConfirm,
		Title:        "Excluir manutenção",
		Message:      message,
		ConfirmLabel: "Excluir",
		Danger:       true,
	}, func(ctx context.Context, _ map[string]string) error {
		if err := ws.Store.DeleteManutencao(ctx, id); err != nil {
			ws.Toasts.Error("Erro ao excluir manutenção: " + ui.Describe(err))
			return err
		}
		ws.Toasts.Success("Manutenção excluída!")
		return nil
	})

	redirectBack(c, "/ativos")
}

func manutencaoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
