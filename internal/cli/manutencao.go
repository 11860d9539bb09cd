package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/ui"
)

func (a *app) newMaintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manutencao",
		Aliases: []string{"manutenção"},
		Short:   "Gerencia as manutenções de um ativo",
	}
	cmd.AddCommand(a.newAddMaintenanceCmd(), a.newUpdateMaintenanceCmd(), a.newDeleteMaintenanceCmd())
	return cmd
}

func (a *app) newAddMaintenanceCmd() *cobra.Command {
	var descricao, data string
	cmd := &cobra.Command{
		Use:   "adicionar TAG --descricao TEXTO [--data AAAA-MM-DD]",
		Short: "Registra uma manutenção; sem --data a API usa a data de hoje",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ativo, err := a.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			in := models.ManutencaoInput{AtivoID: ativo.ID, Descricao: descricao}
			if data != "" {
				d, err := models.ParseDate(data)
				if err != nil {
					return err
				}
				in.Data = &d
			}

			m, err := a.store.AddManutencao(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("erro ao adicionar manutenção: %w", err)
			}
			return a.ok(cmd, "Manutenção adicionada!", m)
		},
	}
	cmd.Flags().StringVar(&descricao, "descricao", "", "Descrição do serviço")
	cmd.Flags().StringVar(&data, "data", "", "Data da manutenção (AAAA-MM-DD)")
	return cmd
}

func (a *app) newUpdateMaintenanceCmd() *cobra.Command {
	var descricao string
	cmd := &cobra.Command{
		Use:   "editar ID --descricao TEXTO",
		Short: "Altera a descrição de uma manutenção",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			m, err := a.store.UpdateManutencao(cmd.Context(), id, models.ManutencaoUpdate{Descricao: descricao})
			if err != nil {
				return fmt.Errorf("erro ao atualizar manutenção: %w", err)
			}
			return a.ok(cmd, "Manutenção atualizada!", m)
		},
	}
	cmd.Flags().StringVar(&descricao, "descricao", "", "Nova descrição")
	return cmd
}

func (a *app) newDeleteMaintenanceCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "excluir ID [--sim]",
		Short: "Exclui uma manutenção",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			done, err := confirm(cmd, yes, ui.Dialog{
				Kind:    ui.DialogConfirm,
				Title:   "Excluir manutenção",
				Message: fmt.Sprintf("Excluir a manutenção %d?", id),
				Danger:  true,
			}, func(ctx context.Context, _ map[string]string) error {
				return a.store.DeleteManutencao(ctx, id)
			})
			if err != nil {
				return fmt.Errorf("erro ao excluir manutenção: %w", err)
			}
			if !done {
				return nil
			}
			return a.ok(cmd, "Manutenção excluída!", map[string]int64{"id": id})
		},
	}
	cmd.Flags().BoolVarP(&yes, "sim", "y", false, "Não pede confirmação")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", s)
	}
	return id, nil
}
