package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/ui"
	"inventario-ativos/internal/view"
)

func (a *app) newListCmd() *cobra.Command {
	var f models.Filter
	cmd := &cobra.Command{
		Use:   "listar [flags]",
		Short: "Lista os ativos, opcionalmente filtrados",
		Long: `Lista os ativos. Os filtros são enviados à API; nome é busca parcial.

Examples:
  ativos listar
  ativos listar --nome dell --status "Em Manutenção"
  ativos listar --tipo monitor -j`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ativos, err := a.store.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), ativos)
			}
			printAtivos(cmd.OutOrStdout(), ativos)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Nome, "nome", "", "Filtra por parte do nome")
	cmd.Flags().StringVar(&f.Tipo, "tipo", "", "Filtra por tipo")
	cmd.Flags().StringVar(&f.Status, "status", "", "Filtra por status")
	return cmd
}

func printAtivos(w io.Writer, ativos []models.Ativo) {
	if len(ativos) == 0 {
		fmt.Fprintln(w, "Nenhum ativo encontrado.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tNOME\tTIPO\tSTATUS\tVALOR\tMANUTENÇÕES")
	for _, a := range ativos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			a.TagPatrimonio, a.Nome, view.TipoOuPadrao(a.Tipo), a.Status, view.Moeda(a.ValorAquisicao), len(a.Manutencoes))
	}
	tw.Flush()
}

// lookup relê a lista e procura a tag.
func (a *app) lookup(ctx context.Context, tag string) (models.Ativo, error) {
	if err := a.store.Refresh(ctx); err != nil {
		return models.Ativo{}, err
	}
	ativo, ok := a.store.FindByTag(tag)
	if !ok {
		return models.Ativo{}, fmt.Errorf("ativo %s não encontrado", tag)
	}
	return ativo, nil
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mostrar TAG",
		Short: "Mostra um ativo e suas manutenções",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ativo, err := a.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), ativo)
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Tag:\t%s\n", ativo.TagPatrimonio)
			fmt.Fprintf(tw, "Nome:\t%s\n", ativo.Nome)
			fmt.Fprintf(tw, "Tipo:\t%s\n", view.TipoOuPadrao(ativo.Tipo))
			fmt.Fprintf(tw, "Status:\t%s\n", ativo.Status)
			fmt.Fprintf(tw, "Valor:\t%s\n", view.Moeda(ativo.ValorAquisicao))
			tw.Flush()

			fmt.Fprintf(w, "\nManutenções (%d)\n", len(ativo.Manutencoes))
			if len(ativo.Manutencoes) == 0 {
				fmt.Fprintln(w, "Nenhuma manutenção registrada")
				return nil
			}
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATA\tDESCRIÇÃO")
			for _, m := range ativo.Manutencoes {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, view.Data(m.DataManutencao), m.Descricao)
			}
			return tw.Flush()
		},
	}
}

type ativoFlags struct {
	tag, nome, tipo, status string
	valor                   float64
}

func (f *ativoFlags) bind(cmd *cobra.Command, withTag bool) {
	if withTag {
		cmd.Flags().StringVar(&f.tag, "tag", "", "Tag de patrimônio (obrigatória)")
	}
	cmd.Flags().StringVar(&f.nome, "nome", "", "Nome do ativo")
	cmd.Flags().StringVar(&f.tipo, "tipo", "", "Tipo (Notebook, Monitor, ...)")
	cmd.Flags().StringVar(&f.status, "status", models.StatusAtivo, "Status: Ativo, Inativo ou Em Manutenção")
	cmd.Flags().Float64Var(&f.valor, "valor", 0, "Valor de aquisição")
}

func (a *app) newCreateCmd() *cobra.Command {
	var f ativoFlags
	cmd := &cobra.Command{
		Use:   "cadastrar --tag TAG --nome NOME --tipo TIPO [flags]",
		Short: "Cadastra um ativo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ativo, err := a.store.Create(cmd.Context(), models.AtivoInput{
				TagPatrimonio:  f.tag,
				Nome:           f.nome,
				Tipo:           f.tipo,
				Status:         f.status,
				ValorAquisicao: f.valor,
			})
			if err != nil {
				return fmt.Errorf("erro ao cadastrar: %w", err)
			}
			return a.ok(cmd, "Ativo cadastrado com sucesso!", ativo)
		},
	}
	f.bind(cmd, true)
	return cmd
}

// editar parte dos valores atuais; só as flags informadas mudam.
func (a *app) newUpdateCmd() *cobra.Command {
	var f ativoFlags
	cmd := &cobra.Command{
		Use:   "editar TAG [flags]",
		Short: "Edita um ativo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			upd := current.Update()
			flags := cmd.Flags()
			if flags.Changed("nome") {
				upd.Nome = f.nome
			}
			if flags.Changed("tipo") {
				upd.Tipo = f.tipo
			}
			if flags.Changed("status") {
				upd.Status = f.status
			}
			if flags.Changed("valor") {
				upd.ValorAquisicao = f.valor
			}

			ativo, err := a.store.Update(cmd.Context(), current.TagPatrimonio, upd)
			if err != nil {
				return fmt.Errorf("erro ao atualizar: %w", err)
			}
			return a.ok(cmd, "Ativo atualizado com sucesso!", ativo)
		},
	}
	f.bind(cmd, false)
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "excluir TAG [--sim]",
		Short: "Exclui um ativo e suas manutenções",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := args[0]
			done, err := confirm(cmd, yes, ui.Dialog{
				Kind:    ui.DialogConfirm,
				Title:   "Excluir ativo",
				Message: fmt.Sprintf("Excluir o ativo %s?", tag),
				Danger:  true,
			}, func(ctx context.Context, _ map[string]string) error {
				return a.store.Delete(ctx, tag)
			})
			if err != nil {
				return fmt.Errorf("erro ao excluir: %w", err)
			}
			if !done {
				return nil
			}
			return a.ok(cmd, "Ativo excluído com sucesso!", map[string]string{"tag_patrimonio": tag})
		},
	}
	cmd.Flags().BoolVarP(&yes, "sim", "y", false, "Não pede confirmação")
	return cmd
}
