package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inventario-ativos/internal/database"
	"inventario-ativos/internal/store"
	"inventario-ativos/internal/view"
)

func (a *app) newDashboardCmd() *cobra.Command {
	var recentes int
	cmd := &cobra.Command{
		Use:   "painel",
		Short: "Resumo do inventário: totais, distribuição por tipo e últimas manutenções",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Refresh(cmd.Context()); err != nil {
				return err
			}
			ativos := a.store.All()
			stats := store.CalculateStats(ativos)
			dist := store.TypeDistribution(ativos)
			recent := store.RecentActivities(ativos, recentes)

			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"stats":        stats,
					"distribution": dist,
					"activities":   recent,
				})
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total de ativos:\t%d\n", stats.Total)
			fmt.Fprintf(tw, "Ativos:\t%d\n", stats.Ativos)
			fmt.Fprintf(tw, "Inativos:\t%d\n", stats.Inativos)
			fmt.Fprintf(tw, "Em manutenção:\t%d\n", stats.EmManutencao)
			fmt.Fprintf(tw, "Valor total:\t%s\n", view.Moeda(stats.ValorTotal))
			fmt.Fprintf(tw, "Manutenções:\t%d\n", stats.TotalManutencoes)
			tw.Flush()

			if len(dist) > 0 {
				fmt.Fprintln(w, "\nPor tipo")
				tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, s := range dist {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Tipo, s.Count, view.Percentual(s.Percentage))
				}
				tw.Flush()
			}

			fmt.Fprintln(w, "\nAtividades recentes")
			if len(recent) == 0 {
				fmt.Fprintln(w, "Nenhuma atividade recente")
				return nil
			}
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, act := range recent {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", view.Data(act.Data), act.Titulo, act.Descricao)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&recentes, "recentes", store.DefaultRecentActivities, "Quantidade de atividades recentes")
	return cmd
}

func (a *app) newAuditCmd() *cobra.Command {
	var limite int
	cmd := &cobra.Command{
		Use:   "auditoria",
		Short: "Lista as últimas operações registradas (requer AUDIT_DSN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.journal.Enabled() {
				return fmt.Errorf("diário de operações desativado: configure AUDIT_DSN")
			}
			entries, err := a.journal.Recent(cmd.Context(), limite)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATA\tSESSÃO\tENTIDADE\tREFERÊNCIA\tAÇÃO\tDETALHES")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					view.DataHora(e.CreatedAt), e.Workspace, e.Entity, e.EntityRef, e.Action, e.Details)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limite, "limite", database.DefaultRecentLimit, "Quantidade máxima de registros")
	return cmd
}
