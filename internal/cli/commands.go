// Package cli expõe as operações do inventário na linha de comando.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inventario-ativos/internal/apiclient"
	"inventario-ativos/internal/config"
	"inventario-ativos/internal/database"
	"inventario-ativos/internal/logging"
	"inventario-ativos/internal/store"
	"inventario-ativos/internal/ui"
)

// workspace gravado no diário para operações feitas pela CLI
const cliWorkspace = "cli"

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// app guarda as flags globais e o que PersistentPreRunE monta a partir delas.
type app struct {
	apiURL     string
	configFile string
	jsonOutput bool

	log     zerolog.Logger
	journal *database.Journal
	store   *store.Store
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "ativos [command] [flags]",
		Short: "Inventário de ativos pela linha de comando",
		Long: `ativos consulta e altera o inventário de ativos de TI através da API REST.

Examples:
  # Listar notebooks ativos
  ativos listar --tipo notebook --status Ativo

  # Cadastrar um ativo
  ativos cadastrar --tag PAT-001 --nome "Dell XPS" --tipo Notebook --valor 8500

  # Registrar uma manutenção
  ativos manutencao adicionar PAT-001 --descricao "Troca de bateria"

  # Excluir sem confirmação interativa
  ativos excluir PAT-001 --sim`,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides ATIVOS_API_URL)")
	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "", "", "Path to a TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&a.jsonOutput, "json", "j", false, "Output in JSON format")

	cmd.AddCommand(
		a.newListCmd(),
		a.newShowCmd(),
		a.newCreateCmd(),
		a.newUpdateCmd(),
		a.newDeleteCmd(),
		a.newMaintenanceCmd(),
		a.newDashboardCmd(),
		a.newAuditCmd(),
	)
	return cmd
}

// Execute roda a CLI; chamado por main.main.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err := rootCmd.Execute()
	if err != nil {
		if jsonRequested(rootCmd) {
			_ = printJSON(os.Stdout, map[string]string{"error": ui.Describe(err)})
		} else {
			errorLabel.Fprintf(os.Stderr, "Erro: %s\n", ui.Describe(err))
		}
		os.Exit(1)
	}
}

func jsonRequested(cmd *cobra.Command) bool {
	v, err := cmd.PersistentFlags().GetBool("json")
	return err == nil && v
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	a.log = logging.InitConsole(cfg.LogLevel)

	client, err := apiclient.New(cfg.APIURL, apiclient.WithLogger(a.log))
	if err != nil {
		return err
	}

	if cfg.AuditDSN != "" {
		a.journal, err = database.Open(cmd.Context(), cfg.AuditDSN, a.log, database.WithRetry(3, time.Second))
		if err != nil {
			return fmt.Errorf("opening audit journal: %w", err)
		}
	}

	a.store = store.New(client,
		store.WithLogger(a.log),
		store.WithMutationObserver(func(ctx context.Context, m store.Mutation) {
			a.journal.Record(ctx, cliWorkspace, m)
		}),
	)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	return a.journal.Close()
}

// ok imprime a mensagem de sucesso, ou o payload em JSON.
func (a *app) ok(cmd *cobra.Command, message string, payload any) error {
	if a.jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"message": message, "result": payload})
	}
	okLabel.Fprintln(cmd.OutOrStdout(), message)
	return nil
}

func printJSON(w io.Writer, data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// confirm passa a operação pelo mesmo Modal da interface web: sem --sim,
// pergunta no terminal antes de confirmar.
func confirm(cmd *cobra.Command, assumeYes bool, d ui.Dialog, action ui.Action) (bool, error) {
	modal := ui.NewModal()
	modal.Open(d, action)

	if !assumeYes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N]: ", d.Message)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s", "sim", "y", "yes":
		default:
			modal.Cancel()
			fmt.Fprintln(cmd.OutOrStdout(), "Operação cancelada.")
			return false, nil
		}
	}
	return true, modal.Confirm(cmd.Context(), nil)
}
