package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-ativos/internal/apiclient"
	"inventario-ativos/internal/models"
	"inventario-ativos/internal/testutil"
)

func newBackend(t *testing.T) (*testutil.Backend, string) {
	t.Helper()
	t.Setenv("AUDIT_DSN", "")
	t.Setenv("ATIVOS_API_URL", "")

	b := testutil.NewBackend()
	b.Seed(
		models.Ativo{TagPatrimonio: "A1", Nome: "Dell XPS", Tipo: "Notebook", Status: models.StatusAtivo, ValorAquisicao: 8500},
		models.Ativo{TagPatrimonio: "A2", Nome: "HP ProBook", Tipo: "Notebook", Status: models.StatusInativo},
		models.Ativo{TagPatrimonio: "A3", Nome: "Dell P2419", Tipo: "Monitor", Status: models.StatusAtivo},
	)
	return b, b.Server(t).URL
}

func run(t *testing.T, apiURL, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListar(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "", "listar")
	require.NoError(t, err)
	assert.Contains(t, out, "Dell XPS")
	assert.Contains(t, out, "R$ 8.500,00")
	assert.Contains(t, out, "HP ProBook")

	out, err = run(t, url, "", "listar", "--tipo", "monitor")
	require.NoError(t, err)
	assert.Contains(t, out, "Dell P2419")
	assert.NotContains(t, out, "HP ProBook")

	out, err = run(t, url, "", "listar", "--nome", "inexistente")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum ativo encontrado.")

	out, err = run(t, url, "", "-j", "listar")
	require.NoError(t, err)
	var ativos []models.Ativo
	require.NoError(t, json.Unmarshal([]byte(out), &ativos))
	assert.Len(t, ativos, 3)
}

func TestCadastrarEditarMostrar(t *testing.T) {
	backend, url := newBackend(t)

	out, err := run(t, url, "", "cadastrar", "--tag", "PAT-50", "--nome", "Lenovo T14", "--tipo", "Notebook", "--valor", "4200.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Ativo cadastrado com sucesso!")

	_, err = run(t, url, "", "cadastrar", "--tag", "PAT-50", "--nome", "Outro", "--tipo", "Notebook")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	before := backend.Requests()
	_, err = run(t, url, "", "cadastrar", "--tag", "PAT-51", "--tipo", "Notebook")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, before, backend.Requests())

	out, err = run(t, url, "", "editar", "A2", "--status", models.StatusAtivo)
	require.NoError(t, err)
	assert.Contains(t, out, "Ativo atualizado com sucesso!")

	out, err = run(t, url, "", "mostrar", "A2")
	require.NoError(t, err)
	assert.Contains(t, out, "HP ProBook")
	assert.Contains(t, out, "Status:  Ativo")
	assert.Contains(t, out, "Nenhuma manutenção registrada")

	_, err = run(t, url, "", "mostrar", "NAO-EXISTE")
	assert.ErrorContains(t, err, "não encontrado")
}

func TestExcluirPedeConfirmacao(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "n\n", "excluir", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "Operação cancelada.")

	out, _ = run(t, url, "", "listar")
	assert.Contains(t, out, "Dell XPS")

	out, err = run(t, url, "s\n", "excluir", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ativo excluído com sucesso!")

	out, err = run(t, url, "", "excluir", "A2", "--sim")
	require.NoError(t, err)
	assert.Contains(t, out, "Ativo excluído com sucesso!")

	out, _ = run(t, url, "", "listar")
	assert.NotContains(t, out, "Dell XPS")
	assert.NotContains(t, out, "HP ProBook")

	_, err = run(t, url, "", "excluir", "A1", "--sim")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestManutencao(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "", "-j", "manutencao", "adicionar", "A1", "--descricao", "Troca de bateria", "--data", "2024-03-10")
	require.NoError(t, err)
	var created struct {
		Message string            `json:"message"`
		Result  models.Manutencao `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "Manutenção adicionada!", created.Message)
	require.NotZero(t, created.Result.ID)

	out, err = run(t, url, "", "mostrar", "A1")
	require.NoError(t, err)
	assert.Contains(t, out, "10/03/2024")
	assert.Contains(t, out, "Troca de bateria")

	id := strconv.FormatInt(created.Result.ID, 10)
	out, err = run(t, url, "", "manutencao", "editar", id, "--descricao", "Troca de bateria e teclado")
	require.NoError(t, err)
	assert.Contains(t, out, "Manutenção atualizada!")

	_, err = run(t, url, "", "manutencao", "editar", id, "--descricao", " ")
	assert.ErrorIs(t, err, models.ErrValidation)

	out, err = run(t, url, "", "manutencao", "excluir", id, "--sim")
	require.NoError(t, err)
	assert.Contains(t, out, "Manutenção excluída!")

	out, _ = run(t, url, "", "mostrar", "A1")
	assert.Contains(t, out, "Nenhuma manutenção registrada")

	_, err = run(t, url, "", "manutencao", "editar", "abc", "--descricao", "x")
	assert.ErrorContains(t, err, "id inválido")
}

func TestPainel(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "", "painel")
	require.NoError(t, err)
	assert.Contains(t, out, "Total de ativos:")
	assert.Contains(t, out, "Notebook")
	assert.Contains(t, out, "66,7%")
	assert.Contains(t, out, "Nenhuma atividade recente")
}

func TestAuditoria(t *testing.T) {
	_, url := newBackend(t)

	_, err := run(t, url, "", "auditoria")
	assert.ErrorContains(t, err, "AUDIT_DSN")

	t.Setenv("AUDIT_DSN", "sqlite:"+filepath.Join(t.TempDir(), "audit.db"))
	_, err = run(t, url, "", "cadastrar", "--tag", "PAT-60", "--nome", "Impressora Laser", "--tipo", "Impressora")
	require.NoError(t, err)

	out, err := run(t, url, "", "auditoria")
	require.NoError(t, err)
	assert.Contains(t, out, "PAT-60")
	assert.Contains(t, out, cliWorkspace)
}

func TestNetworkError(t *testing.T) {
	t.Setenv("AUDIT_DSN", "")
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := run(t, srv.URL, "", "listar")
	assert.ErrorIs(t, err, apiclient.ErrNetwork)
}
