package testutil

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"inventario-ativos/internal/models"
)

// Backend implementa em memória a API REST de ativos (/ativos, /ativo, /manutencao),
// com as mesmas respostas de erro {message} do servidor real.
type Backend struct {
	mu         sync.Mutex
	ativos     map[string]*models.Ativo
	order      []string
	nextAtivo  int64
	nextManut  int64
	clock      *StubClock
	requests   int
	failure    *injectedFailure
	lastMethod string
	lastURL    string
}

type injectedFailure struct {
	status      int
	body        string
	contentType string
}

func NewBackend() *Backend {
	return &Backend{
		ativos: map[string]*models.Ativo{},
		clock:  FixedClock(),
	}
}

// Server sobe o backend num httptest.Server encerrado no fim do teste.
func (b *Backend) Server(t interface{ Cleanup(func()) }) *httptest.Server {
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func (b *Backend) Clock() *StubClock {
	return b.clock
}

// Requests conta as requisições recebidas.
func (b *Backend) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

// LastRequest devolve método e URL (path + query) da última requisição.
func (b *Backend) LastRequest() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastMethod, b.lastURL
}

// FailNext faz a próxima requisição responder com o status e corpo dados.
func (b *Backend) FailNext(status int, body, contentType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failure = &injectedFailure{status: status, body: body, contentType: contentType}
}

// Seed cadastra ativos diretamente, sem passar pela API.
func (b *Backend) Seed(ativos ...models.Ativo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range ativos {
		b.nextAtivo++
		a.ID = b.nextAtivo
		for i := range a.Manutencoes {
			b.nextManut++
			a.Manutencoes[i].ID = b.nextManut
			a.Manutencoes[i].AtivoID = a.ID
		}
		cp := a
		b.ativos[a.TagPatrimonio] = &cp
		b.order = append(b.order, a.TagPatrimonio)
	}
}

func (b *Backend) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(b.track)

	r.GET("/ativos", b.list)
	r.POST("/ativo", b.create)
	r.PUT("/ativo", b.update)
	r.DELETE("/ativo", b.delete)
	r.POST("/manutencao", b.addManutencao)
	r.PUT("/manutencao", b.updateManutencao)
	r.DELETE("/manutencao", b.deleteManutencao)
	return r
}

func (b *Backend) track(c *gin.Context) {
	b.mu.Lock()
	b.requests++
	b.lastMethod = c.Request.Method
	b.lastURL = c.Request.URL.RequestURI()
	failure := b.failure
	b.failure = nil
	b.mu.Unlock()

	if failure != nil {
		c.Data(failure.status, failure.contentType, []byte(failure.body))
		c.Abort()
		return
	}
	c.Next()
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func (b *Backend) list(c *gin.Context) {
	filter := models.Filter{
		Nome:   c.Query("nome"),
		Tipo:   c.Query("tipo"),
		Status: c.Query("status"),
	}

	b.mu.Lock()
	all := make([]models.Ativo, 0, len(b.order))
	for _, tag := range b.order {
		all = append(all, copyAtivo(b.ativos[tag]))
	}
	b.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"ativos": filter.Apply(all)})
}

func (b *Backend) create(c *gin.Context) {
	var in models.AtivoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		message(c, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(in.TagPatrimonio) == "" || strings.TrimSpace(in.Nome) == "" {
		message(c, http.StatusBadRequest, "tag_patrimonio e nome são obrigatórios")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.ativos[in.TagPatrimonio]; exists {
		message(c, http.StatusConflict, "Já existe um ativo com esta tag de patrimônio")
		return
	}
	b.nextAtivo++
	a := &models.Ativo{
		ID:             b.nextAtivo,
		TagPatrimonio:  in.TagPatrimonio,
		Nome:           in.Nome,
		Tipo:           in.Tipo,
		Status:         in.Status,
		ValorAquisicao: in.ValorAquisicao,
		Manutencoes:    []models.Manutencao{},
	}
	b.ativos[a.TagPatrimonio] = a
	b.order = append(b.order, a.TagPatrimonio)

	c.JSON(http.StatusCreated, gin.H{"message": "Ativo cadastrado", "ativo": copyAtivo(a)})
}

func (b *Backend) update(c *gin.Context) {
	tag := c.Query("tag_patrimonio")
	var in models.AtivoUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		message(c, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.ativos[tag]
	if !ok {
		message(c, http.StatusNotFound, "Ativo não encontrado")
		return
	}
	a.Nome = in.Nome
	a.Tipo = in.Tipo
	a.Status = in.Status
	a.ValorAquisicao = in.ValorAquisicao

	c.JSON(http.StatusOK, copyAtivo(a))
}

func (b *Backend) delete(c *gin.Context) {
	tag := c.Query("tag_patrimonio")

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ativos[tag]; !ok {
		message(c, http.StatusNotFound, "Ativo não encontrado")
		return
	}
	delete(b.ativos, tag)
	for i, t := range b.order {
		if t == tag {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	message(c, http.StatusOK, "Ativo excluído")
}

func (b *Backend) addManutencao(c *gin.Context) {
	var in models.ManutencaoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		message(c, http.StatusBadRequest, "JSON inválido")
		return
	}
	if strings.TrimSpace(in.Descricao) == "" {
		message(c, http.StatusBadRequest, "descricao é obrigatória")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	owner := b.byID(in.AtivoID)
	if owner == nil {
		message(c, http.StatusNotFound, "Ativo não encontrado")
		return
	}
	data := models.NewDate(b.clock.Now())
	if in.Data != nil && !in.Data.IsZero() {
		data = *in.Data
	}
	b.nextManut++
	m := models.Manutencao{
		ID:             b.nextManut,
		AtivoID:        owner.ID,
		Descricao:      in.Descricao,
		DataManutencao: data,
	}
	owner.Manutencoes = append(owner.Manutencoes, m)

	c.JSON(http.StatusCreated, gin.H{"manutencao": m})
}

func (b *Backend) updateManutencao(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)
	var in models.ManutencaoUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		message(c, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, idx := b.manutencao(id)
	if a == nil {
		message(c, http.StatusNotFound, "Manutenção não encontrada")
		return
	}
	a.Manutencoes[idx].Descricao = in.Descricao
	c.JSON(http.StatusOK, gin.H{"manutencao": a.Manutencoes[idx]})
}

func (b *Backend) deleteManutencao(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	a, idx := b.manutencao(id)
	if a == nil {
		message(c, http.StatusNotFound, "Manutenção não encontrada")
		return
	}
	a.Manutencoes = append(a.Manutencoes[:idx], a.Manutencoes[idx+1:]...)
	message(c, http.StatusOK, "Manutenção excluída")
}

func (b *Backend) byID(id int64) *models.Ativo {
	for _, a := range b.ativos {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (b *Backend) manutencao(id int64) (*models.Ativo, int) {
	for _, a := range b.ativos {
		for i, m := range a.Manutencoes {
			if m.ID == id {
				return a, i
			}
		}
	}
	return nil, -1
}

func copyAtivo(a *models.Ativo) models.Ativo {
	cp := *a
	cp.Manutencoes = append([]models.Manutencao{}, a.Manutencoes...)
	sort.Slice(cp.Manutencoes, func(i, j int) bool {
		return cp.Manutencoes[i].ID < cp.Manutencoes[j].ID
	})
	return cp
}

// Day é um atalho para datas fixas nos testes.
func Day(year int, month time.Month, day int) models.Date {
	return models.NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
