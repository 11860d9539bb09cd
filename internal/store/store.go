// Package store mantém a lista de ativos em memória, os critérios de filtro e
// o conjunto exibido derivado deles. Toda mutação bem-sucedida é seguida de
// uma releitura completa do backend: o cache nunca é remendado localmente.
package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"inventario-ativos/internal/models"
)

// API: operações do backend usadas pelo Store. *apiclient.Client satisfaz.
type API interface {
	ListAtivos(ctx context.Context, filter models.Filter) ([]models.Ativo, error)
	CreateAtivo(ctx context.Context, in models.AtivoInput) (models.Ativo, error)
	UpdateAtivo(ctx context.Context, tag string, in models.AtivoUpdate) (models.Ativo, error)
	DeleteAtivo(ctx context.Context, tag string) error
	AddManutencao(ctx context.Context, in models.ManutencaoInput) (models.Manutencao, error)
	UpdateManutencao(ctx context.Context, id int64, in models.ManutencaoUpdate) (models.Manutencao, error)
	DeleteManutencao(ctx context.Context, id int64) error
}

// Mutation descreve uma alteração aceita pelo backend.
type Mutation struct {
	Entity  string
	Action  string
	Ref     string
	Details string
}

type Option func(*Store)

// WithErrorHook recebe as falhas de refresh (inclusive as que seguem uma mutação).
func WithErrorHook(fn func(error)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

// WithMutationObserver é chamado após cada mutação aceita, antes do refresh.
func WithMutationObserver(fn func(context.Context, Mutation)) Option {
	return func(s *Store) {
		s.onMutation = fn
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

type Store struct {
	api        API
	log        zerolog.Logger
	onError    func(error)
	onMutation func(context.Context, Mutation)

	mu     sync.RWMutex
	all    []models.Ativo
	filter models.Filter
	loaded bool

	// issued: último ticket entregue; applied: ticket do último resultado aplicado
	issued  uint64
	applied uint64
}

func New(api API, opts ...Option) *Store {
	s := &Store{
		api: api,
		log: zerolog.Nop(),
		all: []models.Ativo{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

//
// LEITURA
//

// Refresh relê a lista completa, ignorando o filtro atual. Em caso de falha
// o cache fica vazio. Só é aplicado o resultado de um refresh iniciado depois
// de todos os já aplicados.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.mu.Unlock()

	ativos, err := s.api.ListAtivos(ctx, models.Filter{})

	s.mu.Lock()
	if ticket < s.applied {
		s.mu.Unlock()
		s.log.Debug().Uint64("ticket", ticket).Msg("discarding stale refresh")
		return err
	}
	s.applied = ticket
	s.loaded = true
	if err != nil {
		s.all = []models.Ativo{}
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("refresh failed, cache cleared")
		if s.onError != nil {
			s.onError(err)
		}
		return err
	}
	s.all = ativos
	s.mu.Unlock()

	s.log.Debug().Int("count", len(ativos)).Msg("cache refreshed")
	return nil
}

// Loaded informa se algum refresh já foi aplicado.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All devolve uma cópia da lista em cache.
func (s *Store) All() []models.Ativo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Ativo{}, s.all...)
}

// ApplyFilter guarda os critérios e devolve o conjunto exibido, sem rede.
func (s *Store) ApplyFilter(f models.Filter) []models.Ativo {
	s.mu.Lock()
	s.filter = f
	all := s.all
	s.mu.Unlock()
	return f.Apply(all)
}

func (s *Store) ClearFilter() []models.Ativo {
	return s.ApplyFilter(models.Filter{})
}

func (s *Store) Filter() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Display: cache filtrado pelos critérios atuais.
func (s *Store) Display() []models.Ativo {
	s.mu.RLock()
	f, all := s.filter, s.all
	s.mu.RUnlock()
	return f.Apply(all)
}

// Search consulta o backend com o filtro aplicado no servidor. Não toca no cache.
func (s *Store) Search(ctx context.Context, f models.Filter) ([]models.Ativo, error) {
	return s.api.ListAtivos(ctx, f)
}

func (s *Store) FindByTag(tag string) (models.Ativo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.all {
		if a.TagPatrimonio == tag {
			return a, true
		}
	}
	return models.Ativo{}, false
}

func (s *Store) FindByID(id int64) (models.Ativo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.all {
		if a.ID == id {
			return a, true
		}
	}
	return models.Ativo{}, false
}

// FindManutencao localiza a manutenção e o ativo ao qual pertence.
func (s *Store) FindManutencao(id int64) (models.Ativo, models.Manutencao, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.all {
		for _, m := range a.Manutencoes {
			if m.ID == id {
				return a, m, true
			}
		}
	}
	return models.Ativo{}, models.Manutencao{}, false
}

// UniqueValues: tipos e status distintos e não vazios, na ordem em que aparecem.
func (s *Store) UniqueValues() (tipos, statuses []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seenTipo := map[string]bool{}
	seenStatus := map[string]bool{}
	tipos, statuses = []string{}, []string{}
	for _, a := range s.all {
		if a.Tipo != "" && !seenTipo[a.Tipo] {
			seenTipo[a.Tipo] = true
			tipos = append(tipos, a.Tipo)
		}
		if a.Status != "" && !seenStatus[a.Status] {
			seenStatus[a.Status] = true
			statuses = append(statuses, a.Status)
		}
	}
	return tipos, statuses
}

//
// MUTAÇÕES
//

func (s *Store) Create(ctx context.Context, in models.AtivoInput) (models.Ativo, error) {
	if err := models.Validate(in); err != nil {
		return models.Ativo{}, err
	}
	created, err := s.api.CreateAtivo(ctx, in)
	if err != nil {
		return models.Ativo{}, err
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityAtivo,
		Action:  models.ActionCreate,
		Ref:     in.TagPatrimonio,
		Details: fmt.Sprintf("Cadastrado: %s (%s)", in.Nome, in.Status),
	})
	return created, nil
}

// Update altera os campos editáveis; a tag identifica o ativo e não muda.
func (s *Store) Update(ctx context.Context, tag string, in models.AtivoUpdate) (models.Ativo, error) {
	if err := validateTag(tag); err != nil {
		return models.Ativo{}, err
	}
	if err := models.Validate(in); err != nil {
		return models.Ativo{}, err
	}
	updated, err := s.api.UpdateAtivo(ctx, tag, in)
	if err != nil {
		return models.Ativo{}, err
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityAtivo,
		Action:  models.ActionUpdate,
		Ref:     tag,
		Details: fmt.Sprintf("Atualizado: %s (%s)", in.Nome, in.Status),
	})
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, tag string) error {
	if err := validateTag(tag); err != nil {
		return err
	}
	if err := s.api.DeleteAtivo(ctx, tag); err != nil {
		return err
	}
	details := "Excluído"
	if a, ok := s.FindByTag(tag); ok {
		details = "Excluído: " + a.Nome
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityAtivo,
		Action:  models.ActionDelete,
		Ref:     tag,
		Details: details,
	})
	return nil
}

func (s *Store) AddManutencao(ctx context.Context, in models.ManutencaoInput) (models.Manutencao, error) {
	if err := models.Validate(in); err != nil {
		return models.Manutencao{}, err
	}
	m, err := s.api.AddManutencao(ctx, in)
	if err != nil {
		return models.Manutencao{}, err
	}
	ref := strconv.FormatInt(in.AtivoID, 10)
	if a, ok := s.FindByID(in.AtivoID); ok {
		ref = a.TagPatrimonio
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityManutencao,
		Action:  models.ActionCreate,
		Ref:     ref,
		Details: in.Descricao,
	})
	return m, nil
}

func (s *Store) UpdateManutencao(ctx context.Context, id int64, in models.ManutencaoUpdate) (models.Manutencao, error) {
	if err := models.Validate(in); err != nil {
		return models.Manutencao{}, err
	}
	m, err := s.api.UpdateManutencao(ctx, id, in)
	if err != nil {
		return models.Manutencao{}, err
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityManutencao,
		Action:  models.ActionUpdate,
		Ref:     strconv.FormatInt(id, 10),
		Details: in.Descricao,
	})
	return m, nil
}

func (s *Store) DeleteManutencao(ctx context.Context, id int64) error {
	if err := s.api.DeleteManutencao(ctx, id); err != nil {
		return err
	}
	details := "Excluída"
	if _, m, ok := s.FindManutencao(id); ok {
		details = "Excluída: " + m.Descricao
	}
	s.afterMutation(ctx, Mutation{
		Entity:  models.EntityManutencao,
		Action:  models.ActionDelete,
		Ref:     strconv.FormatInt(id, 10),
		Details: details,
	})
	return nil
}

// afterMutation notifica o observador e relê a lista. Falha no refresh já foi
// reportada pelo hook e não transforma a mutação em erro.
func (s *Store) afterMutation(ctx context.Context, m Mutation) {
	s.log.Info().
		Str("entity", m.Entity).
		Str("action", m.Action).
		Str("ref", m.Ref).
		Msg("mutation accepted")
	if s.onMutation != nil {
		s.onMutation(ctx, m)
	}
	_ = s.Refresh(ctx)
}

func validateTag(tag string) error {
	if tag == "" {
		return &models.ValidationError{Field: "tag_patrimonio", Message: "A tag de patrimônio é obrigatória."}
	}
	return nil
}
