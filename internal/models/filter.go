package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Nomes dos campos de filtro, iguais aos nomes dos inputs do formulário.
const (
	FilterNome   = "nome"
	FilterTipo   = "tipo"
	FilterStatus = "status"
)

// Filter: critérios transitórios da listagem. Campo vazio não restringe.
type Filter struct {
	Nome   string `json:"nome,omitempty"`
	Tipo   string `json:"tipo,omitempty"`
	Status string `json:"status,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return f.Nome == "" && f.Tipo == "" && f.Status == ""
}

// Set altera um campo pelo nome do input.
func (f *Filter) Set(field, value string) error {
	switch field {
	case FilterNome:
		f.Nome = value
	case FilterTipo:
		f.Tipo = value
	case FilterStatus:
		f.Status = value
	default:
		return fmt.Errorf("unknown filter field %q", field)
	}
	return nil
}

// Apply devolve, em ordem, os ativos que contêm cada critério não vazio
// (sem diferenciar maiúsculas) no campo correspondente.
func (f Filter) Apply(ativos []Ativo) []Ativo {
	out := make([]Ativo, 0, len(ativos))
	if f.IsEmpty() {
		return append(out, ativos...)
	}

	// cases.Caser não é seguro para uso concorrente: um por chamada
	fold := cases.Fold()
	nome := fold.String(f.Nome)
	tipo := fold.String(f.Tipo)
	status := fold.String(f.Status)

	for _, a := range ativos {
		if nome != "" && !strings.Contains(fold.String(a.Nome), nome) {
			continue
		}
		if tipo != "" && !strings.Contains(fold.String(a.Tipo), tipo) {
			continue
		}
		if status != "" && !strings.Contains(fold.String(a.Status), status) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Query monta os parâmetros de GET /ativos, omitindo os vazios.
func (f Filter) Query() map[string]string {
	q := map[string]string{}
	if f.Nome != "" {
		q[FilterNome] = f.Nome
	}
	if f.Tipo != "" {
		q[FilterTipo] = f.Tipo
	}
	if f.Status != "" {
		q[FilterStatus] = f.Status
	}
	return q
}
