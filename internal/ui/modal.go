package ui

import (
	"context"
	"errors"
	"sync"

	"inventario-ativos/internal/models"
)

var ErrNoDialog = errors.New("no dialog open")

type DialogKind string

const (
	DialogConfirm DialogKind = "confirm"
	DialogForm    DialogKind = "form"
)

// Field: campo de um diálogo de formulário.
type Field struct {
	Name     string
	Label    string
	Type     string // text, textarea, date
	Value    string
	Required bool
}

type Dialog struct {
	ID           uint64
	Kind         DialogKind
	Title        string
	Message      string
	ConfirmLabel string
	Danger       bool
	Fields       []Field
	// mensagem da última confirmação rejeitada por validação
	Error string
}

// Values devolve os valores atuais dos campos, por nome.
func (d Dialog) Values() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// Action é executada na confirmação com os valores enviados no formulário.
type Action func(ctx context.Context, values map[string]string) error

// Modal: no máximo um diálogo aberto por vez.
//
//	Idle → Open(dialog, action) → Confirm → action → Idle
//	                            → Cancel → Idle
//
// Abrir com um diálogo já aberto substitui a ação pendente. Uma confirmação
// cuja ação falha por validação mantém o diálogo aberto, com o erro e os
// valores enviados.
type Modal struct {
	mu     sync.Mutex
	gen    uint64
	dialog *Dialog
	action Action
}

func NewModal() *Modal {
	return &Modal{}
}

func (m *Modal) Open(d Dialog, action Action) Dialog {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	d.ID = m.gen
	d.Error = ""
	if d.Kind == "" {
		d.Kind = DialogConfirm
	}
	m.dialog = &d
	m.action = action
	return d
}

func (m *Modal) Current() (Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog == nil {
		return Dialog{}, false
	}
	return *m.dialog, true
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dialog != nil
}

// Cancel fecha o diálogo sem executar a ação. Devolve false se não havia diálogo.
func (m *Modal) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	wasOpen := m.dialog != nil
	m.dialog = nil
	m.action = nil
	return wasOpen
}

// Confirm executa a ação pendente fora do lock. Se outro diálogo for aberto
// durante a execução, ele não é fechado por esta confirmação.
func (m *Modal) Confirm(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	if m.dialog == nil {
		m.mu.Unlock()
		return ErrNoDialog
	}
	gen := m.gen
	action := m.action
	m.mu.Unlock()

	var err error
	if action != nil {
		err = action(ctx, values)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.dialog == nil {
		return err
	}
	if errors.Is(err, models.ErrValidation) {
		m.dialog.Error = err.Error()
		for i := range m.dialog.Fields {
			if v, ok := values[m.dialog.Fields[i].Name]; ok {
				m.dialog.Fields[i].Value = v
			}
		}
		return err
	}
	m.dialog = nil
	m.action = nil
	return err
}
