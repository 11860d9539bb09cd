package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-ativos/internal/models"
)

func TestModalConfirmRunsActionAndCloses(t *testing.T) {
	m := NewModal()
	ran := 0
	m.Open(Dialog{Title: "Excluir ativo", Message: "Confirma?"}, func(context.Context, map[string]string) error {
		ran++
		return nil
	})
	require.True(t, m.IsOpen())

	d, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, DialogConfirm, d.Kind)

	require.NoError(t, m.Confirm(context.Background(), nil))
	assert.Equal(t, 1, ran)
	assert.False(t, m.IsOpen())

	assert.ErrorIs(t, m.Confirm(context.Background(), nil), ErrNoDialog)
	assert.Equal(t, 1, ran)
}

func TestModalCancel(t *testing.T) {
	m := NewModal()
	ran := false
	m.Open(Dialog{Title: "x"}, func(context.Context, map[string]string) error {
		ran = true
		return nil
	})

	assert.True(t, m.Cancel())
	assert.False(t, m.IsOpen())
	assert.False(t, m.Cancel())
	assert.False(t, ran)
}

func TestModalOpenReplacesPendingAction(t *testing.T) {
	m := NewModal()
	var ran []string
	first := m.Open(Dialog{Title: "primeiro"}, func(context.Context, map[string]string) error {
		ran = append(ran, "primeiro")
		return nil
	})
	second := m.Open(Dialog{Title: "segundo"}, func(context.Context, map[string]string) error {
		ran = append(ran, "segundo")
		return nil
	})
	assert.Greater(t, second.ID, first.ID)

	d, _ := m.Current()
	assert.Equal(t, "segundo", d.Title)

	require.NoError(t, m.Confirm(context.Background(), nil))
	assert.Equal(t, []string{"segundo"}, ran)
}

func TestModalValidationKeepsDialogOpen(t *testing.T) {
	m := NewModal()
	m.Open(Dialog{
		Kind:   DialogForm,
		Title:  "Adicionar manutenção",
		Fields: []Field{{Name: "descricao", Label: "Descrição"}, {Name: "data_manutencao", Type: "date", Value: "2024-01-15"}},
	}, func(_ context.Context, values map[string]string) error {
		return models.Validate(models.ManutencaoUpdate{Descricao: values["descricao"]})
	})

	err := m.Confirm(context.Background(), map[string]string{"descricao": " ", "data_manutencao": "2024-02-01"})
	require.ErrorIs(t, err, models.ErrValidation)

	d, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "A descrição não pode estar vazia.", d.Error)
	assert.Equal(t, map[string]string{"descricao": " ", "data_manutencao": "2024-02-01"}, d.Values())

	require.NoError(t, m.Confirm(context.Background(), map[string]string{"descricao": "Troca de bateria"}))
	assert.False(t, m.IsOpen())
}

func TestModalOtherErrorsClose(t *testing.T) {
	m := NewModal()
	boom := errors.New("Ativo não encontrado")
	m.Open(Dialog{Title: "x"}, func(context.Context, map[string]string) error { return boom })

	assert.ErrorIs(t, m.Confirm(context.Background(), nil), boom)
	assert.False(t, m.IsOpen())
}

func TestModalReplacedDuringAction(t *testing.T) {
	m := NewModal()
	m.Open(Dialog{Title: "primeiro"}, func(context.Context, map[string]string) error {
		m.Open(Dialog{Title: "segundo"}, nil)
		return nil
	})

	require.NoError(t, m.Confirm(context.Background(), nil))
	d, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "segundo", d.Title)
}
