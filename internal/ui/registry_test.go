package ui

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-ativos/internal/testutil"
)

func TestRegistryGetAndSweep(t *testing.T) {
	clock := testutil.FixedClock()
	created := 0
	reg := NewRegistry(func(id string) *Workspace {
		created++
		return NewWorkspace(id, nil, WorkspaceOptions{Clock: clock, Logger: zerolog.Nop()})
	}, clock, 10*time.Minute, zerolog.Nop())

	a := reg.Get("")
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, reg.Get(a.ID))

	b := reg.Get("sessao-b")
	assert.Equal(t, "sessao-b", b.ID)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, reg.Len())

	clock.Advance(6 * time.Minute)
	reg.Get(a.ID) // toca só o a
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, reg.Sweep())
	_, ok := reg.Lookup("sessao-b")
	assert.False(t, ok)
	_, ok = reg.Lookup(a.ID)
	assert.True(t, ok)

	// id removido volta como workspace novo
	again := reg.Get("sessao-b")
	assert.NotSame(t, b, again)
	assert.Equal(t, 3, created)
}

func TestRegistryCloseAllEndsSubscriptions(t *testing.T) {
	clock := testutil.FixedClock()
	reg := NewRegistry(func(id string) *Workspace {
		return NewWorkspace(id, nil, WorkspaceOptions{Clock: clock, Logger: zerolog.Nop()})
	}, clock, time.Minute, zerolog.Nop())

	events, unsubscribe := reg.Get("").Subscribe()
	defer unsubscribe()

	reg.CloseAll()
	assert.Equal(t, 0, reg.Len())

	_, open := <-events
	assert.False(t, open)
}
