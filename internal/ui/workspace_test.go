package ui

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-ativos/internal/apiclient"
	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
	"inventario-ativos/internal/testutil"
)

func newTestWorkspace(t *testing.T, journal JournalFunc) (*Workspace, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend()
	backend.Seed(
		models.Ativo{TagPatrimonio: "A1", Nome: "Dell XPS", Tipo: "Notebook", Status: models.StatusAtivo},
		models.Ativo{TagPatrimonio: "A2", Nome: "HP ProBook", Tipo: "Notebook", Status: models.StatusInativo},
		models.Ativo{TagPatrimonio: "A3", Nome: "Dell P2419", Tipo: "Monitor", Status: models.StatusAtivo},
	)
	client, err := apiclient.New(backend.Server(t).URL)
	require.NoError(t, err)

	w := NewWorkspace("ws-1", client, WorkspaceOptions{
		Debounce: testDelay,
		Clock:    testutil.FixedClock(),
		Logger:   zerolog.Nop(),
		Journal:  journal,
	})
	t.Cleanup(w.Close)
	return w, backend
}

func nextEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func eventTags(e Event) []string {
	out := []string{}
	for _, a := range e.Ativos {
		out = append(out, a.TagPatrimonio)
	}
	return out
}

func TestEnsureLoadedOnce(t *testing.T) {
	w, backend := newTestWorkspace(t, nil)
	ctx := context.Background()

	w.EnsureLoaded(ctx)
	w.EnsureLoaded(ctx)
	assert.Equal(t, 1, backend.Requests())
	assert.Len(t, w.Store.All(), 3)
}

func TestTypeFilterIsDebounced(t *testing.T) {
	w, backend := newTestWorkspace(t, nil)
	w.EnsureLoaded(context.Background())
	events, cancel := w.Subscribe()
	defer cancel()

	for _, v := range []string{"d", "de", "del", "dell"} {
		require.NoError(t, w.TypeFilter(models.FilterNome, v))
	}
	assert.True(t, w.FilterPending())

	e := nextEvent(t, events)
	assert.Equal(t, EventGrid, e.Kind)
	assert.Equal(t, "dell", e.Filter.Nome)
	assert.Equal(t, []string{"A1", "A3"}, eventTags(e))

	select {
	case extra := <-events:
		t.Fatalf("unexpected extra event %v", extra.Kind)
	case <-time.After(3 * testDelay):
	}
	assert.Equal(t, 1, backend.Requests(), "filtering must not hit the network")

	assert.Error(t, w.TypeFilter("marca", "x"))
}

func TestSelectFilterAppliesImmediately(t *testing.T) {
	w, _ := newTestWorkspace(t, nil)
	w.EnsureLoaded(context.Background())

	require.NoError(t, w.TypeFilter(models.FilterNome, "dell"))
	display, err := w.SelectFilter(models.FilterTipo, "Monitor")
	require.NoError(t, err)
	require.Len(t, display, 1)
	assert.Equal(t, "A3", display[0].TagPatrimonio)
	assert.False(t, w.FilterPending())
	assert.Equal(t, models.Filter{Nome: "dell", Tipo: "Monitor"}, w.Store.Filter())

	_, err = w.SelectFilter("marca", "x")
	assert.Error(t, err)

	all := w.ClearFilter()
	assert.Len(t, all, 3)
	assert.True(t, w.Draft().IsEmpty())
	assert.True(t, w.Store.Filter().IsEmpty())
}

func TestRefreshFailurePushesToast(t *testing.T) {
	w, backend := newTestWorkspace(t, nil)
	w.EnsureLoaded(context.Background())
	events, cancel := w.Subscribe()
	defer cancel()

	backend.FailNext(http.StatusInternalServerError, "", "text/plain")
	display := w.Refresh(context.Background())
	assert.Empty(t, display)

	e := nextEvent(t, events)
	assert.Equal(t, EventToast, e.Kind)
	assert.Equal(t, ToastError, e.Toast.Kind)
	assert.Equal(t, "Falha ao buscar dados da API.", e.Toast.Message)

	e = nextEvent(t, events)
	assert.Equal(t, EventGrid, e.Kind)
	assert.Empty(t, e.Ativos)

	assert.Len(t, w.Toasts.Pending(), 1)
}

func TestWorkspaceJournal(t *testing.T) {
	var got []store.Mutation
	var ids []string
	w, _ := newTestWorkspace(t, func(_ context.Context, ws string, m store.Mutation) {
		ids = append(ids, ws)
		got = append(got, m)
	})
	ctx := context.Background()
	w.EnsureLoaded(ctx)

	require.NoError(t, w.Store.Delete(ctx, "A2"))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"ws-1"}, ids)
	assert.Equal(t, "A2", got[0].Ref)
	assert.Len(t, w.Store.All(), 2)
}

func TestCloseEndsSubscriptions(t *testing.T) {
	w, _ := newTestWorkspace(t, nil)
	events, cancel := w.Subscribe()

	require.NoError(t, w.TypeFilter(models.FilterNome, "x"))
	w.Close()
	cancel()

	_, ok := <-events
	assert.False(t, ok)
	assert.False(t, w.FilterPending())

	late, _ := w.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
