package database

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
)

func openMemory(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background(), SQLitePrefix+":memory:", zerolog.Nop(), WithRetry(1, time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	require.True(t, j.Enabled())

	j.Record(ctx, "ws-1", store.Mutation{Entity: models.EntityAtivo, Action: models.ActionCreate, Ref: "A1", Details: "Cadastrado: Laptop (Ativo)"})
	j.Record(ctx, "ws-1", store.Mutation{Entity: models.EntityManutencao, Action: models.ActionCreate, Ref: "A1", Details: "Troca de bateria"})
	j.Record(ctx, "cli", store.Mutation{Entity: models.EntityAtivo, Action: models.ActionDelete, Ref: "A1", Details: "Excluído: Laptop"})

	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.ActionDelete, entries[0].Action)
	assert.Equal(t, "cli", entries[0].Workspace)
	assert.Equal(t, "Troca de bateria", entries[1].Details)
	assert.Equal(t, models.EntityAtivo, entries[2].Entity)
	assert.False(t, entries[2].CreatedAt.IsZero())

	limited, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestNilJournalIsNoop(t *testing.T) {
	var j *Journal
	assert.False(t, j.Enabled())
	j.Record(context.Background(), "ws", store.Mutation{Entity: models.EntityAtivo})

	entries, err := j.Recent(context.Background(), 10)
	assert.NoError(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, j.Close())
}

func TestOpenFailsAfterRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Open(ctx, "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1", zerolog.Nop(), WithRetry(2, 10*time.Millisecond))
	assert.Error(t, err)
}

func TestDialectorFor(t *testing.T) {
	_, driver := dialectorFor("sqlite:/tmp/journal.db")
	assert.Equal(t, "sqlite", driver)
	_, driver = dialectorFor("postgres://u:p@localhost/db")
	assert.Equal(t, "postgres", driver)
}
