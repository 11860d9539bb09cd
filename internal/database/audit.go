package database

import (
	"context"

	"inventario-ativos/internal/models"
	"inventario-ativos/internal/store"
)

const DefaultRecentLimit = 100

// Record grava uma mutação aceita. Falha de gravação só é logada: o diário
// nunca bloqueia a operação principal.
func (j *Journal) Record(ctx context.Context, workspace string, m store.Mutation) {
	if !j.Enabled() {
		return
	}
	entry := models.AuditLog{
		Workspace: workspace,
		Entity:    m.Entity,
		EntityRef: m.Ref,
		Action:    m.Action,
		Details:   m.Details,
	}
	if err := j.db.WithContext(ctx).Create(&entry).Error; err != nil {
		j.log.Error().Err(err).Str("entity", m.Entity).Str("ref", m.Ref).Msg("failed to write journal entry")
	}
}

// Recent devolve os registros mais novos primeiro.
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if !j.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var entries []models.AuditLog
	err := j.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
