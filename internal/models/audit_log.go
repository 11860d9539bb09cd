package models

import "time"

// Ações registradas no diário de operações.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entidades do diário.
const (
	EntityAtivo      = "ativo"
	EntityManutencao = "manutencao"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	Workspace string `gorm:"size:64;index"` // sessão do navegador ou "cli"

	Entity    string `gorm:"size:50;not null"` // "ativo", "manutencao"
	EntityRef string `gorm:"size:100"`         // tag de patrimônio ou id da manutenção
	Action    string `gorm:"size:50;not null"` // "create", "update", "delete"
	Details   string `gorm:"type:text"`
}
