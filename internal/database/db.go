package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventario-ativos/internal/models"
)

// SQLitePrefix no DSN escolhe o SQLite; qualquer outro DSN vai para o Postgres.
const SQLitePrefix = "sqlite:"

// Journal: diário de operações aceitas pelo backend. Um *Journal nil é
// válido e não grava nada.
type Journal struct {
	db  *gorm.DB
	log zerolog.Logger
}

type openConfig struct {
	attempts uint
	delay    time.Duration
}

type Option func(*openConfig)

// WithRetry ajusta as tentativas de conexão.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *openConfig) {
		c.attempts = attempts
		c.delay = delay
	}
}

// Open conecta (com novas tentativas) e migra a tabela do diário.
func Open(ctx context.Context, dsn string, log zerolog.Logger, opts ...Option) (*Journal, error) {
	cfg := openConfig{attempts: 10, delay: 2 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	dialector, driver := dialectorFor(dsn)

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Discard})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(cfg.attempts),
		retry.Delay(cfg.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Str("driver", driver).Uint("attempt", n+1).Uint("max", cfg.attempts).Msg("failed to connect to journal db")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to journal db after %d attempts: %w", cfg.attempts, err)
	}

	if driver == "sqlite" {
		// banco em memória só existe dentro de uma conexão
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.AuditLog{}); err != nil {
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	log.Info().Str("driver", driver).Msg("connected to journal db")
	return &Journal{db: db, log: log}, nil
}

func dialectorFor(dsn string) (gorm.Dialector, string) {
	if rest, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		return sqlite.Open(rest), "sqlite"
	}
	return postgres.Open(dsn), "postgres"
}

func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}

func (j *Journal) Close() error {
	if !j.Enabled() {
		return nil
	}
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
