// Package app wires configuration, storage, services and transports into
// a runnable process.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/library-backend/internal/adapter/postgres"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/book"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/lend"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/reader"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/returnrecord"
	"github.com/heartmarshall/library-backend/internal/adapter/postgres/stats"
	"github.com/heartmarshall/library-backend/internal/auth"
	"github.com/heartmarshall/library-backend/internal/config"
	"github.com/heartmarshall/library-backend/internal/metrics"
	"github.com/heartmarshall/library-backend/internal/retry"
	"github.com/heartmarshall/library-backend/internal/service/circulation"
	"github.com/heartmarshall/library-backend/internal/service/inventory"
	statssvc "github.com/heartmarshall/library-backend/internal/service/stats"
)

// Container holds the long-lived dependencies shared by the server and the
// CLI commands.
type Container struct {
	Config      *config.Config
	Log         *slog.Logger
	Pool        *pgxpool.Pool
	Metrics     *metrics.Metrics
	Retry       *retry.Retrier
	JWT         *auth.JWTManager
	Circulation *circulation.Service
	Stats       *statssvc.Service
}

// NewContainer connects to the database and builds every service. When
// database.migrate_on_start is set, pending migrations are applied first.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.Database.MigrateOnStart {
		if err := MigrateUp(ctx, cfg.Database, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return newContainer(cfg, logger, pool, metrics.New()), nil
}

func newContainer(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, m *metrics.Metrics) *Container {
	txm := postgres.NewTxManager(pool)

	bookRepo := book.New(pool)
	readerRepo := reader.New(pool)
	lendRepo := lend.New(pool)
	auditRepo := audit.New(pool)

	circ := circulation.NewService(logger, cfg.Circulation, circulation.Deps{
		Readers: readerRepo,
		Books:   bookRepo,
		Lends:   lendRepo,
		Returns: returnrecord.New(pool),
		Ledger:  inventory.NewLedger(logger, bookRepo),
		Audit:   auditRepo,
		History: auditRepo,
		Tx:      txm,
		Metrics: m,
	})

	st := statssvc.NewService(logger, cfg.Stats, statssvc.Deps{
		Stats:      stats.New(pool),
		Categories: category.New(pool),
		Lends:      lendRepo,
		Readers:    readerRepo,
		Books:      bookRepo,
	})

	return &Container{
		Config:      cfg,
		Log:         logger,
		Pool:        pool,
		Metrics:     m,
		Retry:       retry.New(logger, cfg.Retry),
		JWT:         auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		Circulation: circ,
		Stats:       st,
	}
}

// Close releases the database pool.
func (c *Container) Close() {
	c.Pool.Close()
}

// MigrateUp applies pending migrations and logs the versions applied.
func MigrateUp(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	defer m.Close() //nolint:errcheck

	applied, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.InfoContext(ctx, "migrations applied", slog.Int("count", len(applied)), slog.Any("versions", applied))
	return nil
}
