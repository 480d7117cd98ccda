package migration

import (
	"context"

	"resume-builder/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration represents a database migration
type Migration struct {
	Name  string
	Query string

	// Optional migrations log and continue on failure.
	Optional bool
}

// All lists the migrations in the order they run.
var All = []Migration{
	{
		Name:  "create_resume_exports",
		Query: `
		CREATE TABLE IF NOT EXISTS resume_exports (
			id          UUID PRIMARY KEY,
			session_id  UUID NOT NULL,
			file_name   TEXT NOT NULL,
			template    TEXT NOT NULL,
			font        TEXT NOT NULL,
			accent      TEXT NOT NULL,
			status      TEXT NOT NULL,
			storage_key TEXT NOT NULL DEFAULT '',
			size        INTEGER NOT NULL DEFAULT 0,
			metadata    JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at  TIMESTAMPTZ NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		);`,
	},
	{
		Name:     "index_resume_exports_session",
		Query:    `CREATE INDEX IF NOT EXISTS resume_exports_session_idx ON resume_exports (session_id, created_at DESC);`,
		Optional: true,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	log.Info("Starting database migrations")

	for _, m := range All {
		if _, err := pool.Exec(ctx, m.Query); err != nil {
			if m.Optional {
				log.Warn("Optional migration failed", zap.String("name", m.Name), zap.Error(err))
				continue
			}
			log.Error("Migration failed", err, zap.String("name", m.Name))
			return err
		}
		log.Info("Migration completed", zap.String("name", m.Name))
	}

	log.Info("All migrations completed successfully")
	return nil
}
