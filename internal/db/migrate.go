package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-export/internal/logging"
)

// Migration represents an idempotent schema change
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists schema changes in application order.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_pgcrypto_extension", Up: execMigration(`CREATE EXTENSION IF NOT EXISTS pgcrypto`)},
		{Name: "create_cv_generations", Up: execMigration(createGenerationsSQL)},
		{Name: "create_cv_custom_sections", Up: execMigration(createCustomSectionsSQL)},
		{Name: "use_json_section_columns", Up: execMigration(jsonSectionColumnsSQL)},
	}
}

const createGenerationsSQL = `
CREATE TABLE IF NOT EXISTS cv_generations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL,
	cv_id UUID NOT NULL,
	job_title TEXT NOT NULL DEFAULT '',
	original_sections JSON NOT NULL DEFAULT '[]'::json,
	modified_sections JSON NOT NULL DEFAULT '[]'::json,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_cv_generations_user ON cv_generations (user_id);
`

const createCustomSectionsSQL = `
CREATE TABLE IF NOT EXISTS cv_custom_sections (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	cv_id UUID NOT NULL,
	section_type TEXT NOT NULL,
	content JSON,
	sort_order INTEGER,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_cv_custom_sections_latest ON cv_custom_sections (cv_id, section_type, updated_at DESC);
`

// Section payloads are stored as JSON, not JSONB, so record keys keep the
// order they were written in. This converts tables created with JSONB.
const jsonSectionColumnsSQL = `
ALTER TABLE cv_generations ALTER COLUMN original_sections DROP DEFAULT;
ALTER TABLE cv_generations ALTER COLUMN modified_sections DROP DEFAULT;
ALTER TABLE cv_generations ALTER COLUMN original_sections TYPE JSON USING original_sections::json;
ALTER TABLE cv_generations ALTER COLUMN modified_sections TYPE JSON USING modified_sections::json;
ALTER TABLE cv_generations ALTER COLUMN original_sections SET DEFAULT '[]'::json;
ALTER TABLE cv_generations ALTER COLUMN modified_sections SET DEFAULT '[]'::json;
ALTER TABLE cv_custom_sections ALTER COLUMN content TYPE JSON USING content::json;
`

func execMigration(sql string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, sql)
		return err
	}
}

// Migrate applies every migration. Each one is safe to re-run.
func (db *DB) Migrate(ctx context.Context, logger *zerolog.Logger) error {
	log := logging.OrNop(logger)
	log.Info().Msg("starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, db.pool); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		log.Info().Str("name", m.Name).Msg("migration completed")
	}
	return nil
}
