package repository

import (
	"context"
	"encoding/json"

	"resume-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ExportsRepo records export history in Postgres. A nil pool turns every
// call into a no-op so the service runs without a database.
type ExportsRepo struct {
	pool *pgxpool.Pool
}

func NewExportsRepo(pool *pgxpool.Pool) *ExportsRepo {
	return &ExportsRepo{pool: pool}
}

func (r *ExportsRepo) Save(ctx context.Context, e *domain.ExportRecord) error {
	if r.pool == nil {
		return nil
	}

	metaB, _ := json.Marshal(e.Metadata)

	_, err := r.pool.Exec(ctx, `INSERT INTO resume_exports (id, session_id, file_name, template, font, accent, status, storage_key, size, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, storage_key = EXCLUDED.storage_key, size = EXCLUDED.size, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		e.ID, e.SessionID, e.FileName, e.Template, e.Font, e.Accent, e.Status, e.StorageKey, e.Size, metaB, e.CreatedAt, e.UpdatedAt)
	return err
}

// ListBySession returns a session's exports, newest first.
func (r *ExportsRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.ExportRecord, error) {
	if r.pool == nil {
		return []domain.ExportRecord{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, session_id, file_name, template, font, accent, status, storage_key, size, metadata, created_at, updated_at
		FROM resume_exports WHERE session_id = $1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ExportRecord{}
	for rows.Next() {
		var e domain.ExportRecord
		var metaB []byte
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FileName, &e.Template, &e.Font, &e.Accent, &e.Status, &e.StorageKey, &e.Size, &metaB, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if len(metaB) > 0 {
			_ = json.Unmarshal(metaB, &e.Metadata)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
