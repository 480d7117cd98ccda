package infrastructure

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPool connects to Postgres. The connect attempt is bounded so a missing
// database does not stall startup.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
