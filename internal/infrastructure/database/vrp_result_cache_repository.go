package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type vrpResultCacheRepository struct {
	db *sqlx.DB
}

// NewVRPResultCacheRepository creates a new VRP result cache repository implementation.
func NewVRPResultCacheRepository(db *sqlx.DB) repository.VRPResultCacheRepository {
	return &vrpResultCacheRepository{db: db}
}

func (r *vrpResultCacheRepository) Get(ctx context.Context, contextKey string) (*entity.VRPResultCache, error) {
	const query = `
		SELECT id, context_key, payload, created_at, updated_at
		FROM vrp_result_cache
		WHERE context_key = $1`

	var c entity.VRPResultCache
	err := executorFrom(ctx, r.db).GetContext(ctx, &c, query, contextKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *vrpResultCacheRepository) Upsert(ctx context.Context, c *entity.VRPResultCache) error {
	const query = `
		INSERT INTO vrp_result_cache (id, context_key, payload, created_at, updated_at)
		VALUES (:id, :context_key, :payload, :created_at, :updated_at)
		ON CONFLICT (context_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, c)
	return err
}

// DeleteOlderThan implements the scheduler's TTL sweep (SPEC_FULL.md §C.6):
// rows last refreshed before cutoff are evicted, returning the count removed
// for logging.
func (r *vrpResultCacheRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM vrp_result_cache WHERE updated_at < $1`

	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
