package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
)

type geocodeCacheRepository struct {
	db *sqlx.DB
}

// NewGeocodeCacheRepository creates a new geocode cache repository implementation.
func NewGeocodeCacheRepository(db *sqlx.DB) repository.GeocodeCacheRepository {
	return &geocodeCacheRepository{db: db}
}

func (r *geocodeCacheRepository) Get(ctx context.Context, normalizedAddress string) (*entity.GeocodeCache, error) {
	const query = `
		SELECT id, normalized_address, latitude, longitude, created_at, updated_at
		FROM geocode_cache
		WHERE normalized_address = $1`

	var c entity.GeocodeCache
	err := executorFrom(ctx, r.db).GetContext(ctx, &c, query, normalizedAddress)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *geocodeCacheRepository) Upsert(ctx context.Context, c *entity.GeocodeCache) error {
	const query = `
		INSERT INTO geocode_cache (id, normalized_address, latitude, longitude, created_at, updated_at)
		VALUES (:id, :normalized_address, :latitude, :longitude, :created_at, :updated_at)
		ON CONFLICT (normalized_address) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at`
	_, err := executorFrom(ctx, r.db).NamedExecContext(ctx, query, c)
	return err
}
