// Package geocode implements C2: address -> coordinates resolution through a
// three-tier cache (in-process LRU, networked Redis, durable Postgres) in
// front of a rate-limited external geocoding call, with single-flight
// coalescing of concurrent misses for the same normalized address.
//
// Grounded on original_source/geo_rota/utils/geocode.py (resolution order,
// normalization, RateLimiter, best-effort persistent writes) with the LRU
// tier sized exactly like the Python `@lru_cache(maxsize=512)`.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/Luks9/geo-rota/internal/domain/apperr"
	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/domain/repository"
	"github.com/Luks9/geo-rota/internal/infrastructure/cache"
	"github.com/Luks9/geo-rota/pkg/logger"
)

const lruCacheSize = 512

// Geocoder resolves a free-form address to coordinates. Defined as a
// capability interface (spec.md §9) so tests can substitute a deterministic
// fake (see FakeGeocoder) instead of the real HTTP + cache stack.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Coordinates, error)
}

// Service is the production Geocoder: LRU -> Redis -> Postgres -> external
// HTTP lookup, in that order (spec.md §4.1).
type Service struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string

	lru        *lru.Cache[string, entity.Coordinates]
	hot        *cache.Cache
	persistent repository.GeocodeCacheRepository
	limiter    *rate.Limiter
	group      singleflight.Group
	log        logger.Logger

	hotTTL time.Duration
}

// NewService wires the three cache tiers and the rate-limited external
// client. minInterval is normally 1 second (spec.md §6.2).
func NewService(baseURL, userAgent string, timeout, minInterval time.Duration, hot *cache.Cache, persistent repository.GeocodeCacheRepository, log logger.Logger) (*Service, error) {
	l, err := lru.New[string, entity.Coordinates](lruCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode lru: %w", err)
	}

	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		lru:        l,
		hot:        hot,
		persistent: persistent,
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		log:        log,
		hotTTL:     24 * time.Hour,
	}, nil
}

// NormalizeAddress lowercases, trims, and collapses internal whitespace —
// the cache key for every tier (spec.md §4.1). Idempotent by construction:
// Normalize(Normalize(x)) == Normalize(x).
func NormalizeAddress(address string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(address)))
	return strings.Join(fields, " ")
}

func (s *Service) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	normalized := NormalizeAddress(address)
	if normalized == "" {
		return entity.Coordinates{}, apperr.NewGeocodeError(address, "empty address")
	}

	if coords, ok := s.lru.Get(normalized); ok {
		return coords, nil
	}

	if s.hot != nil {
		var coords entity.Coordinates
		if err := s.hot.GetJSON(ctx, hotKey(normalized), &coords); err == nil {
			s.lru.Add(normalized, coords)
			return coords, nil
		}
	}

	if s.persistent != nil {
		if row, err := s.persistent.Get(ctx, normalized); err == nil && row != nil {
			coords := entity.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude}
			s.lru.Add(normalized, coords)
			s.warmHot(ctx, normalized, coords)
			return coords, nil
		}
	}

	// Single-flight: concurrent callers for the same normalized address
	// coalesce into one external lookup (spec.md §4.1, §5).
	v, err, _ := s.group.Do(normalized, func() (interface{}, error) {
		return s.lookupExternal(ctx, normalized, address)
	})
	if err != nil {
		return entity.Coordinates{}, err
	}
	coords := v.(entity.Coordinates)

	s.lru.Add(normalized, coords)
	s.warmHot(ctx, normalized, coords)
	s.persist(ctx, normalized, coords)

	return coords, nil
}

func (s *Service) warmHot(ctx context.Context, normalized string, coords entity.Coordinates) {
	if s.hot == nil {
		return
	}
	if err := s.hot.SetJSON(ctx, hotKey(normalized), coords, s.hotTTL); err != nil {
		s.log.WithField("address", normalized).Warnf("geocode: failed to warm hot cache: %v", err)
	}
}

// persist writes to the durable tier best-effort: write failures are
// swallowed but logged, never surfaced to the caller (spec.md §4.1).
func (s *Service) persist(ctx context.Context, normalized string, coords entity.Coordinates) {
	if s.persistent == nil {
		return
	}
	row := entity.NewGeocodeCache(normalized, coords.Latitude, coords.Longitude)
	if err := s.persistent.Upsert(ctx, row); err != nil {
		s.log.WithField("address", normalized).Warnf("geocode: failed to persist cache row: %v", err)
	}
}

func (s *Service) lookupExternal(ctx context.Context, normalized, original string) (entity.Coordinates, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return entity.Coordinates{}, fmt.Errorf("geocode rate limiter: %w", err)
	}

	reqURL := s.baseURL + "?q=" + url.QueryEscape(normalized) + "&format=json&limit=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, err.Error())
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, "external lookup failed: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, fmt.Sprintf("external lookup returned status %d", resp.StatusCode))
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, "malformed geocoder response")
	}
	if len(results) == 0 {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, "not found: "+original)
	}

	var lat, lon float64
	if _, err := fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, "malformed latitude")
	}
	if _, err := fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return entity.Coordinates{}, apperr.NewGeocodeError(original, "malformed longitude")
	}

	return entity.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func hotKey(normalized string) string {
	return "geocode:" + normalized
}
