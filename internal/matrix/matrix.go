// Package matrix implements C3: building N×N distance/duration matrices via
// an OSRM-compatible road-routing service, with a geodesic fallback.
//
// Grounded on original_source/geo_rota/utils/osrm.py (montar_matrizes_osrm,
// the null->1e9 sentinel, OSRMServiceError) for the primary path; the
// fallback reuses internal/geo (C1).
package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Luks9/geo-rota/internal/domain/entity"
	"github.com/Luks9/geo-rota/internal/geo"
	"github.com/Luks9/geo-rota/pkg/logger"
)

// SentinelDistance stands in for an unreachable pair, per spec.md §4.2
// ("map null entries to a sentinel 'very large' value (≥ 10⁹)").
const SentinelDistance = int64(1_000_000_000)

// Result holds the distance (meters) and duration (seconds) matrices for an
// ordered coordinate sequence. Diagonal entries are always zero.
type Result struct {
	Distances [][]int64
	Durations [][]int64
}

// Provider builds matrices for an ordered coordinate list.
type Provider interface {
	Build(ctx context.Context, points []entity.Coordinates) (Result, error)
}

// OSRMProvider calls an OSRM-compatible /table/v1 endpoint and falls back to
// geodesic synthesis on any service error or malformed response.
type OSRMProvider struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	log        logger.Logger
}

func NewOSRMProvider(baseURL, profile string, timeout time.Duration, log logger.Logger) *OSRMProvider {
	return &OSRMProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		profile:    profile,
		log:        log,
	}
}

func (p *OSRMProvider) Build(ctx context.Context, points []entity.Coordinates) (Result, error) {
	result, err := p.buildFromService(ctx, points)
	if err == nil {
		return result, nil
	}

	p.log.Warnf("matrix: routing service failed, falling back to geodesic: %v", err)
	return buildGeodesic(points), nil
}

func (p *OSRMProvider) buildFromService(ctx context.Context, points []entity.Coordinates) (Result, error) {
	coordStrs := make([]string, len(points))
	for i, c := range points {
		coordStrs[i] = strconv.FormatFloat(c.Longitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', 6, 64)
	}

	reqURL := fmt.Sprintf("%s/table/v1/%s/%s?annotations=distance,duration",
		strings.TrimRight(p.baseURL, "/"), p.profile, strings.Join(coordStrs, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("osrm returned status %d", resp.StatusCode)
	}

	var body struct {
		Code      string        `json:"code"`
		Distances [][]*float64  `json:"distances"`
		Durations [][]*float64  `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("malformed osrm response: %w", err)
	}
	if body.Code != "Ok" {
		return Result{}, fmt.Errorf("osrm returned code %q", body.Code)
	}
	if len(body.Distances) != len(points) || len(body.Durations) != len(points) {
		return Result{}, fmt.Errorf("osrm matrix dimensions do not match request")
	}

	n := len(points)
	distances := make([][]int64, n)
	durations := make([][]int64, n)
	for i := 0; i < n; i++ {
		distances[i] = make([]int64, n)
		durations[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			distances[i][j] = sentinelOr(body.Distances[i][j])
			durations[i][j] = sentinelOr(body.Durations[i][j])
		}
	}

	return Result{Distances: distances, Durations: durations}, nil
}

func sentinelOr(v *float64) int64 {
	if v == nil {
		return SentinelDistance
	}
	return int64(*v)
}

// buildGeodesic is the secondary path: distances from C1, durations assuming
// AssumedSpeedKMH.
func buildGeodesic(points []entity.Coordinates) Result {
	n := len(points)
	distances := make([][]int64, n)
	durations := make([][]int64, n)
	for i := 0; i < n; i++ {
		distances[i] = make([]int64, n)
		durations[i] = make([]int64, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := geo.DistanceMeters(points[i].Latitude, points[i].Longitude, points[j].Latitude, points[j].Longitude)
			distances[i][j] = d
			durations[i][j] = geo.DurationSeconds(d)
		}
	}
	return Result{Distances: distances, Durations: durations}
}
