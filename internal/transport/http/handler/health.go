package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Luks9/geo-rota/internal/infrastructure/events"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	startTime time.Time
	db        *sqlx.DB
	redis     *redis.Client
	events    *events.EventPublisher
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client, publisher *events.EventPublisher) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		db:        db,
		redis:     redisClient,
		events:    publisher,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// ReadinessResponse represents the readiness check response.
type ReadinessResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// MetricsResponse represents basic metrics response.
type MetricsResponse struct {
	Service        string    `json:"service"`
	Timestamp      time.Time `json:"timestamp"`
	Uptime         string    `json:"uptime"`
	GoroutineCount int       `json:"goroutine_count"`
}

// Health returns the liveness status of the service.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Service:   "geo-rota",
		Version:   "1.0.0",
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// Ready checks that the database, cache, and broker are reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]string{}

	if err := h.db.PingContext(ctx); err != nil {
		components["database"] = "unavailable: " + err.Error()
	} else {
		components["database"] = "ok"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		components["redis"] = "unavailable: " + err.Error()
	} else {
		components["redis"] = "ok"
	}

	if h.events != nil {
		if err := h.events.Health(ctx); err != nil {
			components["kafka"] = "unavailable: " + err.Error()
		} else {
			components["kafka"] = "ok"
		}
	}

	status := "ready"
	for _, componentStatus := range components {
		if componentStatus != "ok" {
			status = "not_ready"
			break
		}
	}

	response := ReadinessResponse{
		Status:     status,
		Service:    "geo-rota",
		Timestamp:  time.Now(),
		Components: components,
	}

	statusCode := http.StatusOK
	if status != "ready" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// Metrics returns basic service metrics.
func (h *HealthHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	response := MetricsResponse{
		Service:        "geo-rota",
		Timestamp:      time.Now(),
		Uptime:         time.Since(h.startTime).String(),
		GoroutineCount: runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
