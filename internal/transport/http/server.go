package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Luks9/geo-rota/internal/application"
	"github.com/Luks9/geo-rota/internal/infrastructure/events"
	"github.com/Luks9/geo-rota/internal/transport/http/handler"
)

// Server represents the HTTP server.
type Server struct {
	server       *http.Server
	routeHandler *handler.RouteHandler
	healthHandler *handler.HealthHandler
}

// NewServer creates a new HTTP server wired to the planner facade.
func NewServer(
	port string,
	facade *application.PlannerFacade,
	db *sqlx.DB,
	redisClient *redis.Client,
	publisher *events.EventPublisher,
) *Server {
	routeHandler := handler.NewRouteHandler(facade)
	healthHandler := handler.NewHealthHandler(db, redisClient, publisher)

	router := mux.NewRouter()
	setupRoutes(router, routeHandler, healthHandler)

	server := &Server{
		routeHandler:  routeHandler,
		healthHandler: healthHandler,
	}

	server.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	fmt.Printf("Starting HTTP server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping HTTP server...")
	return s.server.Shutdown(ctx)
}
