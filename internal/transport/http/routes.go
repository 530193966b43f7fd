package http

import (
	"github.com/gorilla/mux"

	"github.com/Luks9/geo-rota/internal/transport/http/handler"
	"github.com/Luks9/geo-rota/internal/transport/http/middleware"
)

// setupRoutes configures all HTTP routes for the geo-rota service.
func setupRoutes(
	router *mux.Router,
	routeHandler *handler.RouteHandler,
	healthHandler *handler.HealthHandler,
) {
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())

	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/ready", healthHandler.Ready).Methods("GET")
	router.HandleFunc("/metrics", healthHandler.Metrics).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	routeRoutes := api.PathPrefix("/routes").Subrouter()
	routeRoutes.HandleFunc("/single-vehicle", routeHandler.PlanSingleVehicle).Methods("POST")
	routeRoutes.HandleFunc("/vrp", routeHandler.PlanVRP).Methods("POST")
	routeRoutes.HandleFunc("/passengers/move", routeHandler.MovePassengers).Methods("POST")
	routeRoutes.HandleFunc("/{id}/driver", routeHandler.SetDriver).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/vehicle", routeHandler.SetVehicle).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/destination", routeHandler.SetDestination).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/date-shift", routeHandler.SetDateShift).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/status", routeHandler.SetStatus).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/passengers", routeHandler.ReplacePassengers).Methods("PUT")
	routeRoutes.HandleFunc("/{id}/recalculate", routeHandler.Recalculate).Methods("POST")

	api.HandleFunc("/fleet", routeHandler.ListAvailableFleet).Methods("GET")
}
