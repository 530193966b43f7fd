package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Luks9/geo-rota/internal/application"
	"github.com/Luks9/geo-rota/internal/geocode"
	"github.com/Luks9/geo-rota/internal/infrastructure/cache"
	"github.com/Luks9/geo-rota/internal/infrastructure/config"
	"github.com/Luks9/geo-rota/internal/infrastructure/database"
	"github.com/Luks9/geo-rota/internal/infrastructure/events"
	"github.com/Luks9/geo-rota/internal/infrastructure/scheduler"
	httptransport "github.com/Luks9/geo-rota/internal/transport/http"
	"github.com/Luks9/geo-rota/internal/matrix"
	"github.com/Luks9/geo-rota/internal/planner"
	"github.com/Luks9/geo-rota/pkg/logger"
)

func main() {
	cfg := config.Load()
	log_ := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		log_.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log_.Fatalf("running migrations: %v", err)
	}

	redisOpts, err := goredis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log_.Fatalf("parsing redis url: %v", err)
	}
	redisClient := goredis.NewClient(redisOpts)
	defer redisClient.Close()
	hotCache := cache.NewCache(redisClient, cfg.Redis.Prefix)

	publisher := events.NewEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, "geo-rota")
	defer publisher.Close()

	companies := database.NewCompanyRepository(db)
	groups := database.NewRouteGroupRepository(db)
	employees := database.NewEmployeeRepository(db)
	destinations := database.NewDestinationRepository(db)
	vehicles := database.NewVehicleRepository(db)
	availabilities := database.NewVehicleAvailabilityRepository(db)
	routes := database.NewRouteRepository(db)
	geocodeCache := database.NewGeocodeCacheRepository(db)
	vrpCache := database.NewVRPResultCacheRepository(db)

	geocoder, err := geocode.NewService(
		cfg.Geocoding.BaseURL,
		cfg.Geocoding.UserAgent,
		cfg.Geocoding.Timeout,
		cfg.Geocoding.MinInterval,
		hotCache,
		geocodeCache,
		log_,
	)
	if err != nil {
		log_.Fatalf("building geocoder: %v", err)
	}

	matrixProvider := matrix.NewOSRMProvider(cfg.Routing.OSRMBaseURL, cfg.Routing.OSRMProfile, cfg.Routing.OSRMTimeout, log_)

	facade := &application.PlannerFacade{
		SingleVehicle: &planner.SingleVehiclePlanner{
			Companies:      companies,
			Groups:         groups,
			Employees:      employees,
			Destinations:   destinations,
			Availabilities: availabilities,
			Routes:         routes,
			Geocoder:       geocoder,
			Log:            log_,
		},
		VRP: &planner.VRPPlanner{
			Companies:      companies,
			Groups:         groups,
			Employees:      employees,
			Destinations:   destinations,
			Availabilities: availabilities,
			Routes:         routes,
			Cache:          vrpCache,
			Geocoder:       geocoder,
			Matrix:         matrixProvider,
			CacheTTL:       cfg.Planner.CacheTTL,
			Log:            log_,
		},
		Edit: &planner.EditPlanner{
			Employees:      employees,
			Vehicles:       vehicles,
			Availabilities: availabilities,
			Destinations:   destinations,
			Routes:         routes,
			Geocoder:       geocoder,
		},
		Events: publisher,
		Log:    log_,
	}

	sweeper := scheduler.New(vrpCache, redisClient, cfg.Planner.CacheTTL, log_)
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	if err := sweeper.Start(schedulerCtx); err != nil {
		log_.Fatalf("starting scheduler: %v", err)
	}
	defer sweeper.Stop()

	server := httptransport.NewServer(cfg.Server.Port, facade, db, redisClient, publisher)

	go func() {
		if err := server.Start(); err != nil {
			log_.WithField("error", err).Error("http server stopped")
		}
	}()
	log_.WithField("port", cfg.Server.Port).Info("geo-rota started")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log_.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log_.WithField("error", err).Error("error during http server shutdown")
	}
}
