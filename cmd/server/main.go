package main

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/geocoding"
	"itinerary-planner-service/internal/adapters/lock"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// tripStore is what the server needs from a store: planning access plus
// inserts for seeding.
type tripStore interface {
	ports.ActivityStore
	repositories.TripInserter
}

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	store, geocodeCache, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	if cfg.SeedPath != "" {
		n, err := repositories.SeedFromJSON(ctx, store, cfg.SeedPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("seeded trips=%d path=%s", n, cfg.SeedPath)
	}

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLocker()

	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		ors, err := geocoding.NewORSGeocoder(cfg.ORSAPIKey, cfg.ORSCountry, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = ors
	} else {
		log.Println("ORS_API_KEY not set; address geocoding disabled")
	}

	planner := services.NewDayPlanner(store, locker, geocoder, services.PlannerSettings{
		DefaultDuration:       cfg.DefaultDuration,
		MinGap:                cfg.MinGap,
		MaxOptimizeActivities: cfg.MaxOptimizeActivities,
	})

	router := api.NewRouter(planner, api.Options{
		OptimizeRatePerMinute: cfg.OptimizeRatePerMinute,
		CORSOrigins:           cfg.CORSOrigins,
	})

	// Optimize may geocode addresses, so writes get a generous timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s store=%s", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// openStore connects the configured store. SQL stores also get the schema
// and a geocode cache; the others run without one.
func openStore(ctx context.Context, cfg config.Config) (tripStore, geocoding.Cache, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return repositories.NewMemoryActivityStore(), nil, func() {}, nil

	case config.DriverMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection("trips")
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("mongo disconnect: %v", err)
			}
		}
		return repositories.NewMongoActivityStore(coll), nil, closeFn, nil

	case config.DriverPostgres, config.DriverSqlite:
		open := func() (*sqlx.DB, error) { return db.OpenSqlite(cfg.DBPath) }
		if cfg.StoreDriver == config.DriverPostgres {
			open = func() (*sqlx.DB, error) { return db.Open(cfg.DatabaseURL) }
		}

		conn, err := open()
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		return repositories.NewSQLActivityStore(conn), geocoding.NewSQLGeocodeCache(conn), func() { conn.Close() }, nil
	}

	return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// newLocker returns a Redis-backed locker when REDIS_ADDR is set, so several
// server replicas serialize on the same days; otherwise an in-process one.
func newLocker(ctx context.Context, cfg config.Config) (ports.DayLocker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewMemoryDayLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}

	return lock.NewRedisDayLocker(client, cfg.LockTTL), func() { client.Close() }, nil
}
