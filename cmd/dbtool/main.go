package main

import (
	"context"
	"flag"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

// dbtool prepares a store: it creates the SQL schema and loads seed trips.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/trips.json"), "seed JSON file; empty skips seeding")
	flag.Parse()

	ctx := context.Background()

	var store repositories.TripInserter
	switch cfg.StoreDriver {
	case config.DriverSqlite, config.DriverPostgres:
		open := func() (*sqlx.DB, error) { return db.OpenSqlite(cfg.DBPath) }
		if cfg.StoreDriver == config.DriverPostgres {
			open = func() (*sqlx.DB, error) { return db.Open(cfg.DatabaseURL) }
		}

		conn, err := open()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		log.Println("Initializing database schema...")
		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		log.Println("Schema ready.")
		store = repositories.NewSQLActivityStore(conn)

	case config.DriverMongo:
		client, err := db.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Disconnect(context.Background())
		store = repositories.NewMongoActivityStore(client.Database(cfg.MongoDatabase).Collection("trips"))

	default:
		log.Fatalf("dbtool does not support STORE_DRIVER=%s", cfg.StoreDriver)
	}

	if *seedPath == "" {
		return
	}

	log.Println("Seeding database...")
	n, err := repositories.SeedFromJSON(ctx, store, *seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. trips=%d", n)
}
