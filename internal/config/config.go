package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port string

	StoreDriver   string
	DBPath        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	SeedPath      string

	RedisAddr string
	LockTTL   time.Duration

	ORSAPIKey  string
	ORSCountry string

	DefaultDuration       time.Duration
	MinGap                time.Duration
	MaxOptimizeActivities int
	OptimizeRatePerMinute int

	CORSOrigins []string
}

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s=%q: %w", key, v, err)
	}
	return n, nil
}

// GetDuration accepts Go duration strings ("30s", "2m").
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config %s=%q: %w", key, v, err)
	}
	return d, nil
}

// Load reads the full configuration. Numeric values that do not parse or
// are negative are errors.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		StoreDriver:   strings.ToLower(Get("STORE_DRIVER", DriverSqlite)),
		DBPath:        Get("DB_PATH", "data/itinerary.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		MongoURI:      Get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: Get("MONGO_DATABASE", "itinerary"),
		SeedPath:      Get("SEED_PATH", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		ORSAPIKey:     Get("ORS_API_KEY", ""),
		ORSCountry:    Get("ORS_COUNTRY", ""),
	}

	var errs []error
	var err error

	if cfg.LockTTL, err = GetDuration("LOCK_TTL", 30*time.Second); err != nil {
		errs = append(errs, err)
	}

	minutes, err := GetInt("DEFAULT_DURATION_MINUTES", 60)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.DefaultDuration = time.Duration(minutes) * time.Minute

	gap, err := GetInt("MIN_GAP_MINUTES", 15)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.MinGap = time.Duration(gap) * time.Minute

	if cfg.MaxOptimizeActivities, err = GetInt("MAX_OPTIMIZE_ACTIVITIES", 200); err != nil {
		errs = append(errs, err)
	}
	if cfg.OptimizeRatePerMinute, err = GetInt("OPTIMIZE_RATE_PER_MINUTE", 30); err != nil {
		errs = append(errs, err)
	}

	for _, o := range strings.Split(Get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverSqlite, DriverMongo, DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.LockTTL <= 0 {
		return fmt.Errorf("config: LOCK_TTL must be positive, got %s", c.LockTTL)
	}
	if c.DefaultDuration < 0 || c.MinGap < 0 {
		return errors.New("config: DEFAULT_DURATION_MINUTES and MIN_GAP_MINUTES must not be negative")
	}
	if c.MaxOptimizeActivities < 0 {
		return errors.New("config: MAX_OPTIMIZE_ACTIVITIES must not be negative")
	}
	if c.OptimizeRatePerMinute < 0 {
		return errors.New("config: OPTIMIZE_RATE_PER_MINUTE must not be negative")
	}

	return nil
}
