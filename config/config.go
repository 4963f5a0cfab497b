package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Location source kinds accepted by LOCATION_SOURCE.
const (
	LocationSourceStatic = "static"
	LocationSourceIP     = "ip"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	ContextTimeout time.Duration
	// QueryDelay simulates network latency in the event query pipeline.
	QueryDelay         time.Duration
	CatalogFile        string
	DefaultFilters     []string
	CORSAllowedOrigins []string

	LocationSource      string
	LocationPermission  string
	LocationTimeout     time.Duration
	StaticLatitude      float64
	StaticLongitude     float64
	IPLookupURL         string
	ValidateCoordinates bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getString("PORT", "8080"),
		CatalogFile:        os.Getenv("CATALOG_FILE"),
		DefaultFilters:     getList("DEFAULT_FILTERS"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS"),
		LocationSource:     strings.ToLower(getString("LOCATION_SOURCE", LocationSourceStatic)),
		LocationPermission: getString("LOCATION_PERMISSION", "granted"),
		IPLookupURL:        os.Getenv("IPGEO_URL"),
	}

	var err error
	if cfg.ContextTimeout, err = getDuration("CONTEXT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.QueryDelay, err = getDuration("QUERY_DELAY", 0); err != nil {
		return nil, err
	}
	if cfg.LocationTimeout, err = getDuration("LOCATION_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.StaticLatitude, err = getFloat("STATIC_LATITUDE", 37.7749); err != nil {
		return nil, err
	}
	if cfg.StaticLongitude, err = getFloat("STATIC_LONGITUDE", -122.4194); err != nil {
		return nil, err
	}
	if cfg.ValidateCoordinates, err = getBool("VALIDATE_COORDINATES", true); err != nil {
		return nil, err
	}

	switch cfg.LocationSource {
	case LocationSourceStatic, LocationSourceIP:
	default:
		return nil, fmt.Errorf("LOCATION_SOURCE must be %q or %q, got %q", LocationSourceStatic, LocationSourceIP, cfg.LocationSource)
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getList splits a comma-separated variable, dropping empty items.
func getList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
