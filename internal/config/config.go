package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store driver names accepted by STORE_DRIVER.
const (
	DriverJSONFile = "jsonfile"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// LeadFinderConfig carries the qualification policy knobs. The review-count
// window and the draft cap are product policy, tunable without code changes.
type LeadFinderConfig struct {
	MaxLeads   int
	MinReviews int
	MaxReviews int
	MinRating  float64
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port        string
	StoreDriver string

	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	DataFile      string

	SessionSecret string
	SessionTTL    time.Duration

	UploadsDir   string
	PlacesAPIKey string
	PhoneRegion  string

	RateLimitFindLeads RateLimitConfig
	LeadFinder         LeadFinderConfig

	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverJSONFile)),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "crm"),
		DataFile:      getEnv("DATA_FILE", "data/db.json"),

		SessionSecret: getEnv("SESSION_SECRET", "dev-secret"),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "168h")),

		UploadsDir:   getEnv("UPLOADS_DIR", "public/uploads"),
		PlacesAPIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		PhoneRegion:  strings.ToUpper(getEnv("PHONE_REGION", "US")),

		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Admin"),
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	switch cfg.StoreDriver {
	case DriverJSONFile, DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER value: %q", cfg.StoreDriver)
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_FIND_LEADS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_FIND_LEADS value: %w", err)
	}
	cfg.RateLimitFindLeads = rl

	lf, err := loadLeadFinder()
	if err != nil {
		return nil, err
	}
	cfg.LeadFinder = lf

	return cfg, nil
}

func loadLeadFinder() (LeadFinderConfig, error) {
	lf := LeadFinderConfig{}
	var err error

	if lf.MaxLeads, err = getEnvInt("LEAD_FINDER_MAX_LEADS", 20); err != nil {
		return lf, err
	}
	if lf.MinReviews, err = getEnvInt("LEAD_FINDER_MIN_REVIEWS", 50); err != nil {
		return lf, err
	}
	if lf.MaxReviews, err = getEnvInt("LEAD_FINDER_MAX_REVIEWS", 500); err != nil {
		return lf, err
	}
	if lf.MinRating, err = getEnvFloat("LEAD_FINDER_MIN_RATING", 3.5); err != nil {
		return lf, err
	}

	if lf.MaxLeads <= 0 {
		return lf, fmt.Errorf("LEAD_FINDER_MAX_LEADS must be positive")
	}
	if lf.MinReviews < 0 || lf.MaxReviews < lf.MinReviews {
		return lf, fmt.Errorf("lead finder review window [%d, %d] is invalid", lf.MinReviews, lf.MaxReviews)
	}
	return lf, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %q", key, val)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %q", key, val)
	}
	return parsed, nil
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}
