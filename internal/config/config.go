// Package config centralises configuration parsing for the workout tracker.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/avrumiMuller/Mapty/internal/domain"
)

// Config captures runtime configuration values for the tracker binaries.
type Config struct {
	HTTPAddress     string
	MetricsAddress  string
	AllowedOrigins  []string
	LogLevel        string
	OpenBrowser     bool
	StoreDriver     string
	StorePath       string
	PostgresURL     string
	StorageKey      string
	HomePosition    string // "lat,lng"; empty leaves the position to the client.
	MapZoom         int
	TileURL         string
	TileAttribution string
	FormRevealDelay time.Duration
	PanDuration     time.Duration
	DescriptionDay  domain.DayStyle

	KafkaBrokers      []string // Empty disables event publication.
	KafkaBatchTimeout time.Duration
	SchemaRegistryURL string
	WorkoutTopic      string
	ConsumerGroupID   string
	MirrorKey         string
}

// LoadDotEnv populates the environment from .env files when they exist.
// Variables already set take precedence.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads environment variables into Config, applying defaults for local use.
func Load() Config {
	defaults := domain.DefaultSettings()
	cfg := Config{
		HTTPAddress:       getEnv("HTTP_ADDRESS", ":8080"),
		MetricsAddress:    getEnv("METRICS_ADDRESS", ":9195"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OpenBrowser:       getBoolEnv("OPEN_BROWSER", false),
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", "file")),
		StorePath:         getEnv("STORE_PATH", "./data"),
		PostgresURL:       getEnv("POSTGRES_URL", ""),
		StorageKey:        getEnv("STORAGE_KEY", defaults.StorageKey),
		HomePosition:      getEnv("HOME_POSITION", ""),
		MapZoom:           getIntEnv("MAP_ZOOM", defaults.Zoom),
		TileURL:           getEnv("TILE_URL", defaults.Tiles.URL),
		TileAttribution:   getEnv("TILE_ATTRIBUTION", defaults.Tiles.Attribution),
		FormRevealDelay:   getDurationEnv("FORM_REVEAL_DELAY", defaults.FormRevealDelay),
		PanDuration:       getDurationEnv("PAN_DURATION", defaults.PanDuration),
		DescriptionDay:    domain.ParseDayStyle(getEnv("DESCRIPTION_DAY", "weekday")),
		KafkaBatchTimeout: getDurationEnv("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		SchemaRegistryURL: getEnv("SCHEMA_REGISTRY_URL", ""),
		WorkoutTopic:      getEnv("WORKOUT_TOPIC", "workout_events"),
		ConsumerGroupID:   getEnv("CONSUMER_GROUP_ID", "workout-mirror"),
		MirrorKey:         getEnv("MIRROR_KEY", "workout-mirror"),
	}

	cfg.AllowedOrigins = splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	cfg.KafkaBrokers = splitAndTrim(getEnv("KAFKA_BROKERS", ""))
	return cfg
}

// Settings converts the configuration into tracker settings.
func (c Config) Settings() domain.Settings {
	return domain.Settings{
		StorageKey: c.StorageKey,
		Zoom:       c.MapZoom,
		Tiles: domain.TileLayer{
			URL:         c.TileURL,
			Attribution: c.TileAttribution,
		},
		FormRevealDelay: c.FormRevealDelay,
		PanDuration:     c.PanDuration,
		DayStyle:        c.DescriptionDay,
	}
}

// Home parses HomePosition. ok is false when no home position is configured.
func (c Config) Home() (pos domain.Coordinate, ok bool, err error) {
	if strings.TrimSpace(c.HomePosition) == "" {
		return domain.Coordinate{}, false, nil
	}
	pos, err = domain.ParseCoordinate(c.HomePosition)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	return pos, true, nil
}

// EventsEnabled reports whether Kafka brokers are configured.
func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
