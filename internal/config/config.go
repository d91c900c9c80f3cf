package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	// AirportsFile is an airports.dat file loaded into the registry at startup.
	AirportsFile string
	// AirportsReloadInterval re-reads AirportsFile periodically (0 = never).
	AirportsReloadInterval time.Duration

	// FetchAirports are refreshed from upstream providers every FetchInterval.
	FetchAirports []string
	FetchInterval time.Duration
	HTTPTimeout   time.Duration

	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// HealthLogInterval controls the periodic health log line (0 = off).
	HealthLogInterval time.Duration
	// LegacyRadiusHistogram sizes radius_freq by the largest radius seen.
	LegacyRadiusHistogram bool

	// MQTT ingestion is disabled when MQTTBroker is empty.
	MQTTBroker   string
	MQTTPort     int
	MQTTTopic    string
	MQTTClientID string
}

// Load reads configuration from environment with sensible defaults.
// Callers load any .env file before calling Load.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.AirportsFile = strings.TrimSpace(os.Getenv("AIRPORTS_FILE"))
	if cfg.AirportsReloadInterval, err = getenvDuration("AIRPORTS_RELOAD_INTERVAL", "0s"); err != nil {
		return nil, err
	}

	cfg.FetchAirports = splitList(os.Getenv("FETCH_AIRPORTS"))
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")

	if cfg.HealthLogInterval, err = getenvDuration("HEALTH_LOG_INTERVAL", "0s"); err != nil {
		return nil, err
	}
	if cfg.LegacyRadiusHistogram, err = getenvBool("LEGACY_RADIUS_HISTOGRAM", false); err != nil {
		return nil, err
	}

	cfg.MQTTBroker = strings.TrimSpace(os.Getenv("MQTT_BROKER"))
	if cfg.MQTTPort, err = getenvInt("MQTT_PORT", 1883); err != nil {
		return nil, err
	}
	if cfg.MQTTPort <= 0 || cfg.MQTTPort > 65535 {
		return nil, fmt.Errorf("invalid MQTT_PORT %d", cfg.MQTTPort)
	}
	cfg.MQTTTopic = getenvDefault("MQTT_TOPIC", "weather/readings")
	cfg.MQTTClientID = getenvDefault("MQTT_CLIENT_ID", "airport-weather-"+uuid.NewString())

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

// splitList parses a comma separated list of IATA codes.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	s := getenvDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
