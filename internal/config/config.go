package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/marine-bulletin-service/internal/domain"
)

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// AppEnv gates refresh authorization: anything but "production" is open.
	AppEnv             string
	RefreshSecret      string
	SchedulerUserAgent string

	// Upstream bulletin site.
	BulletinBaseURL   string
	BulletinLangParam string
	BulletinLangs     []domain.Lang
	BulletinUserAgent string
	BulletinTimeout   time.Duration
	BulletinRetryMax  int

	// Open-Meteo model API and reference points.
	OpenMeteoBaseURL string
	OpenMeteoTimeout time.Duration
	InlandStation    domain.Station
	CoastalStation   domain.Station

	// Object store.
	StoreDriver   string
	StorePath     string
	PublicBaseURL string

	// Refresh event sink; disabled when KafkaBrokers is empty.
	KafkaBrokers      []string
	KafkaRefreshTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	bulletinTimeout, err := parseDuration("BULLETIN_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	openMeteoTimeout, err := parseDuration("OPEN_METEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	retryMax, err := strconv.Atoi(sharedcfg.EnvOrDefault("BULLETIN_RETRY_MAX", "0"))
	if err != nil || retryMax < 0 || retryMax > 5 {
		return nil, errors.New("invalid BULLETIN_RETRY_MAX: must be an integer between 0 and 5")
	}

	inland, err := parseStation("INLAND", "Zagreb", "45.815", "15.982", false)
	if err != nil {
		return nil, err
	}
	coastal, err := parseStation("COASTAL", "Rijeka", "45.327", "14.442", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AppEnv:             sharedcfg.EnvOrDefault("APP_ENV", "production"),
		RefreshSecret:      os.Getenv("REFRESH_SECRET"),
		SchedulerUserAgent: sharedcfg.EnvOrDefault("SCHEDULER_USER_AGENT", "vercel-cron"),

		BulletinBaseURL:   sharedcfg.EnvOrDefault("BULLETIN_BASE_URL", "https://meteo.hr/prognoze_e.php?section=prognoze_specp&param=jadran"),
		BulletinLangParam: sharedcfg.EnvOrDefault("BULLETIN_LANG_PARAM", "lang"),
		BulletinLangs:     domain.ParseLangs(sharedcfg.EnvOrDefault("BULLETIN_LANGS", "de,en,it,hr")),
		BulletinUserAgent: sharedcfg.EnvOrDefault("BULLETIN_USER_AGENT", "marine-bulletin-service/1.0 (+https://github.com/couchcryptid/marine-bulletin-service)"),
		BulletinTimeout:   bulletinTimeout,
		BulletinRetryMax:  retryMax,

		OpenMeteoBaseURL: sharedcfg.EnvOrDefault("OPEN_METEO_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenMeteoTimeout: openMeteoTimeout,
		InlandStation:    inland,
		CoastalStation:   coastal,

		StoreDriver:   strings.ToLower(sharedcfg.EnvOrDefault("STORE_DRIVER", StoreSQLite)),
		StorePath:     sharedcfg.EnvOrDefault("STORE_PATH", "data/bulletins.db"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),

		KafkaBrokers:      parseList(os.Getenv("KAFKA_BROKERS")),
		KafkaRefreshTopic: sharedcfg.EnvOrDefault("KAFKA_REFRESH_TOPIC", "bulletin-refreshed"),
	}

	if len(cfg.BulletinLangs) == 0 {
		return nil, errors.New("BULLETIN_LANGS must name at least one of de, en, it, hr")
	}
	if cfg.StoreDriver != StoreSQLite && cfg.StoreDriver != StoreMemory {
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: must be sqlite or memory", cfg.StoreDriver)
	}
	if cfg.StoreDriver == StoreSQLite && cfg.StorePath == "" {
		return nil, errors.New("STORE_PATH is required for the sqlite store")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaRefreshTopic == "" {
		return nil, errors.New("KAFKA_REFRESH_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// IsProduction reports whether refresh requests must be authorized.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// KafkaEnabled reports whether refresh events are published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseStation(prefix, name, lat, lon string, withWind bool) (domain.Station, error) {
	latitude, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(prefix+"_LAT", lat), 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return domain.Station{}, fmt.Errorf("invalid %s_LAT", prefix)
	}
	longitude, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(prefix+"_LON", lon), 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return domain.Station{}, fmt.Errorf("invalid %s_LON", prefix)
	}
	return domain.Station{
		Name:      sharedcfg.EnvOrDefault(prefix+"_NAME", name),
		Latitude:  latitude,
		Longitude: longitude,
		WithWind:  withWind,
	}, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
