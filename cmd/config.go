package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"station/internal/adapters/out/journey"
	"station/internal/core/domain/model/kernel"
	"station/internal/core/domain/services"
	"station/internal/jobs"
	"station/internal/pkg/errs"

	"github.com/joho/godotenv"
)

// Defaults used when a variable is not set.
const (
	defaultHTTPPort       = "8080"
	defaultDBMaxOpenConns = 10
	defaultDepotLng       = 3.3792
	defaultDepotLat       = 6.5244
	defaultCustomerLng    = 3.4219
	defaultCustomerLat    = 6.4281
	defaultMQTTClientID   = "station"
)

type Config struct {
	HTTPPort string
	LogLevel slog.Level

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int

	TransitTickInterval     time.Duration
	TransitStepFraction     float64
	TransitArrivalEpsilon   float64
	JourneyEventProbability float64
	Depot                   kernel.Coordinate
	Customer                kernel.Coordinate

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MQTTBrokerURL string
	MQTTClientID  string
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	r := envReader{}
	config := Config{
		HTTPPort: r.str("HTTP_PORT", defaultHTTPPort),
		LogLevel: r.level("LOG_LEVEL", slog.LevelInfo),

		DBHost:         r.str("DB_HOST", "localhost"),
		DBPort:         r.str("DB_PORT", "5432"),
		DBUser:         r.str("DB_USER", ""),
		DBPassword:     r.str("DB_PASSWORD", ""),
		DBName:         r.str("DB_NAME", ""),
		DBSslMode:      r.str("DB_SSLMODE", "disable"),
		DBMaxOpenConns: r.integer("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns),

		TransitTickInterval:     r.duration("TRANSIT_TICK_INTERVAL", jobs.DefaultTickInterval),
		TransitStepFraction:     r.float("TRANSIT_STEP_FRACTION", services.DefaultStepFraction),
		TransitArrivalEpsilon:   r.float("TRANSIT_ARRIVAL_EPSILON", services.DefaultArrivalEpsilon),
		JourneyEventProbability: r.float("JOURNEY_EVENT_PROBABILITY", journey.DefaultProbability),
		Depot:                   r.coordinate("DEPOT", defaultDepotLng, defaultDepotLat),
		Customer:                r.coordinate("CUSTOMER", defaultCustomerLng, defaultCustomerLat),

		KafkaHost:              r.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: r.str("KAFKA_ORDER_CHANGED_TOPIC", ""),

		RedisAddr:     r.str("REDIS_ADDR", ""),
		RedisPassword: r.str("REDIS_PASSWORD", ""),
		RedisDB:       r.integer("REDIS_DB", 0),

		MQTTBrokerURL: r.str("MQTT_BROKER_URL", ""),
		MQTTClientID:  r.str("MQTT_CLIENT_ID", defaultMQTTClientID),
	}

	if err := errors.Join(errors.Join(r.errs...), config.Validate()); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the ranges of the parsed values.
func (c Config) Validate() error {
	var problems []error

	if c.DBUser == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_USER"))
	}
	if c.DBName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.DBMaxOpenConns < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns, 1, "unbounded"))
	}
	if c.TransitTickInterval < time.Second {
		problems = append(problems, errs.NewValueIsOutOfRangeError("TRANSIT_TICK_INTERVAL", c.TransitTickInterval, time.Second, "unbounded"))
	}
	if c.TransitStepFraction <= 0 || c.TransitStepFraction > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("TRANSIT_STEP_FRACTION", c.TransitStepFraction, 0, 1))
	}
	if c.TransitArrivalEpsilon <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("TRANSIT_ARRIVAL_EPSILON"))
	}
	if c.JourneyEventProbability < 0 || c.JourneyEventProbability > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("JOURNEY_EVENT_PROBABILITY", c.JourneyEventProbability, 0, 1))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	if c.RedisDB < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("REDIS_DB", c.RedisDB, 0, "unbounded"))
	}

	return errors.Join(problems...)
}

// DSN returns the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// envReader collects parse errors so that every malformed variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *envReader) float(key string, fallback float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return v
}

func (r *envReader) level(key string, fallback slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return level
}

// coordinate reads <prefix>_LNG and <prefix>_LAT.
func (r *envReader) coordinate(prefix string, lng, lat float64) kernel.Coordinate {
	c, err := kernel.NewCoordinate(r.float(prefix+"_LNG", lng), r.float(prefix+"_LAT", lat))
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(prefix, err))
	}
	return c
}
