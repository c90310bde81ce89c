package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"classbook/pkg/client"
	"classbook/pkg/logger"
)

var (
	mongoSchemeRe      = regexp.MustCompile(`^mongodb(\+srv)?://.+`)
	mongoCredentialsRe = regexp.MustCompile(`(mongodb(\+srv)?://)[^:@/]+:[^@/]+@`)
)

// Config is the environment-derived settings shared by every classbook
// binary, together with the process logger and external clients.
type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	RateLimitRequests int
	RateLimitWindow   time.Duration
	IdempotencyTTL    time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LockTTL           time.Duration
	LockSweepInterval time.Duration
	RetentionEnabled  bool

	KafkaEnabled             bool
	ReservationEventsTopic   string
	ReservationRequestsTopic string
	ReservationConsumerGroup string
	ReservationDLQTopic      string

	ServiceName string
	Log         *logger.Logger
	Client      *client.Client
}

// Load reads the environment, validates it and logs the result. An invalid
// configuration terminates the process.
func Load(serviceName string) *Config {
	cfg := New(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()
	return cfg
}

// New reads the environment without validating it. Unparseable values fall
// back to their defaults.
func New(serviceName string) *Config {
	return &Config{
		MongoURI:          envOr(EnvMongoURI, DefaultMongoURI, parseString),
		MongoDatabaseName: envOr(EnvMongoDatabaseName, DefaultMongoDatabaseName, parseString),
		MongoConnTimeout:  envOr(EnvMongoConnTimeout, DefaultMongoConnTimeout, time.ParseDuration),

		Port: envOr(EnvPort, DefaultPort, parseString),

		RequestTimeout: envOr(EnvRequestTimeout, DefaultRequestTimeout, time.ParseDuration),
		MaxRequestSize: envOr(EnvMaxRequestSize, DefaultMaxRequestSize, strconv.Atoi),

		RateLimitRequests: envOr(EnvRateLimitRequests, DefaultRateLimitRequests, strconv.Atoi),
		RateLimitWindow:   envOr(EnvRateLimitWindow, DefaultRateLimitWindow, time.ParseDuration),
		IdempotencyTTL:    envOr(EnvIdempotencyTTL, DefaultIdempotencyTTL, time.ParseDuration),

		ReadTimeout:     envOr(EnvReadTimeout, DefaultReadTimeout, time.ParseDuration),
		WriteTimeout:    envOr(EnvWriteTimeout, DefaultWriteTimeout, time.ParseDuration),
		IdleTimeout:     envOr(EnvIdleTimeout, DefaultIdleTimeout, time.ParseDuration),
		ShutdownTimeout: envOr(EnvShutdownTimeout, DefaultShutdownTimeout, time.ParseDuration),

		LockTTL:           envOr(EnvLockTTL, DefaultLockTTL, time.ParseDuration),
		LockSweepInterval: envOr(EnvLockSweepInterval, DefaultLockSweepInterval, time.ParseDuration),
		RetentionEnabled:  envOr(EnvRetentionEnabled, DefaultRetentionEnabled, strconv.ParseBool),

		KafkaEnabled:             envOr(EnvKafkaEnabled, DefaultKafkaEnabled, strconv.ParseBool),
		ReservationEventsTopic:   envOr(EnvReservationEventsTopic, DefaultReservationEventsTopic, parseString),
		ReservationRequestsTopic: envOr(EnvReservationRequestsTopic, DefaultReservationRequestsTopic, parseString),
		ReservationConsumerGroup: envOr(EnvReservationConsumerGroup, DefaultReservationConsumerGroup, parseString),
		ReservationDLQTopic:      envOr(EnvReservationDLQTopic, DefaultReservationDLQTopic, parseString),

		ServiceName: serviceName,
		Log: logger.New(logger.Config{
			Level:     envOr(EnvLogLevel, DefaultLogLevel, parseString),
			Format:    envOr(EnvLogFormat, DefaultLogFormat, parseString),
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, client.MongoOptions{
		URI:            cfg.MongoURI,
		AppName:        cfg.ServiceName,
		ConnectTimeout: cfg.MongoConnTimeout,
	})
}

func (cfg *Config) GracefulShutdown() {
	if err := cfg.Client.Close(); err != nil {
		cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
	}
}

// Validate reports every problem at once, joined with errors.Join.
func (cfg *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		fail("Port must be between 1 and 65535, got: %q", cfg.Port)
	}
	if !mongoSchemeRe.MatchString(cfg.MongoURI) {
		fail("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %q", redactMongoURI(cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		fail("MongoDatabaseName cannot be empty")
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RequestTimeout", cfg.RequestTimeout},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"LockTTL", cfg.LockTTL},
		{"LockSweepInterval", cfg.LockSweepInterval},
	} {
		if d.value <= 0 {
			fail("%s must be positive, got: %s", d.name, d.value)
		}
	}

	if cfg.MaxRequestSize <= 0 {
		fail("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize)
	}
	// Zero disables rate limiting.
	if cfg.RateLimitRequests < 0 {
		fail("RateLimitRequests cannot be negative, got: %d", cfg.RateLimitRequests)
	}

	if cfg.KafkaEnabled {
		for name, topic := range map[string]string{
			"ReservationEventsTopic":   cfg.ReservationEventsTopic,
			"ReservationRequestsTopic": cfg.ReservationRequestsTopic,
			"ReservationConsumerGroup": cfg.ReservationConsumerGroup,
		} {
			if strings.TrimSpace(topic) == "" {
				fail("%s cannot be empty when Kafka is enabled", name)
			}
		}
	}

	return errors.Join(errs...)
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"rate_limit", fmt.Sprintf("%d/%s", cfg.RateLimitRequests, cfg.RateLimitWindow),
		"idempotency_ttl", cfg.IdempotencyTTL,
		"lock_ttl", cfg.LockTTL,
		"lock_sweep_interval", cfg.LockSweepInterval,
		"retention_enabled", cfg.RetentionEnabled,
		"kafka_enabled", cfg.KafkaEnabled,
	)
	if cfg.KafkaEnabled {
		cfg.Log.Info("Reservation topics",
			"events", cfg.ReservationEventsTopic,
			"requests", cfg.ReservationRequestsTopic,
			"consumer_group", cfg.ReservationConsumerGroup,
			"dlq", cfg.ReservationDLQTopic,
		)
	}
}

func redactMongoURI(uri string) string {
	return mongoCredentialsRe.ReplaceAllString(uri, "${1}***:***@")
}

func parseString(s string) (string, error) { return s, nil }

// envOr returns parse(os.Getenv(key)), or fallback when the variable is
// unset, blank or unparseable.
func envOr[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}
