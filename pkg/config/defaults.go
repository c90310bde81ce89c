package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "classbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute
	DefaultIdempotencyTTL    = 24 * time.Hour

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLockTTL           = 5 * time.Minute
	DefaultLockSweepInterval = 60 * time.Second
	DefaultRetentionEnabled  = true

	DefaultKafkaEnabled             = false
	DefaultReservationEventsTopic   = "reservation-events"
	DefaultReservationRequestsTopic = "reservation-requests"
	DefaultReservationConsumerGroup = "classbook-reservations"
	DefaultReservationDLQTopic      = "dlq-reservation-requests"
)
