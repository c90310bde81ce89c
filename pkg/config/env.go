package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvIdempotencyTTL    = "IDEMPOTENCY_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvLockTTL           = "LOCK_TTL"
	EnvLockSweepInterval = "LOCK_SWEEP_INTERVAL"
	EnvRetentionEnabled  = "RETENTION_ENABLED"

	EnvKafkaEnabled             = "KAFKA_ENABLED"
	EnvReservationEventsTopic   = "RESERVATION_EVENTS_TOPIC"
	EnvReservationRequestsTopic = "RESERVATION_REQUESTS_TOPIC"
	EnvReservationConsumerGroup = "RESERVATION_CONSUMER_GROUP"
	EnvReservationDLQTopic      = "RESERVATION_DLQ_TOPIC"
)
