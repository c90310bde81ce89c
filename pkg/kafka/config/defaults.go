package kafka_config

import "time"

const (
	AcksAll    = "all"
	AcksLeader = "leader"
	AcksNone   = "none"

	StartNewest = "newest"
	StartOldest = "oldest"
)

const (
	DefaultKafkaBrokers = "localhost:9092"
	DefaultClientID     = "classbook"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerAcks         = AcksAll
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	// Requests published while the consumer group was down are still
	// wanted, so a new group starts from the oldest offset.
	DefaultConsumerStartFrom         = StartOldest
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1 * 1024 * 1024 // 1MB
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 30 * time.Second
	DefaultConsumerMaxRetries        = 3
	DefaultConsumerRetryBackoff      = 200 * time.Millisecond

	DefaultEnableMiddleware = true
)
