// Package reservations assembles the reservation scheduler and its
// collaborators for the service binaries.
package reservations

import (
	"classbook/internal/reservations/events"
	"classbook/internal/reservations/handler"
	"classbook/internal/reservations/repository"
	"classbook/internal/reservations/retention"
	"classbook/internal/reservations/scheduler"
	"classbook/internal/reservations/service"
	"classbook/internal/reservations/validator"
	"classbook/pkg/clock"
	"classbook/pkg/config"
	"classbook/pkg/contracts"
	"classbook/pkg/kafka"
	kafka_config "classbook/pkg/kafka/config"
	kafkamiddleware "classbook/pkg/kafka/middleware"
)

type Components struct {
	Clock        clock.Clock
	Reservations repository.ReservationRepository
	Classrooms   repository.ClassroomRepository
	Scheduler    *scheduler.Scheduler
	Publisher    events.Publisher
	Service      service.ReservationService

	Health   *handler.HealthHandler
	Handler  *handler.ReservationHandler
	Consumer *handler.RequestConsumer

	// Workers run for the life of the process.
	Workers []contracts.Worker
}

// Build wires repositories, scheduler, service and handlers. cfg.SetMongo must
// have been called. publisher may be nil.
func Build(cfg *config.Config, publisher events.Publisher) *Components {
	clk := clock.NewSystem()

	reservationRepo := repository.NewMongoReservationRepository(cfg)
	classroomRepo := repository.NewMongoClassroomRepository(cfg)
	store := repository.NewMongoStore(reservationRepo, classroomRepo)

	sched := scheduler.New(store,
		scheduler.WithClock(clk),
		scheduler.WithLockTTL(cfg.LockTTL),
		scheduler.WithLogger(cfg.Log),
	)

	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	svc := service.NewReservationService(
		sched,
		reservationRepo,
		classroomRepo,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		clk,
		cfg.Log,
	)

	c := &Components{
		Clock:        clk,
		Reservations: reservationRepo,
		Classrooms:   classroomRepo,
		Scheduler:    sched,
		Publisher:    publisher,
		Service:      svc,
		Health:       handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		Handler:      handler.NewReservationHandler(svc, cfg.Log),
		Consumer:     handler.NewRequestConsumer(svc, cfg.Log),
	}

	c.Workers = append(c.Workers, scheduler.NewSweeper(sched.Locks(), cfg.LockSweepInterval, cfg.Log))
	if cfg.RetentionEnabled {
		c.Workers = append(c.Workers, retention.NewJob(reservationRepo, clk, cfg.Log))
	}

	cfg.Log.Info("Reservation components initialized",
		"database", cfg.MongoDatabaseName,
		"lock_ttl", cfg.LockTTL,
		"lock_sweep_interval", cfg.LockSweepInterval,
		"retention_enabled", cfg.RetentionEnabled,
	)
	return c
}

// NewEventPublisher returns a Kafka-backed publisher when Kafka is enabled
// and a no-op one otherwise.
func NewEventPublisher(cfg *config.Config, kcfg *kafka_config.Config, metrics *kafkamiddleware.Metrics, source string) (events.Publisher, error) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation events will not be published")
		return events.NoopPublisher{}, nil
	}

	producer, err := kafka.NewProducer(kcfg, cfg.ReservationEventsTopic, "", cfg.Log)
	if err != nil {
		return nil, err
	}
	if kcfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		if metrics != nil {
			producer.Use(metrics.ProducerMiddleware())
		}
	}
	return events.NewKafkaPublisher(producer, source, cfg.Log), nil
}
