package main

import (
	"context"
	"sync"

	"classbook/internal/reservations"
	"classbook/pkg/app"
	"classbook/pkg/config"
	"classbook/pkg/kafka"
	kafka_config "classbook/pkg/kafka/config"
	kafkamiddleware "classbook/pkg/kafka/middleware"
	"classbook/pkg/logger"
)

const ServiceName = "reservations-consumer"

func main() {
	cfg := config.Load(ServiceName)
	if !cfg.KafkaEnabled {
		cfg.Log.Fatal("Reservations consumer requires KAFKA_ENABLED=true")
	}
	cfg.SetMongo()

	kcfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kcfg.LogConfiguration(cfg.Log)

	cfg.Log.Info("Starting Reservations consumer")

	metrics := kafkamiddleware.NewMetrics()
	publisher, err := reservations.NewEventPublisher(cfg, kcfg, metrics, "classbook."+ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}

	components := reservations.Build(cfg, publisher)

	consumer, err := kafka.NewConsumer(
		kcfg,
		cfg.ReservationRequestsTopic,
		cfg.ReservationConsumerGroup,
		cfg.ReservationDLQTopic,
		components.Consumer.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kcfg.EnableMiddleware {
		consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(nil, components.Health)
	for _, w := range components.Workers {
		serverApp.AddWorker(w)
	}
	serverApp.AddWorker(&consumerWorker{consumer: consumer, metrics: metrics, log: cfg.Log})
	serverApp.AddCloser("event-publisher", components.Publisher)
	serverApp.AddCloser("mongo", cfg.Client)
	serverApp.Run()
}

// consumerWorker runs the blocking consume loop as an application worker.
type consumerWorker struct {
	consumer *kafka.Consumer
	metrics  *kafkamiddleware.Metrics
	log      *logger.Logger
	wg       sync.WaitGroup
}

func (w *consumerWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			w.log.Error("Kafka consumer stopped unexpectedly", "error", err)
		}
	}()
}

func (w *consumerWorker) Stop() {
	if err := w.consumer.Close(); err != nil {
		w.log.Error("Failed to close Kafka consumer", "error", err)
	}
	w.wg.Wait()
	w.log.Info("Kafka consumer stopped", "metrics", w.metrics.Snapshot())
}
