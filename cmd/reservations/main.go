package main

import (
	"classbook/internal/reservations"
	"classbook/pkg/app"
	"classbook/pkg/config"
	kafka_config "classbook/pkg/kafka/config"
	kafkamiddleware "classbook/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Reservations service")

	var kcfg *kafka_config.Config
	if cfg.KafkaEnabled {
		var err error
		if kcfg, err = kafka_config.Load(); err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kcfg.LogConfiguration(cfg.Log)
	}

	publisher, err := reservations.NewEventPublisher(cfg, kcfg, kafkamiddleware.NewMetrics(), "classbook."+ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}

	components := reservations.Build(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(components.Handler, components.Health)
	for _, w := range components.Workers {
		serverApp.AddWorker(w)
	}
	serverApp.AddCloser("event-publisher", components.Publisher)
	serverApp.AddCloser("mongo", cfg.Client)
	serverApp.Run()
}
