package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"todoapi/pkg/api"
	"todoapi/pkg/config"
	"todoapi/pkg/logging"
	"todoapi/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	logger, err := logging.NewAppLogger("todoapi")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	tel, err := telemetry.Init(telemetry.Config{
		ServiceName:    "todoapi",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(ctx)

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := api.StartServer(cfg, metrics, logger); err != nil {
			log.Fatal("Server error:", err)
		}
	}()

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
