package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"vital-alert-service/internal/alerts"
	"vital-alert-service/internal/api"
	"vital-alert-service/internal/config"
	"vital-alert-service/internal/db"
	"vital-alert-service/internal/ingest"
	"vital-alert-service/internal/kafka"
	"vital-alert-service/internal/logging"
	"vital-alert-service/internal/notify"
	"vital-alert-service/internal/providers"
	"vital-alert-service/internal/ws"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Connect to database
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("Failed to connect to database: %v", err)
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	// Alert lifecycle service
	alertSvc := alerts.NewService(dbConn, logger)

	// Notification channels and dispatcher
	dispatcher := notify.NewDispatcher(logger,
		providers.NewSMS(cfg.SMS.ChannelConfig, cfg.SMS.RatePerSecond),
		providers.NewPush(cfg.Push),
		providers.NewMessenger(cfg.Messaging),
	)
	hub := ws.NewHub(logger)
	dispatcher.SetBroadcaster(hub)

	// Ingestion pipeline
	ingestor := ingest.NewIngestor(cfg.Thresholds, dbConn, alertSvc, dbConn, dispatcher, logger)

	// Kafka consumer for IoT readings; skipped when no broker is configured
	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer([]string{cfg.Kafka.Broker}, cfg.Kafka.Topic, cfg.Kafka.GroupID, ingestor, logger)
		consumer.Start(&wg)
	} else {
		logger.Warnf("KAFKA_BROKER not set, IoT ingestion disabled")
	}

	// Start API server
	handler := api.NewHandler(ingestor, alertSvc, dbConn, logger)
	handler.SetHub(hub)
	router := api.NewRouter(logger, cfg, handler)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	if consumer != nil {
		consumer.Close()
	}
	wg.Wait()
	logger.Infof("Service stopped")
}
