package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wallet-service/src/internal/config"
	"wallet-service/src/pkg/log"

	"github.com/hibiken/asynq"
)

func main() {
	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "WALLET_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("asynq.concurrency", 10)

	log.InitLogger(viperConfig)
	logger := log.GetLogger()

	config.NewKafkaConfig(viperConfig)
	config.LoadRedisConfig(viperConfig)

	db := config.NewDatabase(viperConfig, logger)
	redisClient := config.NewRedis()
	producer := config.NewKafkaProducer(viperConfig, logger)
	validate := config.NewValidator(viperConfig)
	app := config.NewFiber(viperConfig)

	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer := config.NewAsynqServer(viperConfig)
	mux := asynq.NewServeMux()

	config.Bootstrap(&config.BootstrapConfig{
		DB:          db,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Redis:       redisClient,
		AsynqClient: asynqClient,
		Async:       mux,
	})

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start task worker: %v", err), "main", "")
		}
	}()

	go func() {
		webPort := viperConfig.GetInt("web.port")
		if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("main", "Server wallet-service is shutting down...", "graceful", "")

	asynqServer.Shutdown()
	if producer != nil {
		producer.Close()
	}
	if err := asynqClient.Close(); err != nil {
		logger.Error("main", fmt.Sprintf("Error closing task client: %v", err), "graceful", "")
	}
	if err := app.Shutdown(); err != nil {
		logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
	}

	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
}
