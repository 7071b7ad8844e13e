package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-dashboard/internal/app"
	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panic(err)
	}

	logger := log.New(os.Stdout, "weather-dashboard: ", log.LstdFlags)

	application := app.New(*cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := application.Init(ctx)
	if err != nil {
		logger.Panicf("failed to initialize application: %v", err)
	}

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		if err := application.Stop(container); err != nil {
			logger.Printf("failed to shutdown application: %v", err)
		}
		cancel()
	}()

	if err := application.Start(ctx, container); err != nil {
		logger.Panicf("server stopped with error: %v", err)
	}
}
