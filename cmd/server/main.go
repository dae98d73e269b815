package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tyrowin/roomchat/internal/contract"
	"github.com/Tyrowin/roomchat/internal/mirror"
	"github.com/Tyrowin/roomchat/internal/profanity"
	"github.com/Tyrowin/roomchat/internal/server"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const activityBuffer = 1024

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	config, err := server.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	filter, err := loadFilter(config)
	if err != nil {
		return err
	}

	publisher, closeBroker, err := openPublisher(log, config)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Error closing activity publisher", "error", err)
		}
		if err := closeBroker(); err != nil {
			log.Warn("Error closing broker connection", "error", err)
		}
	}()

	srv := server.New(config, log, filter, publisher)
	srv.Start()
	httpServer := server.CreateServer(config.Port, srv.SetupRoutes())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if err := server.StartServer(log, httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	if err := server.ShutdownServer(log, httpServer, config.ShutdownTimeout); err != nil {
		log.Error("HTTP server did not stop cleanly", "error", err)
	}
	if err := srv.Hub().Shutdown(config.ShutdownTimeout); err != nil {
		log.Error("Hub did not stop cleanly", "error", err)
	}

	log.Info("Program stopped cleanly")
	return nil
}

func loadFilter(config *server.Config) (*profanity.Filter, error) {
	if config.ProfanityWordsFile == "" {
		return profanity.NewDefault()
	}
	return profanity.NewFromFile(config.ProfanityWordsFile)
}

// openPublisher mirrors activity to RabbitMQ when AMQP_URL is set.
func openPublisher(log *slog.Logger, config *server.Config) (contract.ActivityPublisher, func() error, error) {
	if config.AMQPURL == "" {
		log.Info("AMQP_URL not set, activity mirroring disabled")
		return mirror.Discard{}, func() error { return nil }, nil
	}

	publisher, closeConn, err := mirror.Dial(log, config.AMQPURL, config.AMQPExchange, activityBuffer)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Mirroring activity to RabbitMQ", "exchange", config.AMQPExchange)
	return publisher, closeConn, nil
}
