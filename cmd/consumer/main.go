package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitor-labes/price-compare/internal/config"
	"github.com/vitor-labes/price-compare/internal/domain"
	"github.com/vitor-labes/price-compare/internal/metrics"
	"github.com/vitor-labes/price-compare/internal/queue"
	"github.com/vitor-labes/price-compare/internal/repository"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.NewDefault()

	// Environment
	databaseURL := getEnv("DATABASE_URL", cfg.DatabaseURL)
	rabbitmqURL := getEnv("RABBITMQ_URL", cfg.RabbitURL)
	queueName := getEnv("QUEUE_NAME", cfg.QueueName)
	metricsAddr := getEnv("METRICS_ADDR", cfg.MetricsAddr)

	// Metrics
	go func() {
		slog.Info("iniciando servidor de métricas", "addr", metricsAddr)
		if err := metrics.StartMetricsServer(metricsAddr); err != nil {
			log.Fatalf("erro ao iniciar servidor de métricas: %v", err)
		}
	}()

	slog.Info("iniciando consumer",
		"queue", queueName,
	)

	// Connection
	repo, err := repository.NewRecordRepository(databaseURL)
	if err != nil {
		log.Fatalf("erro ao conectar no banco: %v", err)
	}
	defer repo.Close()

	// Persist each scraped record
	handler := func(ctx context.Context, record domain.ScrapedRecord) error {
		startTime := time.Now()

		err := repo.Save(ctx, record)

		duration := time.Since(startTime).Seconds()
		metrics.MessageProcessingDuration.Observe(duration)

		if err != nil {
			metrics.MessagesProcessed.WithLabelValues("error").Inc()
			metrics.DatabaseInserts.WithLabelValues("error").Inc()
			return err
		}

		metrics.MessagesProcessed.WithLabelValues("success").Inc()
		metrics.DatabaseInserts.WithLabelValues("success").Inc()
		return nil
	}

	// Create consumer
	consumer, err := queue.NewConsumer(rabbitmqURL, queueName, handler)
	if err != nil {
		log.Fatalf("erro ao criar consumer: %v", err)
	}
	defer consumer.Close()

	// Context cancel
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupt
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Goroutine consumer
	errChan := make(chan error, 1)
	go func() {
		errChan <- consumer.Start(ctx)
	}()

	// Await signal
	select {
	case sig := <-sigChan:
		slog.Info("sinal recebido, encerrando...", "signal", sig)
		cancel()
	case err := <-errChan:
		if err != nil && err != context.Canceled {
			log.Fatalf("erro no consumer: %v", err)
		}
	}

	slog.Info("consumer encerrado com sucesso")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
