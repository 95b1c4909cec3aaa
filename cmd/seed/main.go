package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/vitor-labes/price-compare/internal/config"
	"github.com/vitor-labes/price-compare/internal/domain"
	"github.com/vitor-labes/price-compare/internal/queue"
)

// Feeds a JSON file of scraped records into the queue, standing in for the
// scraping collaborator during development.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.NewDefault()

	rabbitmqURL := getEnv("RABBITMQ_URL", cfg.RabbitURL)
	queueName := getEnv("QUEUE_NAME", cfg.QueueName)
	recordsPath := getEnv("RECORDS_PATH", "records.json")

	if len(os.Args) > 1 {
		recordsPath = os.Args[1]
	}

	data, err := os.ReadFile(recordsPath)
	if err != nil {
		log.Fatalf("erro ao ler arquivo de registros: %v", err)
	}

	var records []domain.ScrapedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("erro ao parsear registros: %v", err)
	}

	slog.Info("registros carregados",
		"path", recordsPath,
		"total", len(records),
	)

	publisher, err := queue.NewPublisher(rabbitmqURL, queueName)
	if err != nil {
		log.Fatalf("erro ao conectar no RabbitMQ: %v", err)
	}
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	publishedCount := 0
	for _, record := range records {
		if err := publisher.Publish(ctx, record); err != nil {
			slog.Error("erro ao publicar registro",
				"product", record.Product,
				"error", err,
			)
			continue
		}
		publishedCount++
	}

	slog.Info("publicação finalizada",
		"total_published", publishedCount,
		"failed", len(records)-publishedCount,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
