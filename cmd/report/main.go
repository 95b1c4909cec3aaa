package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/vitor-labes/price-compare/internal/config"
	"github.com/vitor-labes/price-compare/internal/domain"
	"github.com/vitor-labes/price-compare/internal/export"
	"github.com/vitor-labes/price-compare/internal/metrics"
	"github.com/vitor-labes/price-compare/internal/pricing"
	"github.com/vitor-labes/price-compare/internal/rates"
	"github.com/vitor-labes/price-compare/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.NewDefault()

	// Environment
	databaseURL := getEnv("DATABASE_URL", cfg.DatabaseURL)
	symbolsPath := getEnv("SYMBOLS_PATH", cfg.SymbolsPath)
	ratesPath := getEnv("RATES_PATH", cfg.RatesPath)
	ratesURL := getEnv("RATES_URL", cfg.RatesURL)
	conversionCurrency := getEnv("CONVERSION_CURRENCY", cfg.ConversionCurrency)
	sortKey := getEnv("SORT_KEY", string(cfg.Sort.Key))
	sortDesc := getEnvBool("SORT_DESC", cfg.Sort.Descending)
	collapseTiers := getEnvBool("COLLAPSE_TIERS", cfg.CollapseTiers)

	slog.Info("iniciando comparação",
		"sort_key", sortKey,
		"descending", sortDesc,
		"conversion_currency", conversionCurrency,
	)

	symbols, err := config.LoadSymbolTable(symbolsPath)
	if err != nil {
		log.Fatalf("erro ao carregar tabela de símbolos: %v", err)
	}

	repo, err := repository.NewRecordRepository(databaseURL)
	if err != nil {
		log.Fatalf("erro ao conectar no banco: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := repo.List(ctx)
	if err != nil {
		log.Fatalf("erro ao carregar registros: %v", err)
	}

	if stats, err := repo.GetStats(ctx); err == nil {
		slog.Info("registros carregados",
			"total", stats["total_records"],
			"countries", stats["countries"],
			"products", stats["products"],
		)
	}

	startTime := time.Now()

	grouper := pricing.NewGrouper(pricing.NewResolver(symbols))

	if collapseTiers {
		before := len(records)
		records = grouper.KeepHighestPerCountry(records)
		slog.Info("listagens em camadas recolhidas",
			"before", before,
			"after", len(records),
		)
	}

	grouped := grouper.Group(records)

	entries := flatten(grouped)
	metrics.GroupedEntries.Set(float64(len(entries)))

	rateTable := loadRates(ctx, ratesPath, ratesURL, entries, conversionCurrency)

	sorted := pricing.SortGrouped(entries, domain.SortConfig{
		Key:        domain.SortKey(sortKey),
		Descending: sortDesc,
	}, conversionCurrency, rateTable)

	metrics.ComparisonDuration.Observe(time.Since(startTime).Seconds())

	slog.Info("comparação concluída",
		"products", len(grouped),
		"entries", len(sorted),
		"duration_seconds", time.Since(startTime).Seconds(),
	)

	if err := repo.SaveComparison(ctx, sorted); err != nil {
		slog.Error("erro ao salvar comparação", "error", err)
	}

	slog.Info("gerando arquivo CSV...")
	if err := export.ToCSV(sorted); err != nil {
		slog.Error("erro ao exportar CSV", "error", err)
	} else {
		slog.Info("CSV gerado com sucesso na pasta exports/")
	}
}

// flatten feeds buckets to the sorter in alphabetical product order so runs
// are deterministic; within a bucket the grouper's insertion order stands.
func flatten(grouped map[string][]domain.GroupedEntry) []domain.GroupedEntry {
	products := make([]string, 0, len(grouped))
	for product := range grouped {
		products = append(products, product)
	}
	sort.Strings(products)

	var entries []domain.GroupedEntry
	for _, product := range products {
		entries = append(entries, grouped[product]...)
	}
	return entries
}

// loadRates builds the rate table best-effort: a full table from file when
// configured, otherwise one fetch per base currency present in the table.
// Failures leave the table partial; the sorter pushes those entries to the
// tail instead of failing the run.
func loadRates(
	ctx context.Context,
	path, apiURL string,
	entries []domain.GroupedEntry,
	conversionCurrency string,
) domain.RateTable {
	if path != "" {
		table, err := rates.LoadFile(path)
		if err != nil {
			slog.Error("erro ao carregar tabela de câmbio", "error", err)
			return domain.RateTable{}
		}
		return table
	}

	table := domain.RateTable{}
	if apiURL == "" || conversionCurrency == "" {
		return table
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.Currency == conversionCurrency || seen[entry.Currency] {
			continue
		}
		seen[entry.Currency] = true

		if err := rates.FetchBase(ctx, apiURL, entry.Currency, table); err != nil {
			slog.Warn("câmbio indisponível",
				"base", entry.Currency,
				"error", err,
			)
			metrics.RatesFetched.WithLabelValues("error").Inc()
			continue
		}
		metrics.RatesFetched.WithLabelValues("success").Inc()
	}
	return table
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
