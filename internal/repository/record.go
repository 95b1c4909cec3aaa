package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	_ "github.com/lib/pq"

	"github.com/vitor-labes/price-compare/internal/domain"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(databaseURL string) (*RecordRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("erro ao conectar no banco: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	slog.Info("conectado ao PostgreSQL")

	return &RecordRepository{db: db}, nil
}

func (r *RecordRepository) Save(ctx context.Context, record domain.ScrapedRecord) error {
	query := `
		INSERT INTO scraped_records (product, raw_cost, country_code, country_name, default_currency, currency_override)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int
	err := r.db.QueryRowContext(
		ctx,
		query,
		record.Product,
		record.Cost,
		record.CountryCode,
		record.CountryName,
		record.DefaultCurrency,
		record.PricingCurrencyOverride,
	).Scan(&id)

	if err != nil {
		return fmt.Errorf("erro ao inserir registro: %w", err)
	}

	slog.Info("registro salvo no banco",
		"id", id,
		"product", record.Product,
		"country", record.CountryCode,
	)

	return nil
}

// List returns every scraped record in insertion order, the order the
// grouping pipeline expects.
func (r *RecordRepository) List(ctx context.Context) ([]domain.ScrapedRecord, error) {
	query := `
		SELECT product, raw_cost, country_code, country_name, default_currency, currency_override
		FROM scraped_records
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar registros: %w", err)
	}
	defer rows.Close()

	var records []domain.ScrapedRecord
	for rows.Next() {
		var rec domain.ScrapedRecord
		if err := rows.Scan(
			&rec.Product,
			&rec.Cost,
			&rec.CountryCode,
			&rec.CountryName,
			&rec.DefaultCurrency,
			&rec.PricingCurrencyOverride,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// SaveComparison persists one snapshot of the sorted table. Rows share a run
// id so the latest table can be pulled back as a unit.
func (r *RecordRepository) SaveComparison(ctx context.Context, entries []domain.GroupedEntry) error {
	var runID int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comparison_runs (created_at) VALUES (NOW()) RETURNING id`,
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("erro ao criar execução de comparação: %w", err)
	}

	query := `
		INSERT INTO comparison_entries (run_id, position, product, currency, cost, countries)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for position, entry := range entries {
		countries := strings.Join(mapset.Sorted(entry.Countries), ", ")
		if _, err := r.db.ExecContext(ctx, query,
			runID,
			position,
			entry.Product,
			entry.Currency,
			entry.Cost,
			countries,
		); err != nil {
			return fmt.Errorf("erro ao inserir entrada da comparação: %w", err)
		}
	}

	slog.Info("comparação salva no banco",
		"run_id", runID,
		"entries", len(entries),
	)

	return nil
}

func (r *RecordRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COUNT(DISTINCT country_code) as countries,
			COUNT(DISTINCT product) as products
		FROM scraped_records
	`

	var stats struct {
		Total     int
		Countries int
		Products  int
	}

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Countries,
		&stats.Products,
	)

	if err != nil {
		return nil, fmt.Errorf("erro ao buscar estatísticas: %w", err)
	}

	return map[string]interface{}{
		"total_records": stats.Total,
		"countries":     stats.Countries,
		"products":      stats.Products,
	}, nil
}

func (r *RecordRepository) Close() error {
	return r.db.Close()
}
