package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/vitor-labes/price-compare/internal/domain"
)

// LoadFile reads a complete rate table from a JSON document shaped as
// {base: {target: rate}}.
func LoadFile(path string) (domain.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler tabela de câmbio '%s': %w", path, err)
	}

	var table domain.RateTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("erro ao parsear tabela de câmbio: %w", err)
	}
	return table, nil
}

type baseResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Shared by every per-base fetch of a report run so connections are reused.
var httpClient = &http.Client{Timeout: 15 * time.Second}

// FetchBase queries a public exchange-rate API for one base currency and
// folds the quotes into table. The API answers {"base": "...", "rates": {...}}.
func FetchBase(ctx context.Context, apiURL, base string, table domain.RateTable) error {
	endpoint := fmt.Sprintf("%s?base=%s", apiURL, url.QueryEscape(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("erro ao montar requisição de câmbio: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao buscar câmbio para %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API de câmbio respondeu %d para %s", resp.StatusCode, base)
	}

	var payload baseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("erro ao decodificar câmbio para %s: %w", base, err)
	}

	if payload.Base == "" {
		payload.Base = base
	}
	table[payload.Base] = payload.Rates
	return nil
}
