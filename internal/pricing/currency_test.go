package pricing

import (
	"testing"

	"github.com/vitor-labes/price-compare/internal/domain"
)

func TestResolverPriority(t *testing.T) {
	resolver := NewResolver(DefaultSymbolTable())

	tests := []struct {
		name     string
		record   domain.ScrapedRecord
		expected string
	}{
		{
			name: "símbolo inequívoco vence tudo",
			record: domain.ScrapedRecord{
				Cost:                    "US$4.99",
				DefaultCurrency:         "CAD",
				PricingCurrencyOverride: "CAD",
			},
			expected: "USD",
		},
		{
			name: "símbolo euro",
			record: domain.ScrapedRecord{
				Cost:            "€49,99",
				DefaultCurrency: "PLN",
			},
			expected: "EUR",
		},
		{
			name: "real brasileiro antes do cifrão genérico",
			record: domain.ScrapedRecord{
				Cost:                    "R$ 24,90",
				DefaultCurrency:         "USD",
				PricingCurrencyOverride: "ARS",
			},
			expected: "BRL",
		},
		{
			name: "cifrão ambíguo usa override",
			record: domain.ScrapedRecord{
				Cost:                    "$7.99",
				DefaultCurrency:         "USD",
				PricingCurrencyOverride: "AUD",
			},
			expected: "AUD",
		},
		{
			name: "cifrão ambíguo sem override cai no padrão do país",
			record: domain.ScrapedRecord{
				Cost:            "$7.99",
				DefaultCurrency: "USD",
			},
			expected: "USD",
		},
		{
			name: "override sem cifrão não vale",
			record: domain.ScrapedRecord{
				Cost:                    "49.000",
				DefaultCurrency:         "IDR",
				PricingCurrencyOverride: "SGD",
			},
			expected: "IDR",
		},
		{
			name: "sem símbolo usa padrão do país",
			record: domain.ScrapedRecord{
				Cost:            "539,99",
				DefaultCurrency: "ZAR",
			},
			expected: "ZAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.record)
			if got != tt.expected {
				t.Errorf("Resolve(%q) = %s, want %s", tt.record.Cost, got, tt.expected)
			}
		})
	}
}

func TestResolverInjectedTable(t *testing.T) {
	resolver := NewResolver(SymbolTable{"kr": "SEK"})

	record := domain.ScrapedRecord{
		Cost:            "599 kr",
		DefaultCurrency: "NOK",
	}
	if got := resolver.Resolve(record); got != "SEK" {
		t.Errorf("Resolve com tabela injetada = %s, want SEK", got)
	}

	// A table without "€" must not recognize the euro symbol.
	record = domain.ScrapedRecord{
		Cost:            "€9,99",
		DefaultCurrency: "HUF",
	}
	if got := resolver.Resolve(record); got != "HUF" {
		t.Errorf("Resolve fora da tabela = %s, want HUF", got)
	}
}
