package pricing

import (
	"sort"
	"strings"

	"github.com/vitor-labes/price-compare/internal/domain"
)

// SymbolTable maps an unambiguous currency symbol found in raw price text to
// its ISO code. A bare "$" must not appear here: it is shared by too many
// dollar currencies to identify one.
type SymbolTable map[string]string

// DefaultSymbolTable covers the symbols seen across the supported storefronts.
// It is a fallback; deployments override it via the symbols YAML file.
func DefaultSymbolTable() SymbolTable {
	return SymbolTable{
		"US$": "USD",
		"CA$": "CAD",
		"A$":  "AUD",
		"NZ$": "NZD",
		"R$":  "BRL",
		"Rp":  "IDR",
		"€":   "EUR",
		"£":   "GBP",
		"₹":   "INR",
		"¥":   "JPY",
		"₩":   "KRW",
		"₺":   "TRY",
		"฿":   "THB",
		"₫":   "VND",
		"zł":  "PLN",
	}
}

type symbolMapping struct {
	symbol string
	code   string
}

// Resolver picks the authoritative currency for a scraped record. Priority:
// an unambiguous symbol in the raw cost text, then the record's pricing
// override when the text carries a bare "$", then the country default.
type Resolver struct {
	symbols []symbolMapping
}

func NewResolver(table SymbolTable) *Resolver {
	symbols := make([]symbolMapping, 0, len(table))
	for symbol, code := range table {
		symbols = append(symbols, symbolMapping{symbol: symbol, code: code})
	}
	// Longest symbol first so "US$" wins over any shorter overlap.
	sort.Slice(symbols, func(i, j int) bool {
		if len(symbols[i].symbol) != len(symbols[j].symbol) {
			return len(symbols[i].symbol) > len(symbols[j].symbol)
		}
		return symbols[i].symbol < symbols[j].symbol
	})
	return &Resolver{symbols: symbols}
}

func (r *Resolver) Resolve(record domain.ScrapedRecord) string {
	for _, m := range r.symbols {
		if strings.Contains(record.Cost, m.symbol) {
			return m.code
		}
	}

	// A bare "$" is ambiguous across dollar currencies; a per-record override
	// beats the weak country-default guess but never an unambiguous symbol.
	if strings.Contains(record.Cost, "$") && record.PricingCurrencyOverride != "" {
		return record.PricingCurrencyOverride
	}

	return record.DefaultCurrency
}
