package pricing

import (
	"math"
	"sort"
	"strings"

	"github.com/vitor-labes/price-compare/internal/domain"
)

// SortGrouped orders comparison entries by the configured column and returns a
// new slice; the input order is untouched. For converted_cost, entries whose
// cost cannot be converted with the given rate table are "unrankable" and
// cluster at the tail under either direction. An unknown sort key leaves the
// original order in place.
func SortGrouped(
	entries []domain.GroupedEntry,
	cfg domain.SortConfig,
	conversionCurrency string,
	rates domain.RateTable,
) []domain.GroupedEntry {
	sorted := make([]domain.GroupedEntry, len(entries))
	copy(sorted, entries)

	var less func(i, j int) bool

	switch cfg.Key {
	case domain.SortByProduct:
		less = func(i, j int) bool {
			return strings.ToLower(sorted[i].Product) < strings.ToLower(sorted[j].Product)
		}
	case domain.SortByCurrency:
		less = func(i, j int) bool {
			return strings.ToLower(sorted[i].Currency) < strings.ToLower(sorted[j].Currency)
		}
	case domain.SortByCost:
		less = func(i, j int) bool {
			return sorted[i].Cost < sorted[j].Cost
		}
	case domain.SortByCountries:
		less = func(i, j int) bool {
			return sorted[i].Countries.Cardinality() < sorted[j].Countries.Cardinality()
		}
	case domain.SortByConvertedCost:
		return sortByConvertedCost(sorted, cfg, conversionCurrency, rates)
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if cfg.Descending {
			return less(j, i)
		}
		return less(i, j)
	})

	return sorted
}

// sortByConvertedCost carries each entry's converted value alongside it while
// sorting, so comparisons always see the value of the entry currently at that
// position.
func sortByConvertedCost(
	sorted []domain.GroupedEntry,
	cfg domain.SortConfig,
	conversionCurrency string,
	rates domain.RateTable,
) []domain.GroupedEntry {
	// +Inf ascending, -Inf descending: either way the sentinel lands at the
	// end of the list.
	sentinel := math.Inf(1)
	if cfg.Descending {
		sentinel = math.Inf(-1)
	}

	type ranked struct {
		entry domain.GroupedEntry
		value float64
	}

	rankedEntries := make([]ranked, len(sorted))
	for i, entry := range sorted {
		rankedEntries[i] = ranked{
			entry: entry,
			value: convertedCost(entry, conversionCurrency, rates, sentinel),
		}
	}

	sort.SliceStable(rankedEntries, func(i, j int) bool {
		if cfg.Descending {
			return rankedEntries[j].value < rankedEntries[i].value
		}
		return rankedEntries[i].value < rankedEntries[j].value
	})

	for i, r := range rankedEntries {
		sorted[i] = r.entry
	}
	return sorted
}

func convertedCost(entry domain.GroupedEntry, target string, rates domain.RateTable, sentinel float64) float64 {
	if target == "" {
		return sentinel
	}
	if entry.Currency == target {
		return entry.Cost
	}
	if quotes, ok := rates[entry.Currency]; ok {
		if rate, ok := quotes[target]; ok {
			return entry.Cost * rate
		}
	}
	return sentinel
}
