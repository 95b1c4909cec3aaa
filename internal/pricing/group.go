package pricing

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vitor-labes/price-compare/internal/domain"
	"github.com/vitor-labes/price-compare/internal/metrics"
)

// Grouper collapses scraped records into unique price points.
type Grouper struct {
	resolver *Resolver
}

func NewGrouper(resolver *Resolver) *Grouper {
	return &Grouper{resolver: resolver}
}

// Group folds records into one GroupedEntry per (product, currency, cost)
// triple and buckets the entries by product name. Records whose cost fails to
// normalize are silently excluded; a partial table beats no table. Within a
// bucket, entries keep first-seen order.
func (g *Grouper) Group(records []domain.ScrapedRecord) map[string][]domain.GroupedEntry {
	var order []domain.GroupKey
	byKey := make(map[domain.GroupKey]domain.GroupedEntry)

	for _, record := range records {
		cost := Normalize(record.Cost)
		if math.IsNaN(cost) {
			metrics.RecordsProcessed.WithLabelValues("dropped").Inc()
			continue
		}
		metrics.RecordsProcessed.WithLabelValues("grouped").Inc()

		key := domain.GroupKey{
			Product:  record.Product,
			Currency: g.resolver.Resolve(record),
			Cost:     cost,
		}

		entry, seen := byKey[key]
		if !seen {
			entry = domain.GroupedEntry{
				Product:   key.Product,
				Currency:  key.Currency,
				Cost:      key.Cost,
				Countries: mapset.NewSet[string](),
			}
			byKey[key] = entry
			order = append(order, key)
		}
		entry.Countries.Add(record.CountryName)
	}

	grouped := make(map[string][]domain.GroupedEntry)
	for _, key := range order {
		entry := byKey[key]
		grouped[entry.Product] = append(grouped[entry.Product], entry)
	}
	return grouped
}

// KeepHighestPerCountry retains, for each (countryCode, product) pair, only
// the record with the greatest normalized cost. Storefronts list tiered and
// bundled variants of the same purchase; the top tier is the comparable one.
// A record that fails to normalize is never kept over one that parses; when
// nothing parses the first record seen stands. Output preserves first-seen
// order of each pair.
func (g *Grouper) KeepHighestPerCountry(records []domain.ScrapedRecord) []domain.ScrapedRecord {
	type pairKey struct {
		country string
		product string
	}

	kept := make([]domain.ScrapedRecord, 0, len(records))
	position := make(map[pairKey]int)
	bestCost := make(map[pairKey]float64)

	for _, record := range records {
		cost := Normalize(record.Cost)
		key := pairKey{country: record.CountryCode, product: record.Product}

		idx, seen := position[key]
		if !seen {
			position[key] = len(kept)
			kept = append(kept, record)
			bestCost[key] = cost
			continue
		}

		metrics.DuplicatesCollapsed.Inc()
		if !math.IsNaN(cost) && (math.IsNaN(bestCost[key]) || cost > bestCost[key]) {
			kept[idx] = record
			bestCost[key] = cost
		}
	}

	return kept
}
