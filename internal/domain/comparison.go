package domain

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// GroupKey identifies a unique price point: two records with the same product,
// resolved currency and normalized cost are the same row in the comparison.
type GroupKey struct {
	Product  string
	Currency string
	Cost     float64
}

// GroupedEntry is one row of the comparison table. Countries accumulates every
// country that listed the product at this exact price point.
type GroupedEntry struct {
	Product   string
	Currency  string
	Cost      float64
	Countries mapset.Set[string]
}

func (e GroupedEntry) Key() GroupKey {
	return GroupKey{Product: e.Product, Currency: e.Currency, Cost: e.Cost}
}

type SortKey string

const (
	SortByProduct       SortKey = "product"
	SortByCurrency      SortKey = "currency"
	SortByCost          SortKey = "cost"
	SortByCountries     SortKey = "countries"
	SortByConvertedCost SortKey = "converted_cost"
)

// SortConfig is supplied per sort call.
type SortConfig struct {
	Key        SortKey
	Descending bool
}

// RateTable maps base currency to the rates quoted against it, the shape a
// public exchange-rate API returns. It may be partial or empty.
type RateTable map[string]map[string]float64
