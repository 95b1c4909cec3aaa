package domain

// ScrapedRecord is one (country, listed-product) observation produced by the
// scraping side. Cost keeps the raw storefront text; normalization happens in
// the pricing pipeline.
type ScrapedRecord struct {
	Product                 string `json:"product"`
	Cost                    string `json:"cost"`
	CountryCode             string `json:"country_code"`
	CountryName             string `json:"country_name"`
	DefaultCurrency         string `json:"default_currency"`
	PricingCurrencyOverride string `json:"pricing_currency_override,omitempty"`
}

func (r ScrapedRecord) UniqueKey() string {
	return r.CountryCode + "|" + r.Product
}
