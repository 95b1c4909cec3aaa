package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Normalize parses a raw storefront price string into a numeric value.
// Storefronts use dozens of locale conventions ("€5.399,99", "R5,399.99",
// "49.000", "Rp 2,5juta"); the separator roles are resolved from their count
// and position alone, without a locale database. Returns NaN when the text
// holds no parseable number.
func Normalize(raw string) float64 {
	lower := strings.ToLower(raw)

	// Indonesian magnitude suffixes take precedence over the generic parser:
	// everything before the token is a comma-decimal number.
	if i := strings.Index(lower, "juta"); i >= 0 {
		return scaleSuffixed(lower[:i], 1_000_000)
	}
	if i := strings.Index(lower, "ribu"); i >= 0 {
		return scaleSuffixed(lower[:i], 1_000)
	}

	clean := stripToNumeric(raw)
	if !strings.ContainsAny(clean, "0123456789") {
		return math.NaN()
	}

	dots := strings.Count(clean, ".")
	commas := strings.Count(clean, ",")

	switch {
	case dots > 0 && commas > 0:
		// Whichever separator occurs last is the decimal point.
		if strings.LastIndex(clean, ".") > strings.LastIndex(clean, ",") {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		}
	case commas > 0:
		clean = resolveSingleSeparator(clean, ",")
	case dots > 0:
		clean = resolveSingleSeparator(clean, ".")
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

func scaleSuffixed(prefix string, multiplier float64) float64 {
	clean := stripToNumeric(prefix)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)

	if !strings.ContainsAny(clean, "0123456789") {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return math.NaN()
	}
	return value * multiplier
}

// resolveSingleSeparator decides whether a lone separator type marks decimals
// or thousands grouping. Two or more occurrences of the same character can
// only be grouping. A single occurrence followed by exactly three digits is
// grouping too, unless nothing meaningful precedes it ("0,001" is a decimal,
// not a thousand).
func resolveSingleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) > 2 {
		return strings.Join(parts, "")
	}

	before, after := parts[0], parts[1]
	if len(after) == 3 && before != "" && before != "0" {
		return before + after
	}
	return before + "." + after
}

func stripToNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
