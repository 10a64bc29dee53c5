package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern accepts comma thousands separators and an optional two-digit
// fractional part, e.g. "1,234.56".
const amountPattern = `([\d,]+(?:\.\d{2})?)`

// pricePatterns are tried in order; the first one that matches and parses to
// a strictly positive amount wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$` + amountPattern),                         // $1,234.56
	regexp.MustCompile(`(?i)` + amountPattern + `\s*pesos?`),         // 1,234.56 pesos
	regexp.MustCompile(`(?i)` + amountPattern + `\s*mxn`),            // 1,234.56 MXN
	regexp.MustCompile(`(?i)` + amountPattern + `\s*usd`),            // 1,234.56 USD
	regexp.MustCompile(`(?i)precio[:\s]*` + amountPattern),           // precio: 1,234.56
	regexp.MustCompile(`(?i)costo[:\s]*` + amountPattern),            // costo: 1,234.56
	regexp.MustCompile(`(?i)por\s*unidad[:\s]*` + amountPattern),     // por unidad: 1,234.56
	regexp.MustCompile(`(?i)` + amountPattern + `\s*por\s*unidad`),   // 1,234.56 por unidad
	regexp.MustCompile(amountPattern),                                // bare number, last resort
}

// ExtractPrice parses a free-text attribute value and returns the currency
// amount it encodes. Zero means "no price found"; a recognized amount is
// always strictly positive. Unparseable or non-positive matches fall through
// to the next pattern.
func ExtractPrice(text string) decimal.Decimal {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return decimal.Zero
	}

	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(cleaned)
		if len(match) < 2 {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
		if err != nil || !amount.IsPositive() {
			continue
		}
		return amount
	}

	return decimal.Zero
}
