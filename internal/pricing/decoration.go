package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ivangarciagi10/email-servicev2/internal/domain"
)

// decorationKeyword marks a line attribute as a decoration surcharge
// ("Decorado", "decorado laser", etc. — matched case-insensitively).
const decorationKeyword = "decorado"

// Line is a line item with its decoration surcharge folded into the unit
// price. DecorationUnit is a per-unit amount and is multiplied by Quantity in
// every total.
type Line struct {
	Title          string
	Quantity       int
	UnitPrice      decimal.Decimal // original unit price plus decoration surcharge
	DecorationUnit decimal.Decimal // zero when the line carries no decoration
}

// BaseUnit returns the unit price without the decoration surcharge.
func (l Line) BaseUnit() decimal.Decimal {
	return l.UnitPrice.Sub(l.DecorationUnit)
}

// BaseTotal returns the base contribution for the whole line.
func (l Line) BaseTotal() decimal.Decimal {
	return l.BaseUnit().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// DecorationTotal returns the decoration contribution for the whole line.
func (l Line) DecorationTotal() decimal.Decimal {
	return l.DecorationUnit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total returns the full line total, base plus decoration.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ApplyDecorations scans each line item's attributes for a decoration
// surcharge and returns adjusted lines whose unit price includes it. When
// several decoration attributes carry a price on one line, the last one wins;
// they are not summed. Lines without a recognizable surcharge pass through
// with their price untouched.
func ApplyDecorations(items []domain.LineItem) []Line {
	lines := make([]Line, 0, len(items))

	for _, item := range items {
		unitPrice, err := decimal.NewFromString(item.Price)
		if err != nil {
			unitPrice = decimal.Zero
		}

		decoration := decimal.Zero
		for _, attr := range item.Attributes() {
			if !strings.Contains(strings.ToLower(attr.AttrKey()), decorationKeyword) {
				continue
			}
			if price := ExtractPrice(attr.Value); price.IsPositive() {
				decoration = price
			}
		}

		if decoration.IsPositive() {
			unitPrice = unitPrice.Add(decoration)
		}

		lines = append(lines, Line{
			Title:          item.Title,
			Quantity:       item.Quantity,
			UnitPrice:      unitPrice,
			DecorationUnit: decoration,
		})
	}

	return lines
}

// OrderTotal sums all line totals.
func OrderTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total())
	}
	return total
}
