package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sellnow/internal/pricing"
)

// breakdownView serializes a priced breakdown with amounts fixed to two
// decimals. Rounding happens only here, at the display boundary; the
// breakdown itself stays exact.
func breakdownView(b pricing.Breakdown) fiber.Map {
	lines := make([]fiber.Map, 0, len(b.Lines))
	for _, ln := range b.Lines {
		lines = append(lines, fiber.Map{
			"productId":      ln.ProductID,
			"variantId":      ln.VariantID,
			"sku":            ln.SKU,
			"name":           ln.Name,
			"qty":            ln.Quantity,
			"unitPrice":      ln.UnitPrice.StringFixed(2),
			"isWholesale":    ln.IsWholesale,
			"lineTotal":      ln.LineTotal.StringFixed(2),
			"savingsPerUnit": ln.SavingsPerUnit.StringFixed(2),
			"lineSavings":    ln.LineSavings.StringFixed(2),
		})
	}
	return fiber.Map{
		"lines":        lines,
		"subtotal":     b.Subtotal.StringFixed(2),
		"totalSavings": b.TotalSavings.StringFixed(2),
		"shippingCost": b.ShippingCost.StringFixed(2),
		"total":        b.Total.StringFixed(2),
	}
}
