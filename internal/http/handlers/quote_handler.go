package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sellnow/internal/pricing"
	"sellnow/internal/repos"
	"sellnow/internal/validate"
)

type QuoteHandler struct {
	Products *repos.ProductRepo
}

// Quote handles GET /api/v1/quote?productId=&variantId=&qty= and returns the
// resolved unit price for the requested quantity. Inactive items are not
// quotable; the resolver never sees them.
func (h *QuoteHandler) Quote(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	qty, ok := validate.Qty(c.Query("qty"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "qty must be a positive integer"})
	}

	p, err := h.Products.Get(productID)
	if err != nil {
		return jsonError(c, err)
	}
	if !p.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	info := p.PriceInfo()
	if p.HasVariants {
		variantID, ok := validate.ID(c.Query("variantId"))
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "variantId required for this product"})
		}
		v, err := h.Products.GetVariant(variantID)
		if err != nil {
			return jsonError(c, err)
		}
		if v.ProductID != p.ID || !v.IsActive {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		info = v.PriceInfo()
	}

	q, err := pricing.Resolve(info, qty)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(quoteView(q))
}

// quoteView fixes displayed amounts to two decimals at the response
// boundary.
func quoteView(q pricing.Quote) fiber.Map {
	m := fiber.Map{
		"unitPrice":         q.UnitPrice.StringFixed(2),
		"isWholesale":       q.IsWholesale,
		"savingsPerUnit":    q.SavingsPerUnit.StringFixed(2),
		"savingsPercentage": q.SavingsPercentage,
	}
	if q.WholesaleEligibleAt > 0 {
		m["wholesaleEligibleAt"] = q.WholesaleEligibleAt
	}
	return m
}
