package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "sellnow/internal/log"
	"sellnow/internal/services"
	"sellnow/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

type cartAddInput struct {
	ProductID string `json:"productId" form:"productId"`
	VariantID string `json:"variantId" form:"variantId"`
	Qty       int    `json:"qty" form:"qty"`
}

// Add handles POST /api/v1/cart.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var in cartAddInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	productID, ok := validate.ID(in.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if in.Qty < 1 {
		applog.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "qty must be a positive integer"})
	}
	if err := h.Cart.Add(sid, productID, in.VariantID, in.Qty); err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product_id": productID})
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// View handles GET /api/v1/cart: lines re-priced from the current catalog
// snapshot, wholesale tiers applied per quantity.
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	b, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return jsonError(c, err)
	}
	return c.JSON(breakdownView(b))
}

// Remove handles DELETE /api/v1/cart/items.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Cart.Remove(sid, productID, c.Query("variantId")); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
