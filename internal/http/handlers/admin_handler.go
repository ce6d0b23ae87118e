package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "sellnow/internal/log"
	"sellnow/internal/repos"
	"sellnow/internal/services"
	"sellnow/internal/validate"
)

type AdminHandler struct {
	Orders   *repos.OrderRepo
	Catalog  *services.CatalogService
	Products *repos.ProductRepo
}

var allowedStatuses = map[string]bool{
	"PLACED": true, "CONFIRMED": true, "SHIPPED": true, "DELIVERED": true, "CANCELLED": true,
}

// OrdersPage handles GET /admin/orders.
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// UpdateOrderStatus handles POST /admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.FormValue("status")))
	if !allowedStatuses[status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}
	if err := h.Orders.UpdateStatus(oid, status); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": oid, "status": status})
	return c.JSON(fiber.Map{"ok": true})
}

// Inventory handles GET /admin/inventory.
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Products.ListInventory()
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"inventory": rows})
}

type setStockInput struct {
	ProductID string `json:"productId" form:"productId"`
	VariantID string `json:"variantId" form:"variantId"`
	Qty       int    `json:"qty" form:"qty"`
}

// SetStock handles POST /admin/inventory.
func (h *AdminHandler) SetStock(c *fiber.Ctx) error {
	var in setStockInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	if _, ok := validate.ID(in.ProductID); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	if err := h.Catalog.SetStock(in.ProductID, in.VariantID, in.Qty); err != nil {
		return jsonError(c, err)
	}
	applog.Audit(c, "admin.inventory.set", map[string]any{
		"product_id": in.ProductID, "variant_id": in.VariantID, "qty": in.Qty,
	})
	return c.JSON(fiber.Map{"ok": true})
}
