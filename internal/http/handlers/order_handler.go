package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "sellnow/internal/log"
	"sellnow/internal/repos"
	"sellnow/internal/services"
	"sellnow/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

type placeOrderInput struct {
	Region string `json:"region" form:"region"`
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Total  string `json:"total" form:"total"` // client-side total, re-validated server-side
}

// Place handles POST /api/v1/orders.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var in placeOrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	region, ok := validate.Region(in.Region)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "region"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid region/ZIP"})
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name must be 1-50 characters"})
	}
	clientTotal, ok := validate.Money(in.Total)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid total"})
	}

	placed, err := h.Order.Place(sid, region, services.Contact{Name: name, Email: email}, clientTotal)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return jsonError(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":     placed.ID,
		"order_number": placed.OrderNumber,
		"total":        placed.Breakdown.Total.StringFixed(2),
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          placed.ID,
		"orderNumber": placed.OrderNumber,
		"breakdown":   breakdownView(placed.Breakdown),
	})
}

// View handles GET /api/v1/orders/:id.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return jsonError(c, err)
	}
	// Ownership check: only the placing session may read its order.
	if o.SessionID != "" && o.SessionID != c.Cookies("sid") {
		applog.Security(c, "order.view.denied", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}
