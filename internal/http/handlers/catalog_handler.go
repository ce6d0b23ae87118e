package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
	applog "sellnow/internal/log"
	"sellnow/internal/services"
	"sellnow/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// VariantInput mirrors one variant of a product write request. Monetary
// amounts travel as decimal strings to keep two-decimal fixed-point exact.
type VariantInput struct {
	ID                 string `json:"id"`
	SKU                string `json:"sku"`
	Price              string `json:"price"`
	OldPrice           string `json:"oldPrice"`
	WholesalePrice     string `json:"wholesalePrice"`
	WholesaleThreshold int    `json:"wholesaleThreshold"`
	Stock              int    `json:"stock"`
	IsActive           bool   `json:"isActive"`
}

type ProductInput struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	HasVariants        bool           `json:"hasVariants"`
	Price              string         `json:"price"`
	OldPrice           string         `json:"oldPrice"`
	WholesalePrice     string         `json:"wholesalePrice"`
	WholesaleThreshold int            `json:"wholesaleThreshold"`
	StockQuantity      int            `json:"stockQuantity"`
	ImagesJSON         string         `json:"imagesJson"`
	Active             bool           `json:"active"`
	Variants           []VariantInput `json:"variants"`
}

func (in ProductInput) toDomain() (domain.Product, []domain.Variant, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Product{}, nil, &domain.InvalidPricingError{Field: "name", Reason: "name is required (max 50 chars)"}
	}
	p := domain.Product{
		ID:                 in.ID,
		Name:               name,
		HasVariants:        in.HasVariants,
		WholesaleThreshold: in.WholesaleThreshold,
		StockQuantity:      in.StockQuantity,
		ImagesJSON:         in.ImagesJSON,
		Active:             in.Active,
	}
	var err error
	if p.Price, p.OldPrice, p.WholesalePrice, err = parseAmounts(in.Price, in.OldPrice, in.WholesalePrice); err != nil {
		return domain.Product{}, nil, err
	}

	variants := make([]domain.Variant, 0, len(in.Variants))
	for _, vi := range in.Variants {
		sku, ok := validate.SKU(vi.SKU)
		if !ok {
			return domain.Product{}, nil, &domain.InvalidPricingError{Field: "sku", Reason: "invalid sku"}
		}
		v := domain.Variant{
			ID:                 vi.ID,
			SKU:                sku,
			WholesaleThreshold: vi.WholesaleThreshold,
			Stock:              vi.Stock,
			IsActive:           vi.IsActive,
		}
		if v.Price, v.OldPrice, v.WholesalePrice, err = parseAmounts(vi.Price, vi.OldPrice, vi.WholesalePrice); err != nil {
			return domain.Product{}, nil, err
		}
		variants = append(variants, v)
	}
	return p, variants, nil
}

func parseAmounts(price, oldPrice, wholesale string) (p decimal.Decimal, old, ws *decimal.Decimal, err error) {
	if price != "" {
		v, ok := validate.Money(price)
		if !ok {
			return p, nil, nil, &domain.InvalidPricingError{Field: "price", Reason: "not a valid amount"}
		}
		p = v
	}
	if oldPrice != "" {
		v, ok := validate.Money(oldPrice)
		if !ok {
			return p, nil, nil, &domain.InvalidPricingError{Field: "oldPrice", Reason: "not a valid amount"}
		}
		old = &v
	}
	if wholesale != "" {
		v, ok := validate.Money(wholesale)
		if !ok {
			return p, nil, nil, &domain.InvalidPricingError{Field: "wholesalePrice", Reason: "not a valid amount"}
		}
		ws = &v
	}
	return p, old, ws, nil
}

// Create handles POST /admin/products.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	p, variants, err := in.toDomain()
	if err != nil {
		return jsonError(c, err)
	}
	created, err := h.Catalog.CreateProduct(p, variants)
	if err != nil {
		applog.Security(c, "catalog.create.reject", map[string]any{"error": err.Error()})
		return jsonError(c, err)
	}
	applog.Audit(c, "catalog.create", map[string]any{"product_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": created.ID})
}

// Update handles PUT /admin/products/:id.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var in ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	in.ID = id
	p, variants, err := in.toDomain()
	if err != nil {
		return jsonError(c, err)
	}
	if len(variants) == 0 {
		// no variants in the body: keep the existing set untouched
		variants = nil
	}
	if err := h.Catalog.UpdateProduct(p, variants); err != nil {
		applog.Security(c, "catalog.update.reject", map[string]any{"product_id": id, "error": err.Error()})
		return jsonError(c, err)
	}
	applog.Audit(c, "catalog.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// Detail handles GET /api/v1/products/:id — catalog snapshot plus derived
// availability.
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, variants, err := h.Catalog.Get(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{
		"product":      p,
		"variants":     variants,
		"availability": domain.DeriveAvailability(p, variants),
	})
}

// Availability handles GET /api/v1/availability?productId=...
func (h *CatalogHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	avail, err := h.Catalog.Availability(id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(avail)
}
