package domain

import "github.com/shopspring/decimal"

// Product is a catalog item in one of two mutually exclusive pricing modes:
// flat (price/stock on the product itself) or variant-based (price/stock live
// entirely on child variants).
type Product struct {
	ID                 string           `db:"id"`
	Name               string           `db:"name"`
	HasVariants        bool             `db:"has_variants"`
	Price              decimal.Decimal  `db:"price"`
	OldPrice           *decimal.Decimal `db:"old_price"`
	WholesalePrice     *decimal.Decimal `db:"wholesale_price"`
	WholesaleThreshold int              `db:"wholesale_threshold"`
	StockQuantity      int              `db:"stock_quantity"`
	ImagesJSON         string           `db:"images_json"`
	Active             bool             `db:"active"`
	CreatedAt          string           `db:"created_at"`
	UpdatedAt          string           `db:"updated_at"`
}

type Variant struct {
	ID                 string           `db:"id"`
	ProductID          string           `db:"product_id"`
	SKU                string           `db:"sku"`
	Price              decimal.Decimal  `db:"price"`
	OldPrice           *decimal.Decimal `db:"old_price"`
	WholesalePrice     *decimal.Decimal `db:"wholesale_price"`
	WholesaleThreshold int              `db:"wholesale_threshold"`
	Stock              int              `db:"stock"`
	IsActive           bool             `db:"is_active"`
	CreatedAt          string           `db:"created_at"`
	UpdatedAt          string           `db:"updated_at"`
}

// WholesaleTier is a discounted unit price that activates once Threshold
// units are requested.
type WholesaleTier struct {
	Price     decimal.Decimal
	Threshold int
}

// PriceInfo is the pricing view of a product or variant handed to the
// resolver. Wholesale is nil when no tier is configured, so callers never
// re-check threshold/price presence at every call site.
type PriceInfo struct {
	Price     decimal.Decimal
	Wholesale *WholesaleTier
}

// PriceInfo returns the flat-mode pricing view. Only meaningful when
// HasVariants is false; variant-mode products price through their variants.
func (p Product) PriceInfo() PriceInfo {
	return priceInfo(p.Price, p.WholesalePrice, p.WholesaleThreshold)
}

func (v Variant) PriceInfo() PriceInfo {
	return priceInfo(v.Price, v.WholesalePrice, v.WholesaleThreshold)
}

func priceInfo(price decimal.Decimal, wholesale *decimal.Decimal, threshold int) PriceInfo {
	info := PriceInfo{Price: price}
	if wholesale != nil && wholesale.IsPositive() && threshold >= 1 {
		info.Wholesale = &WholesaleTier{Price: *wholesale, Threshold: threshold}
	}
	return info
}

// PricedLine is the resolved pricing of one cart/order row. It is derived,
// never stored on its own: everything it carries is reconstructable from the
// catalog snapshot and the quantity.
type PricedLine struct {
	ProductID      string          `json:"productId"`
	VariantID      string          `json:"variantId,omitempty"`
	SKU            string          `json:"sku,omitempty"`
	Name           string          `json:"name,omitempty"`
	Quantity       int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	IsWholesale    bool            `json:"isWholesale"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	SavingsPerUnit decimal.Decimal `json:"savingsPerUnit"`
	LineSavings    decimal.Decimal `json:"lineSavings"`
}

// Availability reports stock for one product. StockQuantity counts every
// variant regardless of active flag (physical stock, for reporting); InStock
// requires at least one active variant with stock, so a product whose only
// stocked variants are disabled reads as not purchasable.
type Availability struct {
	Status        string `json:"status"` // IN_STOCK | OUT_OF_STOCK
	StockQuantity int    `json:"stockQuantity"`
	InStock       bool   `json:"inStock"`
}
