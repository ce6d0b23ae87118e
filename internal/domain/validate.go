package domain

import "github.com/shopspring/decimal"

// ValidateProduct checks the mutual-exclusivity invariant between flat and
// variant pricing modes. For variant-mode products the caller passes the
// variants being written alongside the product; each is validated too.
func ValidateProduct(p Product, variants []Variant) error {
	if p.HasVariants {
		if len(variants) == 0 {
			return &InvalidPricingError{Field: "variants", Reason: "variant-mode product needs at least one variant"}
		}
		if p.Price.IsPositive() || p.WholesalePrice != nil {
			return &InvalidPricingError{Field: "price", Reason: "variant-mode product must not carry its own pricing"}
		}
		seen := make(map[string]bool, len(variants))
		for _, v := range variants {
			if err := ValidateVariant(v); err != nil {
				return err
			}
			if seen[v.SKU] {
				return &InvalidPricingError{Field: "sku", Reason: "duplicate sku " + v.SKU}
			}
			seen[v.SKU] = true
		}
		return nil
	}

	if len(variants) > 0 {
		return &InvalidPricingError{Field: "variants", Reason: "flat-mode product must not carry variants"}
	}
	if !p.Price.IsPositive() {
		return &InvalidPricingError{Field: "price", Reason: "flat-mode product needs price > 0"}
	}
	if p.ImagesJSON == "" || p.ImagesJSON == "[]" {
		return &InvalidPricingError{Field: "images", Reason: "flat-mode product needs at least one image"}
	}
	if p.StockQuantity < 0 {
		return &InvalidPricingError{Field: "stockQuantity", Reason: "stock must not be negative"}
	}
	return validateWholesale(p.Price, p.WholesalePrice, p.WholesaleThreshold)
}

func ValidateVariant(v Variant) error {
	if v.SKU == "" {
		return &InvalidPricingError{Field: "sku", Reason: "variant needs a sku"}
	}
	if !v.Price.IsPositive() {
		return &InvalidPricingError{Field: "price", Reason: "variant " + v.SKU + " needs price > 0"}
	}
	if v.Stock < 0 {
		return &InvalidPricingError{Field: "stock", Reason: "variant " + v.SKU + " stock must not be negative"}
	}
	return validateWholesale(v.Price, v.WholesalePrice, v.WholesaleThreshold)
}

// validateWholesale enforces the tier invariants: a wholesale price requires
// a threshold >= 1 and must undercut the retail price. A threshold without a
// wholesale price is ignored, not an error.
func validateWholesale(price decimal.Decimal, wholesale *decimal.Decimal, threshold int) error {
	if wholesale == nil || !wholesale.IsPositive() {
		return nil
	}
	if threshold < 1 {
		return &InvalidPricingError{Field: "wholesaleThreshold", Reason: "wholesale price needs a threshold of at least 1"}
	}
	if wholesale.GreaterThanOrEqual(price) {
		return &InvalidPricingError{Field: "wholesalePrice", Reason: "wholesale price must be lower than retail price"}
	}
	return nil
}
