package domain

// DeriveAvailability computes aggregate stock and purchasability for a
// product. Flat mode reads the product row directly. Variant mode sums stock
// across all variants (inventory reporting counts disabled stock too) while
// the in-stock flag only honors active variants: a product whose stocked
// variants are all disabled reads as not purchasable.
func DeriveAvailability(p Product, variants []Variant) Availability {
	if !p.HasVariants {
		return availability(p.StockQuantity, p.StockQuantity > 0)
	}

	total := 0
	inStock := false
	for _, v := range variants {
		total += v.Stock
		if v.IsActive && v.Stock > 0 {
			inStock = true
		}
	}
	return availability(total, inStock)
}

func availability(qty int, inStock bool) Availability {
	status := "OUT_OF_STOCK"
	if inStock {
		status = "IN_STOCK"
	}
	return Availability{Status: status, StockQuantity: qty, InStock: inStock}
}
