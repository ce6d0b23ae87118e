package services

import "github.com/shopspring/decimal"

// ShippingQuoter is the external rate collaborator: given a region it
// returns a delivery cost. This engine does not interpret region codes.
type ShippingQuoter interface {
	Rate(region string) (decimal.Decimal, error)
}

// FlatRateShipping quotes a fixed cost, with optional per-region overrides.
type FlatRateShipping struct {
	Default decimal.Decimal
	Regions map[string]decimal.Decimal
}

func (f FlatRateShipping) Rate(region string) (decimal.Decimal, error) {
	if cost, ok := f.Regions[region]; ok {
		return cost, nil
	}
	return f.Default, nil
}
