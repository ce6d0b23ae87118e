// Package pricing resolves unit prices against wholesale tiers and
// aggregates cart/order totals. Everything here is a pure computation over a
// catalog snapshot: no storage, no locking, safe from any number of
// goroutines.
package pricing

import (
	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Quote is the resolved unit price for one item at one quantity.
// WholesaleEligibleAt is advisory only ("buy N more" prompts): it is set when
// a tier exists but the quantity fell short, and never affects the total.
type Quote struct {
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	IsWholesale         bool            `json:"isWholesale"`
	WholesaleEligibleAt int             `json:"wholesaleEligibleAt,omitempty"`
	SavingsPerUnit      decimal.Decimal `json:"savingsPerUnit"`
	SavingsPercentage   int64           `json:"savingsPercentage"`
}

// Resolve picks the applicable unit price for the requested quantity. The
// wholesale tier applies iff one is configured and qty meets its threshold.
// Inactive variants must be filtered out by the caller before resolving.
func Resolve(info domain.PriceInfo, qty int) (Quote, error) {
	if qty < 1 {
		return Quote{}, &domain.InvalidQuantityError{Quantity: qty}
	}

	q := Quote{UnitPrice: info.Price, SavingsPerUnit: decimal.Zero}
	if tier := info.Wholesale; tier != nil {
		if qty >= tier.Threshold {
			q.UnitPrice = tier.Price
			q.IsWholesale = true
		} else {
			q.WholesaleEligibleAt = tier.Threshold
		}
	}

	savings := info.Price.Sub(q.UnitPrice)
	if savings.IsNegative() {
		// Valid catalog data can't get here (tiers must undercut retail),
		// but rows predating validation must not surface negative savings.
		savings = decimal.Zero
	}
	q.SavingsPerUnit = savings
	if savings.IsPositive() && info.Price.IsPositive() {
		// Rounding happens only here, at the displayed-percentage boundary.
		q.SavingsPercentage = savings.Div(info.Price).Mul(hundred).Round(0).IntPart()
	}
	return q, nil
}
