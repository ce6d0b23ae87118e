package pricing

import (
	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
)

// totalTolerance bounds the accepted drift between a client-submitted total
// and the server recomputation (0.01, one cent).
var totalTolerance = decimal.New(1, -2)

// Line is one cart/order row awaiting pricing.
type Line struct {
	ProductID string
	VariantID string
	SKU       string
	Name      string
	Info      domain.PriceInfo
	Quantity  int
}

// Breakdown is the aggregate of a priced cart. Subtotal and savings are plain
// sums over the lines; shipping is supplied by the caller (external rate
// collaborator) and added on top.
type Breakdown struct {
	Lines        []domain.PricedLine `json:"lines"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	TotalSavings decimal.Decimal     `json:"totalSavings"`
	ShippingCost decimal.Decimal     `json:"shippingCost"`
	Total        decimal.Decimal     `json:"total"`
}

// Aggregate resolves every line and sums the results. Pure function of its
// inputs: the same catalog snapshot and line list always reproduce the same
// total, in any line order, which is what lets checkout re-validate a
// client-submitted total instead of trusting it.
func Aggregate(lines []Line, shippingCost decimal.Decimal) (Breakdown, error) {
	b := Breakdown{
		Lines:        make([]domain.PricedLine, 0, len(lines)),
		Subtotal:     decimal.Zero,
		TotalSavings: decimal.Zero,
		ShippingCost: shippingCost,
	}
	for _, ln := range lines {
		q, err := Resolve(ln.Info, ln.Quantity)
		if err != nil {
			return Breakdown{}, err
		}
		qty := decimal.NewFromInt(int64(ln.Quantity))
		pl := domain.PricedLine{
			ProductID:      ln.ProductID,
			VariantID:      ln.VariantID,
			SKU:            ln.SKU,
			Name:           ln.Name,
			Quantity:       ln.Quantity,
			UnitPrice:      q.UnitPrice,
			IsWholesale:    q.IsWholesale,
			LineTotal:      q.UnitPrice.Mul(qty),
			SavingsPerUnit: q.SavingsPerUnit,
			LineSavings:    q.SavingsPerUnit.Mul(qty),
		}
		b.Lines = append(b.Lines, pl)
		b.Subtotal = b.Subtotal.Add(pl.LineTotal)
		b.TotalSavings = b.TotalSavings.Add(pl.LineSavings)
	}
	b.Total = b.Subtotal.Add(shippingCost)
	return b, nil
}

// VerifyClientTotal compares a client-submitted total against the server
// breakdown. Beyond one cent of drift the order is rejected with a
// PriceMismatchError, never auto-corrected.
func VerifyClientTotal(b Breakdown, clientTotal decimal.Decimal) error {
	if b.Total.Sub(clientTotal).Abs().GreaterThan(totalTolerance) {
		return &domain.PriceMismatchError{ClientTotal: clientTotal, ServerTotal: b.Total}
	}
	return nil
}
