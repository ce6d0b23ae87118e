package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
	"sellnow/internal/pricing"
)

func twoLineCart(t *testing.T) []pricing.Line {
	t.Helper()
	return []pricing.Line{
		{ProductID: "a", Info: info(t, "500", "", 0), Quantity: 2},
		{ProductID: "b", Info: info(t, "1200", "", 0), Quantity: 1},
	}
}

func TestAggregateScenario(t *testing.T) {
	b, err := pricing.Aggregate(twoLineCart(t), decimal.NewFromInt(150))
	if err != nil {
		t.Fatal(err)
	}
	if !b.Subtotal.Equal(decimal.NewFromInt(2200)) {
		t.Fatalf("want subtotal 2200, got %s", b.Subtotal)
	}
	if !b.Total.Equal(decimal.NewFromInt(2350)) {
		t.Fatalf("want total 2350, got %s", b.Total)
	}
	if len(b.Lines) != 2 || !b.Lines[0].LineTotal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("bad lines: %+v", b.Lines)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	lines := twoLineCart(t)
	forward, err := pricing.Aggregate(lines, decimal.NewFromInt(150))
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := pricing.Aggregate([]pricing.Line{lines[1], lines[0]}, decimal.NewFromInt(150))
	if err != nil {
		t.Fatal(err)
	}
	if !forward.Subtotal.Equal(reversed.Subtotal) || !forward.Total.Equal(reversed.Total) {
		t.Fatalf("permuting lines changed totals: %s/%s vs %s/%s",
			forward.Subtotal, forward.Total, reversed.Subtotal, reversed.Total)
	}
}

func TestAggregateWholesaleSavings(t *testing.T) {
	lines := []pricing.Line{
		{ProductID: "bulk", Info: info(t, "1000", "800", 10), Quantity: 10},
	}
	b, err := pricing.Aggregate(lines, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Subtotal.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("want subtotal 8000, got %s", b.Subtotal)
	}
	if !b.TotalSavings.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("want savings 2000, got %s", b.TotalSavings)
	}
	if !b.Lines[0].IsWholesale || !b.Lines[0].LineSavings.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("bad wholesale line: %+v", b.Lines[0])
	}
}

func TestAggregateRejectsBadQuantity(t *testing.T) {
	lines := []pricing.Line{{ProductID: "a", Info: info(t, "500", "", 0), Quantity: 0}}
	_, err := pricing.Aggregate(lines, decimal.Zero)
	var qtyErr *domain.InvalidQuantityError
	if !errors.As(err, &qtyErr) {
		t.Fatalf("want InvalidQuantityError, got %v", err)
	}
}

func TestVerifyClientTotal(t *testing.T) {
	b, err := pricing.Aggregate(twoLineCart(t), decimal.NewFromInt(150))
	if err != nil {
		t.Fatal(err)
	}

	if err := pricing.VerifyClientTotal(b, decimal.NewFromInt(2350)); err != nil {
		t.Fatalf("exact total rejected: %v", err)
	}
	// one cent of drift is tolerated
	if err := pricing.VerifyClientTotal(b, decimal.RequireFromString("2350.01")); err != nil {
		t.Fatalf("within-tolerance total rejected: %v", err)
	}

	err = pricing.VerifyClientTotal(b, decimal.RequireFromString("2349.98"))
	var mismatch *domain.PriceMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("want PriceMismatchError, got %v", err)
	}
	if !mismatch.ServerTotal.Equal(decimal.NewFromInt(2350)) {
		t.Fatalf("mismatch should carry server total, got %s", mismatch.ServerTotal)
	}
}
