package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
	"sellnow/internal/pricing"
)

func info(t *testing.T, price, wholesale string, threshold int) domain.PriceInfo {
	t.Helper()
	pi := domain.PriceInfo{Price: decimal.RequireFromString(price)}
	if wholesale != "" {
		w := decimal.RequireFromString(wholesale)
		pi.Wholesale = &domain.WholesaleTier{Price: w, Threshold: threshold}
	}
	return pi
}

func TestResolveNoWholesale(t *testing.T) {
	pi := info(t, "129.99", "", 0)
	for _, qty := range []int{1, 7, 500} {
		q, err := pricing.Resolve(pi, qty)
		if err != nil {
			t.Fatal(err)
		}
		if !q.UnitPrice.Equal(pi.Price) || q.IsWholesale {
			t.Fatalf("qty %d: want retail %s, got %+v", qty, pi.Price, q)
		}
		if !q.SavingsPerUnit.IsZero() || q.SavingsPercentage != 0 {
			t.Fatalf("qty %d: want zero savings, got %+v", qty, q)
		}
		if q.WholesaleEligibleAt != 0 {
			t.Fatalf("qty %d: no tier configured, eligibleAt should be unset", qty)
		}
	}
}

func TestResolveThresholdBoundary(t *testing.T) {
	pi := info(t, "19.90", "15.00", 10)

	below, err := pricing.Resolve(pi, 9)
	if err != nil {
		t.Fatal(err)
	}
	if below.IsWholesale || !below.UnitPrice.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("qty 9 should stay retail, got %+v", below)
	}
	if below.WholesaleEligibleAt != 10 {
		t.Fatalf("want eligibleAt=10, got %d", below.WholesaleEligibleAt)
	}

	at, err := pricing.Resolve(pi, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !at.IsWholesale || !at.UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("qty 10 should hit wholesale, got %+v", at)
	}
	if at.WholesaleEligibleAt != 0 {
		t.Fatalf("met threshold should not advertise eligibility, got %d", at.WholesaleEligibleAt)
	}
}

func TestResolveWholesaleScenario(t *testing.T) {
	pi := info(t, "1000", "800", 10)

	q9, err := pricing.Resolve(pi, 9)
	if err != nil {
		t.Fatal(err)
	}
	if q9.IsWholesale || !q9.UnitPrice.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("qty 9: %+v", q9)
	}

	q10, err := pricing.Resolve(pi, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !q10.IsWholesale || !q10.UnitPrice.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("qty 10: %+v", q10)
	}
	if !q10.SavingsPerUnit.Equal(decimal.NewFromInt(200)) || q10.SavingsPercentage != 20 {
		t.Fatalf("want savings 200 (20%%), got %+v", q10)
	}
}

func TestResolvePercentageRoundsHalfUp(t *testing.T) {
	// 1.00 off 8.00 is 12.5%, which rounds up to 13.
	q, err := pricing.Resolve(info(t, "8.00", "7.00", 1), 1)
	if err != nil {
		t.Fatal(err)
	}
	if q.SavingsPercentage != 13 {
		t.Fatalf("want 13%%, got %d%%", q.SavingsPercentage)
	}
}

func TestResolveRejectsBadQuantity(t *testing.T) {
	pi := info(t, "10.00", "", 0)
	for _, qty := range []int{0, -3} {
		_, err := pricing.Resolve(pi, qty)
		var qtyErr *domain.InvalidQuantityError
		if !errors.As(err, &qtyErr) {
			t.Fatalf("qty %d: want InvalidQuantityError, got %v", qty, err)
		}
	}
}

func TestResolveIsPure(t *testing.T) {
	pi := info(t, "19.90", "15.00", 10)
	a, err := pricing.Resolve(pi, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pricing.Resolve(pi, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !a.UnitPrice.Equal(b.UnitPrice) || a.IsWholesale != b.IsWholesale ||
		!a.SavingsPerUnit.Equal(b.SavingsPerUnit) || a.SavingsPercentage != b.SavingsPercentage {
		t.Fatalf("identical inputs must resolve identically: %+v vs %+v", a, b)
	}
}
