package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
)

func TestDeriveAvailabilityFlat(t *testing.T) {
	p := domain.Product{ID: "mug", Price: decimal.NewFromInt(10), StockQuantity: 7}
	a := domain.DeriveAvailability(p, nil)
	if a.StockQuantity != 7 || !a.InStock || a.Status != "IN_STOCK" {
		t.Fatalf("got %+v", a)
	}

	p.StockQuantity = 0
	a = domain.DeriveAvailability(p, nil)
	if a.StockQuantity != 0 || a.InStock || a.Status != "OUT_OF_STOCK" {
		t.Fatalf("got %+v", a)
	}
}

// Physical stock counts disabled variants; purchasability does not. A
// product whose only stocked variant is inactive reports stock but is not
// in stock.
func TestDeriveAvailabilityVariants(t *testing.T) {
	p := domain.Product{ID: "tee", HasVariants: true}
	variants := []domain.Variant{
		{ID: "v1", Stock: 5, IsActive: false},
		{ID: "v2", Stock: 0, IsActive: true},
	}
	a := domain.DeriveAvailability(p, variants)
	if a.StockQuantity != 5 {
		t.Fatalf("want stockQuantity 5 (sum over all variants), got %d", a.StockQuantity)
	}
	if a.InStock || a.Status != "OUT_OF_STOCK" {
		t.Fatalf("no active variant has stock, got %+v", a)
	}

	variants[1].Stock = 3
	a = domain.DeriveAvailability(p, variants)
	if a.StockQuantity != 8 || !a.InStock {
		t.Fatalf("active stocked variant should flip inStock, got %+v", a)
	}
}
