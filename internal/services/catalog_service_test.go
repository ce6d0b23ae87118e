package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"sellnow/internal/domain"
	"sellnow/internal/repos"
	"sellnow/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCatalogRejectsInvalidPricing(t *testing.T) {
	svc := services.NewCatalogService(repos.NewProductRepo(memdb(t)))

	cases := []struct {
		name     string
		product  domain.Product
		variants []domain.Variant
	}{
		{"flat without price", domain.Product{Name: "Mug"}, nil},
		{"flat without images", domain.Product{Name: "Mug", Price: dec("14.90")}, nil},
		{"variant mode without variants", domain.Product{Name: "Tee", HasVariants: true}, nil},
		{"wholesale without threshold", domain.Product{Name: "Pad", Price: dec("8.50"),
			ImagesJSON: `["products/pad/main.jpg"]`, WholesalePrice: decPtr("6.00")}, nil},
		{"wholesale not cheaper", domain.Product{Name: "Pad", Price: dec("8.50"),
			ImagesJSON: `["products/pad/main.jpg"]`, WholesalePrice: decPtr("8.50"), WholesaleThreshold: 10}, nil},
	}
	for _, tc := range cases {
		_, err := svc.CreateProduct(tc.product, tc.variants)
		var pe *domain.InvalidPricingError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: want InvalidPricingError, got %v", tc.name, err)
		}
	}

	// nothing was half-saved
	products, err := svc.Products.ListActive(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 {
		t.Fatalf("rejected writes must not persist, found %d products", len(products))
	}
}

func TestCatalogCreateAndAvailability(t *testing.T) {
	svc := services.NewCatalogService(repos.NewProductRepo(memdb(t)))

	flat, err := svc.CreateProduct(domain.Product{
		Name: "Classic Mug", Price: dec("14.90"), StockQuantity: 7, Active: true,
		ImagesJSON: `["products/mug/main.jpg"]`,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	a, err := svc.Availability(flat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.StockQuantity != 7 || !a.InStock {
		t.Fatalf("flat availability: %+v", a)
	}

	// stocked-but-disabled variant: reported in the sum, not purchasable
	tee, err := svc.CreateProduct(domain.Product{
		Name: "Logo Tee", HasVariants: true, Active: true,
	}, []domain.Variant{
		{SKU: "TEE-S", Price: dec("19.90"), Stock: 5, IsActive: false},
		{SKU: "TEE-M", Price: dec("19.90"), Stock: 0, IsActive: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	a, err = svc.Availability(tee.ID)
	if err != nil {
		t.Fatal(err)
	}
	if a.StockQuantity != 5 || a.InStock {
		t.Fatalf("variant availability: %+v", a)
	}
}

func TestCatalogUpdateValidatesBeforeWrite(t *testing.T) {
	svc := services.NewCatalogService(repos.NewProductRepo(memdb(t)))

	p, err := svc.CreateProduct(domain.Product{
		Name: "Notebook", Price: dec("8.50"), StockQuantity: 10, Active: true,
		ImagesJSON: `["products/notebook/main.jpg"]`,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	p.WholesalePrice = decPtr("9.00") // not cheaper than retail
	p.WholesaleThreshold = 20
	err = svc.UpdateProduct(p, nil)
	var pe *domain.InvalidPricingError
	if !errors.As(err, &pe) {
		t.Fatalf("want InvalidPricingError, got %v", err)
	}

	// stored row is unchanged
	stored, err := svc.Products.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.WholesalePrice != nil {
		t.Fatalf("rejected update leaked into storage: %+v", stored)
	}
}

func TestSetStockRejectsNegative(t *testing.T) {
	svc := services.NewCatalogService(repos.NewProductRepo(memdb(t)))
	var pe *domain.InvalidPricingError
	if err := svc.SetStock("mug", "", -1); !errors.As(err, &pe) {
		t.Fatalf("want InvalidPricingError, got %v", err)
	}
}
