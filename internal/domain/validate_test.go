package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func wantPricingError(t *testing.T, err error) *domain.InvalidPricingError {
	t.Helper()
	var pe *domain.InvalidPricingError
	if !errors.As(err, &pe) {
		t.Fatalf("want InvalidPricingError, got %v", err)
	}
	return pe
}

func TestValidateProductFlat(t *testing.T) {
	ok := domain.Product{ID: "mug", Name: "Mug", Price: dec("14.90"), StockQuantity: 3,
		ImagesJSON: `["products/mug/main.jpg"]`}
	if err := domain.ValidateProduct(ok, nil); err != nil {
		t.Fatal(err)
	}

	// price must be positive in flat mode
	bad := ok
	bad.Price = decimal.Zero
	wantPricingError(t, domain.ValidateProduct(bad, nil))

	// flat mode needs at least one image
	bare := ok
	bare.ImagesJSON = ""
	wantPricingError(t, domain.ValidateProduct(bare, nil))
	bare.ImagesJSON = "[]"
	wantPricingError(t, domain.ValidateProduct(bare, nil))

	// flat mode cannot carry variants
	wantPricingError(t, domain.ValidateProduct(ok, []domain.Variant{{SKU: "X", Price: dec("1")}}))
}

func TestValidateProductVariantMode(t *testing.T) {
	p := domain.Product{ID: "tee", Name: "Tee", HasVariants: true}
	v := domain.Variant{ID: "v1", ProductID: "tee", SKU: "TEE-S", Price: dec("19.90"), Stock: 5, IsActive: true}

	if err := domain.ValidateProduct(p, []domain.Variant{v}); err != nil {
		t.Fatal(err)
	}

	// at least one variant required
	wantPricingError(t, domain.ValidateProduct(p, nil))

	// variant-mode product must not price itself
	priced := p
	priced.Price = dec("5.00")
	wantPricingError(t, domain.ValidateProduct(priced, []domain.Variant{v}))

	// sku unique within the product
	dup := v
	dup.ID = "v2"
	wantPricingError(t, domain.ValidateProduct(p, []domain.Variant{v, dup}))
}

func TestValidateWholesaleTier(t *testing.T) {
	base := domain.Variant{ID: "v1", SKU: "SKU-1", Price: dec("19.90"), Stock: 1}

	// wholesale needs a threshold >= 1
	v := base
	v.WholesalePrice = decPtr("15.00")
	wantPricingError(t, domain.ValidateVariant(v))

	v.WholesaleThreshold = 10
	if err := domain.ValidateVariant(v); err != nil {
		t.Fatal(err)
	}

	// a tier that is not cheaper is a data error, not silently accepted
	v.WholesalePrice = decPtr("19.90")
	wantPricingError(t, domain.ValidateVariant(v))
	v.WholesalePrice = decPtr("25.00")
	wantPricingError(t, domain.ValidateVariant(v))

	// threshold without a wholesale price is ignored
	v = base
	v.WholesaleThreshold = 10
	if err := domain.ValidateVariant(v); err != nil {
		t.Fatal(err)
	}
}
