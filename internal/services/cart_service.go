package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"sellnow/internal/domain"
	"sellnow/internal/pricing"
	"sellnow/internal/repos"
)

var (
	// ErrNotPurchasable covers inactive products/variants and mode
	// mismatches on the purchase path.
	ErrNotPurchasable  = errors.New("item not available for purchase")
	ErrVariantRequired = errors.New("variant required for this product")
)

type CartService struct {
	Carts    *repos.CartRepo
	Products *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, products *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Products: products}
}

// Add puts qty units of a product (or one of its variants) into the session
// cart. Quantities below 1 are rejected, not floored. Inactive products and
// variants are not purchasable and never reach the price resolver.
func (s *CartService) Add(sessionID, productID, variantID string, qty int) error {
	if qty < 1 {
		return &domain.InvalidQuantityError{Quantity: qty}
	}

	p, err := s.Products.Get(productID)
	if err != nil {
		return err
	}
	if !p.Active {
		return ErrNotPurchasable
	}
	if p.HasVariants {
		if variantID == "" {
			return ErrVariantRequired
		}
		v, err := s.Products.GetVariant(variantID)
		if err != nil {
			return err
		}
		if v.ProductID != p.ID || !v.IsActive {
			return ErrNotPurchasable
		}
	} else if variantID != "" {
		return ErrNotPurchasable
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(cartID, productID, variantID, qty)
}

// View re-prices the cart from the current catalog snapshot. Shipping is not
// known until checkout, so the cart total carries zero shipping.
func (s *CartService) View(sessionID string) (pricing.Breakdown, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	lines, err := priceLines(s.Products, items)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return pricing.Aggregate(lines, decimal.Zero)
}

func (s *CartService) Remove(sessionID, productID, variantID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID, variantID)
}

// priceLines turns stored cart rows into priceable lines against the current
// catalog snapshot.
func priceLines(products *repos.ProductRepo, items []repos.CartItemRow) ([]pricing.Line, error) {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		p, err := products.Get(it.ProductID)
		if err != nil {
			return nil, err
		}
		ln := pricing.Line{
			ProductID: it.ProductID,
			Name:      p.Name,
			Info:      p.PriceInfo(),
			Quantity:  it.Qty,
		}
		if it.VariantID != "" {
			v, err := products.GetVariant(it.VariantID)
			if err != nil {
				return nil, err
			}
			ln.VariantID = v.ID
			ln.SKU = v.SKU
			ln.Info = v.PriceInfo()
		}
		lines = append(lines, ln)
	}
	return lines, nil
}
