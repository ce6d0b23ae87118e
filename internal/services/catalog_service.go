package services

import (
	"github.com/google/uuid"

	"sellnow/internal/domain"
	"sellnow/internal/repos"
)

type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

// CreateProduct validates and persists a product with its variants. A
// validation failure blocks the write entirely; nothing is half-saved.
func (s *CatalogService) CreateProduct(p domain.Product, variants []domain.Variant) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	for i := range variants {
		if variants[i].ID == "" {
			variants[i].ID = uuid.NewString()
		}
		variants[i].ProductID = p.ID
	}
	if err := domain.ValidateProduct(p, variants); err != nil {
		return domain.Product{}, err
	}
	if err := s.Products.Insert(p, variants); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateProduct validates the new state before touching storage. When the
// caller passes no variants for a variant-mode product, the existing variant
// set is loaded to validate against and left untouched.
func (s *CatalogService) UpdateProduct(p domain.Product, variants []domain.Variant) error {
	check := variants
	if p.HasVariants && variants == nil {
		existing, err := s.Products.Variants(p.ID)
		if err != nil {
			return err
		}
		check = existing
	}
	for i := range variants {
		if variants[i].ID == "" {
			variants[i].ID = uuid.NewString()
		}
		variants[i].ProductID = p.ID
	}
	if err := domain.ValidateProduct(p, check); err != nil {
		return err
	}
	return s.Products.Update(p, variants)
}

func (s *CatalogService) Get(productID string) (domain.Product, []domain.Variant, error) {
	p, err := s.Products.Get(productID)
	if err != nil {
		return domain.Product{}, nil, err
	}
	var variants []domain.Variant
	if p.HasVariants {
		if variants, err = s.Products.Variants(p.ID); err != nil {
			return domain.Product{}, nil, err
		}
	}
	return p, variants, nil
}

// Availability derives aggregate stock for a product from the current
// catalog snapshot.
func (s *CatalogService) Availability(productID string) (domain.Availability, error) {
	p, variants, err := s.Get(productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.DeriveAvailability(p, variants), nil
}

// SetStock overwrites stock for a flat product or a variant (admin surface).
func (s *CatalogService) SetStock(productID, variantID string, qty int) error {
	if qty < 0 {
		return &domain.InvalidPricingError{Field: "stock", Reason: "stock must not be negative"}
	}
	if variantID != "" {
		return s.Products.SetVariantStock(variantID, qty)
	}
	return s.Products.SetStock(productID, qty)
}
