package handlers

import (
	"github.com/jmoiron/sqlx"

	"sellnow/internal/repos"
	"sellnow/internal/sequence"
	"sellnow/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	QuoteHandler   *QuoteHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, shipping services.ShippingQuoter) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	seq := sequence.NewAllocator(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo, seq, shipping)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		QuoteHandler:   &QuoteHandler{Products: prodRepo},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc, Repo: orderRepo},
		AdminHandler:   &AdminHandler{Orders: orderRepo, Catalog: catalogSvc, Products: prodRepo},
	}
}
