package repository

import (
	"context"

	"app/internal/cart"
	repo "app/internal/repository"
)

// ProductRepositoryをカートのカタログ参照に変換するアダプタ。
// 論理削除済みはFindByIDsの結果に出ないので、そのまま「カタログに無い」扱いになる。
type CartCatalog struct {
	products repo.ProductRepository
}

// DI
func NewCartCatalog(products repo.ProductRepository) *CartCatalog {
	return &CartCatalog{products: products}
}

func (c *CartCatalog) ProductsByIDs(ctx context.Context, ids []string) ([]cart.CatalogProduct, error) {
	found, err := c.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]cart.CatalogProduct, 0, len(found))
	for _, p := range found {
		out = append(out, cart.CatalogProduct{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.BasePrice,
			IsActive: p.IsActive,
		})
	}
	return out, nil
}
