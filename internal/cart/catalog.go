package cart

import "context"

// カタログ側の商品スナップショット。名前・価格・販売可否の真実はここ。
type CatalogProduct struct {
	ID       string
	Name     string
	Price    int64
	IsActive bool
}

// 商品の一括取得。存在しないIDは結果に含まれないだけでエラーにしない。
type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]CatalogProduct, error)
}
