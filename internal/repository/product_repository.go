package repository

import (
	"app/internal/domain/model"
	"context"
)

// 商品の永続化。FindByIDsがカートの照合（reconcile）に使う一括取得。
// 存在しないIDは結果に含まれないだけでエラーにはしない。
type ProductRepository interface {
	ListByTenant(ctx context.Context, tenantID string, onlyActive bool) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error
}
