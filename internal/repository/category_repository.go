package repository

import (
	"app/internal/domain/model"
	"context"
)

// カテゴリの永続化。公開側はsort_order昇順・作成日時昇順で返す。
type CategoryRepository interface {
	ListByTenant(ctx context.Context, tenantID string, onlyActive bool) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id string) error
}
