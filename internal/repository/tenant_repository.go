package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// slug重複
var ErrSlugTaken = errors.New("slug already exists")

// 店舗の永続化（保存・取得）だけを約束。
type TenantRepository interface {
	Create(ctx context.Context, t model.Tenant) (model.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (model.Tenant, error)
	FindByOwnerID(ctx context.Context, ownerID string) (model.Tenant, error)
	Update(ctx context.Context, t model.Tenant) error
}
