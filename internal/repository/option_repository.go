package repository

import (
	"app/internal/domain/model"
	"context"
)

// オプショングループとオプションの永続化。
// 一覧はsort_order昇順で返す。
type OptionRepository interface {
	ListGroupsByProduct(ctx context.Context, productID string) ([]model.OptionGroup, error)
	ListGroupsByTenant(ctx context.Context, tenantID string) ([]model.OptionGroup, error)
	FindGroupByID(ctx context.Context, id string) (model.OptionGroup, error)
	CreateGroup(ctx context.Context, g model.OptionGroup) (model.OptionGroup, error)
	UpdateGroup(ctx context.Context, g model.OptionGroup) error
	DeleteGroup(ctx context.Context, id string) error

	ListOptionsByGroup(ctx context.Context, groupID string) ([]model.Option, error)
	ListOptionsByGroups(ctx context.Context, groupIDs []string) ([]model.Option, error)
	FindOptionByID(ctx context.Context, id string) (model.Option, error)
	CreateOption(ctx context.Context, o model.Option) (model.Option, error)
	UpdateOption(ctx context.Context, o model.Option) error
	DeleteOption(ctx context.Context, id string) error
}
