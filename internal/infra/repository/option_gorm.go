package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OptionGormRepository struct {
	db *gorm.DB
}

// DI
func NewOptionGormRepository(db *gorm.DB) *OptionGormRepository {
	return &OptionGormRepository{db: db}
}

func (r *OptionGormRepository) ListGroupsByProduct(ctx context.Context, productID string) ([]model.OptionGroup, error) {
	var gs []model.OptionGroup
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order asc").
		Find(&gs).Error
	if err != nil {
		return []model.OptionGroup{}, err
	}
	return gs, nil
}

func (r *OptionGormRepository) ListGroupsByTenant(ctx context.Context, tenantID string) ([]model.OptionGroup, error) {
	var gs []model.OptionGroup
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order asc").
		Find(&gs).Error
	if err != nil {
		return []model.OptionGroup{}, err
	}
	return gs, nil
}

func (r *OptionGormRepository) FindGroupByID(ctx context.Context, id string) (model.OptionGroup, error) {
	var g model.OptionGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OptionGroup{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OptionGroup{}, err
	}
	return g, nil
}

func (r *OptionGormRepository) CreateGroup(ctx context.Context, g model.OptionGroup) (model.OptionGroup, error) {
	if err := r.db.WithContext(ctx).Create(&g).Error; err != nil {
		return model.OptionGroup{}, err
	}
	return g, nil
}

func (r *OptionGormRepository) UpdateGroup(ctx context.Context, g model.OptionGroup) error {
	res := r.db.WithContext(ctx).Model(&model.OptionGroup{}).Where("id = ?", g.ID).Updates(map[string]interface{}{
		"name":       g.Name,
		"type":       g.Type,
		"required":   g.Required,
		"sort_order": g.SortOrder,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// グループ削除。ぶら下がるオプションも一緒に消す。
func (r *OptionGormRepository) DeleteGroup(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Option{}, "group_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.OptionGroup{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

func (r *OptionGormRepository) ListOptionsByGroup(ctx context.Context, groupID string) ([]model.Option, error) {
	var os []model.Option
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("sort_order asc").
		Find(&os).Error
	if err != nil {
		return []model.Option{}, err
	}
	return os, nil
}

func (r *OptionGormRepository) ListOptionsByGroups(ctx context.Context, groupIDs []string) ([]model.Option, error) {
	if len(groupIDs) == 0 {
		return []model.Option{}, nil
	}

	var os []model.Option
	err := r.db.WithContext(ctx).
		Where("group_id IN ?", groupIDs).
		Order("sort_order asc").
		Find(&os).Error
	if err != nil {
		return []model.Option{}, err
	}
	return os, nil
}

func (r *OptionGormRepository) FindOptionByID(ctx context.Context, id string) (model.Option, error) {
	var o model.Option
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Option{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Option{}, err
	}
	return o, nil
}

func (r *OptionGormRepository) CreateOption(ctx context.Context, o model.Option) (model.Option, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return model.Option{}, err
	}
	return o, nil
}

func (r *OptionGormRepository) UpdateOption(ctx context.Context, o model.Option) error {
	res := r.db.WithContext(ctx).Model(&model.Option{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"name":        o.Name,
		"price_delta": o.PriceDelta,
		"sort_order":  o.SortOrder,
		"is_active":   o.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OptionGormRepository) DeleteOption(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Option{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
