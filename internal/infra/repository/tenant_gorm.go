package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type TenantGormRepository struct {
	db *gorm.DB
}

// DI
func NewTenantGormRepository(db *gorm.DB) *TenantGormRepository {
	return &TenantGormRepository{db: db}
}

// 店舗の作成。slugのユニーク制約違反はErrSlugTakenへ変換する。
func (r *TenantGormRepository) Create(ctx context.Context, t model.Tenant) (model.Tenant, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Tenant{}, repo.ErrSlugTaken
		}
		return model.Tenant{}, err
	}
	return t, nil
}

// slugで店舗を取得（公開カタログの入口）
func (r *TenantGormRepository) FindBySlug(ctx context.Context, slug string) (model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tenant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tenant{}, err
	}
	return t, nil
}

// オーナーIDで自分の店舗を取得
func (r *TenantGormRepository) FindByOwnerID(ctx context.Context, ownerID string) (model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Tenant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Tenant{}, err
	}
	return t, nil
}

// 店舗設定の更新
func (r *TenantGormRepository) Update(ctx context.Context, t model.Tenant) error {
	res := r.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
		"name":             t.Name,
		"whatsapp_phone":   t.WhatsappPhone,
		"address":          t.Address,
		"delivery_fee":     t.DeliveryFee,
		"pickup_enabled":   t.PickupEnabled,
		"delivery_enabled": t.DeliveryEnabled,
		"lead_time_text":   t.LeadTimeText,
		"logo_url":         t.LogoURL,
		"primary_color":    t.PrimaryColor,
		"is_active":        t.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Postgresのunique violation（23505）判定。
// ドライバのエラー型に依存したくないので文字列で見る。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "23505") || strings.Contains(s, "duplicate key")
}
