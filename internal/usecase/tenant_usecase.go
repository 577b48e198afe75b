package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/validator"
)

// 店舗作成の入力
type CreateTenantInput struct {
	OwnerID       string
	Name          string
	Type          string
	WhatsappPhone string
}

// 店舗設定更新の入力（PATCHだが設定フォームは全項目送る）
type UpdateSettingsInput struct {
	OwnerID         string
	Name            string
	WhatsappPhone   string
	Address         string
	DeliveryFee     int64
	PickupEnabled   bool
	DeliveryEnabled bool
	LeadTimeText    string
	LogoURL         string
	PrimaryColor    string
}

// handlerがJSONにして返す店舗情報
type TenantOutput struct {
	Tenant     model.Tenant `json:"tenant"`
	CatalogURL string       `json:"catalog_url"`
}

// 印刷用QRの情報。画像化はフロントに任せてURLだけ返す。
type TenantQROutput struct {
	CatalogURL string `json:"catalog_url"`
	QRImageURL string `json:"qr_image_url"`
}

type TenantUsecase struct {
	tenantRepo repository.TenantRepository
	idGen      IDGenerator
	clock      Clock
	feURL      string
}

// DI
func NewTenantUsecase(tenantRepo repository.TenantRepository, idGen IDGenerator, clock Clock, feURL string) *TenantUsecase {
	return &TenantUsecase{
		tenantRepo: tenantRepo,
		idGen:      idGen,
		clock:      clock,
		feURL:      feURL,
	}
}

// 自分の店舗を作る。slugは店舗名から自動生成。
func (u *TenantUsecase) CreateTenant(ctx context.Context, in CreateTenantInput) (TenantOutput, error) {
	var out TenantOutput

	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 60 {
		return out, NewHTTPError(http.StatusBadRequest, "name must be 2-60 characters")
	}

	tenantType := model.TenantType(in.Type)
	if tenantType != model.TenantTypeRestaurant && tenantType != model.TenantTypeEntrepreneur {
		return out, NewHTTPError(http.StatusBadRequest, "type must be restaurant or entrepreneur")
	}

	if err := validatePhone(in.WhatsappPhone); err != nil {
		return out, err
	}

	// 1オーナー1店舗
	if _, err := u.tenantRepo.FindByOwnerID(ctx, in.OwnerID); err == nil {
		return out, NewHTTPError(http.StatusConflict, "tenant already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return out, err
	}

	slug := validator.Slugify(name)
	if slug == "" {
		return out, NewHTTPError(http.StatusBadRequest, "name must contain letters or digits")
	}

	now := u.clock.Now()
	tenant := model.Tenant{
		ID:            u.idGen.NewID(),
		OwnerID:       in.OwnerID,
		Name:          name,
		Slug:          slug,
		Type:          tenantType,
		WhatsappPhone: strings.TrimSpace(in.WhatsappPhone),
		PickupEnabled: true,
		IsActive:      true,
		Timestamp: model.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	created, err := u.tenantRepo.Create(ctx, tenant)
	if err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return out, NewHTTPError(http.StatusConflict, "slug already exists")
		}
		return out, err
	}

	out.Tenant = created
	out.CatalogURL = u.catalogURL(created.Slug)
	return out, nil
}

// 自分の店舗を取得
func (u *TenantUsecase) GetMyTenant(ctx context.Context, ownerID string) (TenantOutput, error) {
	var out TenantOutput

	tenant, err := u.tenantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return out, err
	}

	out.Tenant = tenant
	out.CatalogURL = u.catalogURL(tenant.Slug)
	return out, nil
}

// 店舗設定を更新。slugは公開URLなので変えない。
func (u *TenantUsecase) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (TenantOutput, error) {
	var out TenantOutput

	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 60 {
		return out, NewHTTPError(http.StatusBadRequest, "name must be 2-60 characters")
	}
	if err := validatePhone(in.WhatsappPhone); err != nil {
		return out, err
	}
	if utf8.RuneCountInString(in.Address) > 120 {
		return out, NewHTTPError(http.StatusBadRequest, "address must be at most 120 characters")
	}
	if in.DeliveryFee < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "delivery_fee must be >= 0")
	}
	if utf8.RuneCountInString(in.LeadTimeText) > 60 {
		return out, NewHTTPError(http.StatusBadRequest, "lead_time_text must be at most 60 characters")
	}

	tenant, err := u.tenantRepo.FindByOwnerID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return out, err
	}

	tenant.Name = name
	tenant.WhatsappPhone = strings.TrimSpace(in.WhatsappPhone)
	tenant.Address = strings.TrimSpace(in.Address)
	tenant.DeliveryFee = in.DeliveryFee
	tenant.PickupEnabled = in.PickupEnabled
	tenant.DeliveryEnabled = in.DeliveryEnabled
	tenant.LeadTimeText = strings.TrimSpace(in.LeadTimeText)
	tenant.LogoURL = strings.TrimSpace(in.LogoURL)
	tenant.PrimaryColor = strings.TrimSpace(in.PrimaryColor)
	tenant.Timestamp.UpdatedAt = u.clock.Now()

	if err := u.tenantRepo.Update(ctx, tenant); err != nil {
		return out, err
	}

	out.Tenant = tenant
	out.CatalogURL = u.catalogURL(tenant.Slug)
	return out, nil
}

// 店頭掲示用のQR情報
func (u *TenantUsecase) QRInfo(ctx context.Context, ownerID string) (TenantQROutput, error) {
	var out TenantQROutput

	tenant, err := u.tenantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return out, err
	}

	catalogURL := u.catalogURL(tenant.Slug)
	out.CatalogURL = catalogURL
	out.QRImageURL = "https://api.qrserver.com/v1/create-qr-code/?size=512x512&data=" + url.QueryEscape(catalogURL)
	return out, nil
}

func (u *TenantUsecase) catalogURL(slug string) string {
	return strings.TrimSuffix(u.feURL, "/") + "/t/" + slug
}

// WhatsApp番号：数字8個以上、全体20文字以内
func validatePhone(phone string) error {
	trimmed := strings.TrimSpace(phone)
	if validator.CountDigits(trimmed) < 8 || len(trimmed) > 20 {
		return NewHTTPError(http.StatusBadRequest, "whatsapp_phone must contain 8-20 digits")
	}
	return nil
}
