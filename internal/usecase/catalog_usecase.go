package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 公開カタログで見せる店舗情報。owner_idなどは出さない。
type PublicTenant struct {
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Type            string `json:"type"`
	WhatsappPhone   string `json:"whatsapp_phone"`
	Address         string `json:"address"`
	DeliveryFee     int64  `json:"delivery_fee"`
	PickupEnabled   bool   `json:"pickup_enabled"`
	DeliveryEnabled bool   `json:"delivery_enabled"`
	LeadTimeText    string `json:"lead_time_text"`
	LogoURL         string `json:"logo_url"`
	PrimaryColor    string `json:"primary_color"`
}

type PublicOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

type PublicOptionGroup struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Required bool           `json:"required"`
	Options  []PublicOption `json:"options"`
}

type PublicProduct struct {
	ID           string              `json:"id"`
	CategoryID   *string             `json:"category_id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	BasePrice    int64               `json:"base_price"`
	IsSoldOut    bool                `json:"is_sold_out"`
	OptionGroups []PublicOptionGroup `json:"option_groups"`
}

type PublicCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// 公開カタログページに必要な全部
type CatalogOutput struct {
	Tenant     PublicTenant     `json:"tenant"`
	Categories []PublicCategory `json:"categories"`
	Products   []PublicProduct  `json:"products"`
}

type CatalogUsecase struct {
	tenantRepo   repository.TenantRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	optionRepo   repository.OptionRepository
}

// DI
func NewCatalogUsecase(
	tenantRepo repository.TenantRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	optionRepo repository.OptionRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		tenantRepo:   tenantRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		optionRepo:   optionRepo,
	}
}

// slugから公開カタログを組み立てる。非公開の店・カテゴリ・商品は出さない。
func (u *CatalogUsecase) GetCatalog(ctx context.Context, slug string) (CatalogOutput, error) {
	var out CatalogOutput

	tenant, err := u.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, NewHTTPError(http.StatusNotFound, "store not found")
		}
		return out, err
	}
	if !tenant.IsActive {
		return out, NewHTTPError(http.StatusNotFound, "store not found")
	}

	categories, err := u.categoryRepo.ListByTenant(ctx, tenant.ID, true)
	if err != nil {
		return out, err
	}

	products, err := u.productRepo.ListByTenant(ctx, tenant.ID, true)
	if err != nil {
		return out, err
	}

	groups, err := u.optionRepo.ListGroupsByTenant(ctx, tenant.ID)
	if err != nil {
		return out, err
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}

	var options []model.Option
	if len(groupIDs) > 0 {
		options, err = u.optionRepo.ListOptionsByGroups(ctx, groupIDs)
		if err != nil {
			return out, err
		}
	}

	optionsByGroup := make(map[string][]PublicOption)
	for _, o := range options {
		if !o.IsActive {
			continue
		}
		optionsByGroup[o.GroupID] = append(optionsByGroup[o.GroupID], PublicOption{
			ID:         o.ID,
			Name:       o.Name,
			PriceDelta: o.PriceDelta,
		})
	}

	groupsByProduct := make(map[string][]PublicOptionGroup)
	for _, g := range groups {
		groupsByProduct[g.ProductID] = append(groupsByProduct[g.ProductID], PublicOptionGroup{
			ID:       g.ID,
			Name:     g.Name,
			Type:     string(g.Type),
			Required: g.Required,
			Options:  optionsByGroup[g.ID],
		})
	}

	out.Tenant = PublicTenant{
		Name:            tenant.Name,
		Slug:            tenant.Slug,
		Type:            string(tenant.Type),
		WhatsappPhone:   tenant.WhatsappPhone,
		Address:         tenant.Address,
		DeliveryFee:     tenant.DeliveryFee,
		PickupEnabled:   tenant.PickupEnabled,
		DeliveryEnabled: tenant.DeliveryEnabled,
		LeadTimeText:    tenant.LeadTimeText,
		LogoURL:         tenant.LogoURL,
		PrimaryColor:    tenant.PrimaryColor,
	}

	out.Categories = make([]PublicCategory, 0, len(categories))
	for _, c := range categories {
		out.Categories = append(out.Categories, PublicCategory{ID: c.ID, Name: c.Name})
	}

	out.Products = make([]PublicProduct, 0, len(products))
	for _, p := range products {
		out.Products = append(out.Products, PublicProduct{
			ID:           p.ID,
			CategoryID:   p.CategoryID,
			Name:         p.Name,
			Description:  p.Description,
			BasePrice:    p.BasePrice,
			IsSoldOut:    p.IsSoldOut,
			OptionGroups: groupsByProduct[p.ID],
		})
	}

	return out, nil
}
