package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"app/internal/domain/model"
	"app/internal/repository"
)

type CreateOptionGroupInput struct {
	OwnerID   string
	ProductID string
	Name      string
	Type      string
	Required  bool
	SortOrder int
}

type UpdateOptionGroupInput struct {
	OwnerID   string
	GroupID   string
	Name      string
	Type      string
	Required  bool
	SortOrder int
}

type CreateOptionInput struct {
	OwnerID    string
	GroupID    string
	Name       string
	PriceDelta int64
	SortOrder  int
}

type UpdateOptionInput struct {
	OwnerID    string
	OptionID   string
	Name       string
	PriceDelta int64
	SortOrder  int
	IsActive   bool
}

// グループとその中身をまとめて返す形
type OptionGroupOutput struct {
	Group   model.OptionGroup `json:"group"`
	Options []model.Option    `json:"options"`
}

type OptionUsecase struct {
	tenantRepo  repository.TenantRepository
	productRepo repository.ProductRepository
	optionRepo  repository.OptionRepository
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewOptionUsecase(
	tenantRepo repository.TenantRepository,
	productRepo repository.ProductRepository,
	optionRepo repository.OptionRepository,
	idGen IDGenerator,
	clock Clock,
) *OptionUsecase {
	return &OptionUsecase{
		tenantRepo:  tenantRepo,
		productRepo: productRepo,
		optionRepo:  optionRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

// 商品のオプショングループ一覧（中身のオプション込み）
func (u *OptionUsecase) ListGroups(ctx context.Context, ownerID string, productID string) ([]OptionGroupOutput, error) {
	if _, err := u.ownedProduct(ctx, ownerID, productID); err != nil {
		return nil, err
	}

	groups, err := u.optionRepo.ListGroupsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := make([]OptionGroupOutput, 0, len(groups))
	for _, g := range groups {
		options, err := u.optionRepo.ListOptionsByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OptionGroupOutput{Group: g, Options: options})
	}
	return out, nil
}

func (u *OptionUsecase) CreateGroup(ctx context.Context, in CreateOptionGroupInput) (model.OptionGroup, error) {
	var out model.OptionGroup

	name, err := validateOptionName(in.Name)
	if err != nil {
		return out, err
	}
	groupType, err := validateGroupType(in.Type)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	product, err := u.ownedProduct(ctx, in.OwnerID, in.ProductID)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	group := model.OptionGroup{
		ID:        u.idGen.NewID(),
		TenantID:  product.TenantID,
		ProductID: product.ID,
		Name:      name,
		Type:      groupType,
		Required:  in.Required,
		SortOrder: in.SortOrder,
		Timestamp: model.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return u.optionRepo.CreateGroup(ctx, group)
}

func (u *OptionUsecase) UpdateGroup(ctx context.Context, in UpdateOptionGroupInput) (model.OptionGroup, error) {
	var out model.OptionGroup

	name, err := validateOptionName(in.Name)
	if err != nil {
		return out, err
	}
	groupType, err := validateGroupType(in.Type)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	group, err := u.ownedGroup(ctx, in.OwnerID, in.GroupID)
	if err != nil {
		return out, err
	}

	group.Name = name
	group.Type = groupType
	group.Required = in.Required
	group.SortOrder = in.SortOrder
	group.Timestamp.UpdatedAt = u.clock.Now()

	if err := u.optionRepo.UpdateGroup(ctx, group); err != nil {
		return out, err
	}
	return group, nil
}

// グループ削除は中のオプションも一緒に消える
func (u *OptionUsecase) DeleteGroup(ctx context.Context, ownerID string, groupID string) error {
	group, err := u.ownedGroup(ctx, ownerID, groupID)
	if err != nil {
		return err
	}
	return u.optionRepo.DeleteGroup(ctx, group.ID)
}

func (u *OptionUsecase) CreateOption(ctx context.Context, in CreateOptionInput) (model.Option, error) {
	var out model.Option

	name, err := validateOptionName(in.Name)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	group, err := u.ownedGroup(ctx, in.OwnerID, in.GroupID)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	option := model.Option{
		ID:         u.idGen.NewID(),
		TenantID:   group.TenantID,
		GroupID:    group.ID,
		Name:       name,
		PriceDelta: in.PriceDelta,
		SortOrder:  in.SortOrder,
		IsActive:   true,
		Timestamp: model.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return u.optionRepo.CreateOption(ctx, option)
}

func (u *OptionUsecase) UpdateOption(ctx context.Context, in UpdateOptionInput) (model.Option, error) {
	var out model.Option

	name, err := validateOptionName(in.Name)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	option, err := u.ownedOption(ctx, in.OwnerID, in.OptionID)
	if err != nil {
		return out, err
	}

	option.Name = name
	option.PriceDelta = in.PriceDelta
	option.SortOrder = in.SortOrder
	option.IsActive = in.IsActive
	option.Timestamp.UpdatedAt = u.clock.Now()

	if err := u.optionRepo.UpdateOption(ctx, option); err != nil {
		return out, err
	}
	return option, nil
}

func (u *OptionUsecase) DeleteOption(ctx context.Context, ownerID string, optionID string) error {
	option, err := u.ownedOption(ctx, ownerID, optionID)
	if err != nil {
		return err
	}
	return u.optionRepo.DeleteOption(ctx, option.ID)
}

func (u *OptionUsecase) myTenant(ctx context.Context, ownerID string) (model.Tenant, error) {
	tenant, err := u.tenantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Tenant{}, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return model.Tenant{}, err
	}
	return tenant, nil
}

func (u *OptionUsecase) ownedProduct(ctx context.Context, ownerID string, productID string) (model.Product, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return model.Product{}, err
	}

	product, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, err
	}
	if product.TenantID != tenant.ID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return product, nil
}

func (u *OptionUsecase) ownedGroup(ctx context.Context, ownerID string, groupID string) (model.OptionGroup, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return model.OptionGroup{}, err
	}

	group, err := u.optionRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.OptionGroup{}, NewHTTPError(http.StatusNotFound, "option group not found")
		}
		return model.OptionGroup{}, err
	}
	if group.TenantID != tenant.ID {
		return model.OptionGroup{}, NewHTTPError(http.StatusNotFound, "option group not found")
	}
	return group, nil
}

func (u *OptionUsecase) ownedOption(ctx context.Context, ownerID string, optionID string) (model.Option, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return model.Option{}, err
	}

	option, err := u.optionRepo.FindOptionByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Option{}, NewHTTPError(http.StatusNotFound, "option not found")
		}
		return model.Option{}, err
	}
	if option.TenantID != tenant.ID {
		return model.Option{}, NewHTTPError(http.StatusNotFound, "option not found")
	}
	return option, nil
}

func validateOptionName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 60 {
		return "", NewHTTPError(http.StatusBadRequest, "name must be 2-60 characters")
	}
	return trimmed, nil
}

func validateGroupType(t string) (model.OptionGroupType, error) {
	groupType := model.OptionGroupType(t)
	if groupType != model.OptionGroupTypeSingle && groupType != model.OptionGroupTypeMultiple {
		return "", NewHTTPError(http.StatusBadRequest, "type must be single or multiple")
	}
	return groupType, nil
}
