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

type CreateCategoryInput struct {
	OwnerID   string
	Name      string
	SortOrder int
}

type UpdateCategoryInput struct {
	OwnerID    string
	CategoryID string
	Name       string
	SortOrder  int
	IsActive   bool
}

type CategoryUsecase struct {
	tenantRepo   repository.TenantRepository
	categoryRepo repository.CategoryRepository
	idGen        IDGenerator
	clock        Clock
}

// DI
func NewCategoryUsecase(
	tenantRepo repository.TenantRepository,
	categoryRepo repository.CategoryRepository,
	idGen IDGenerator,
	clock Clock,
) *CategoryUsecase {
	return &CategoryUsecase{
		tenantRepo:   tenantRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// 管理画面は非公開カテゴリも含めて全部返す
func (u *CategoryUsecase) List(ctx context.Context, ownerID string) ([]model.Category, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return u.categoryRepo.ListByTenant(ctx, tenant.ID, false)
}

func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	var out model.Category

	name, err := validateCategoryName(in.Name)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	tenant, err := u.myTenant(ctx, in.OwnerID)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	category := model.Category{
		ID:        u.idGen.NewID(),
		TenantID:  tenant.ID,
		Name:      name,
		SortOrder: in.SortOrder,
		IsActive:  true,
		Timestamp: model.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return u.categoryRepo.Create(ctx, category)
}

func (u *CategoryUsecase) Update(ctx context.Context, in UpdateCategoryInput) (model.Category, error) {
	var out model.Category

	name, err := validateCategoryName(in.Name)
	if err != nil {
		return out, err
	}
	if in.SortOrder < 0 {
		return out, NewHTTPError(http.StatusBadRequest, "sort_order must be >= 0")
	}

	category, err := u.ownedCategory(ctx, in.OwnerID, in.CategoryID)
	if err != nil {
		return out, err
	}

	category.Name = name
	category.SortOrder = in.SortOrder
	category.IsActive = in.IsActive
	category.Timestamp.UpdatedAt = u.clock.Now()

	if err := u.categoryRepo.Update(ctx, category); err != nil {
		return out, err
	}
	return category, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, ownerID string, categoryID string) error {
	category, err := u.ownedCategory(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	return u.categoryRepo.Delete(ctx, category.ID)
}

func (u *CategoryUsecase) myTenant(ctx context.Context, ownerID string) (model.Tenant, error) {
	tenant, err := u.tenantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Tenant{}, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return model.Tenant{}, err
	}
	return tenant, nil
}

// 他店のカテゴリは存在ごと隠す（403ではなく404）
func (u *CategoryUsecase) ownedCategory(ctx context.Context, ownerID string, categoryID string) (model.Category, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return model.Category{}, err
	}

	category, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Category{}, err
	}
	if category.TenantID != tenant.ID {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	return category, nil
}

func validateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 60 {
		return "", NewHTTPError(http.StatusBadRequest, "name must be 2-60 characters")
	}
	return trimmed, nil
}
