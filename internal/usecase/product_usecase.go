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

type CreateProductInput struct {
	OwnerID     string
	CategoryID  *string
	Name        string
	Description string
	BasePrice   int64
}

type UpdateProductInput struct {
	OwnerID     string
	ProductID   string
	CategoryID  *string
	Name        string
	Description string
	BasePrice   int64
	IsActive    bool
	IsSoldOut   bool
}

type ProductUsecase struct {
	tenantRepo   repository.TenantRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	idGen        IDGenerator
	clock        Clock
}

// DI
func NewProductUsecase(
	tenantRepo repository.TenantRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	idGen IDGenerator,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		tenantRepo:   tenantRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

func (u *ProductUsecase) List(ctx context.Context, ownerID string) ([]model.Product, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return u.productRepo.ListByTenant(ctx, tenant.ID, false)
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	var out model.Product

	name, description, err := validateProductFields(in.Name, in.Description, in.BasePrice)
	if err != nil {
		return out, err
	}

	tenant, err := u.myTenant(ctx, in.OwnerID)
	if err != nil {
		return out, err
	}

	categoryID, err := u.resolveCategory(ctx, tenant.ID, in.CategoryID)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	product := model.Product{
		ID:          u.idGen.NewID(),
		TenantID:    tenant.ID,
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		BasePrice:   in.BasePrice,
		IsActive:    true,
		IsSoldOut:   false,
		Timestamp: model.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return u.productRepo.Create(ctx, product)
}

func (u *ProductUsecase) Update(ctx context.Context, in UpdateProductInput) (model.Product, error) {
	var out model.Product

	name, description, err := validateProductFields(in.Name, in.Description, in.BasePrice)
	if err != nil {
		return out, err
	}

	tenant, product, err := u.ownedProduct(ctx, in.OwnerID, in.ProductID)
	if err != nil {
		return out, err
	}

	categoryID, err := u.resolveCategory(ctx, tenant.ID, in.CategoryID)
	if err != nil {
		return out, err
	}

	product.CategoryID = categoryID
	product.Name = name
	product.Description = description
	product.BasePrice = in.BasePrice
	product.IsActive = in.IsActive
	product.IsSoldOut = in.IsSoldOut
	product.Timestamp.UpdatedAt = u.clock.Now()

	if err := u.productRepo.Update(ctx, product); err != nil {
		return out, err
	}
	return product, nil
}

// 論理削除。既存カートの行は次のreconcileで静かに落ちる。
func (u *ProductUsecase) Delete(ctx context.Context, ownerID string, productID string) error {
	_, product, err := u.ownedProduct(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	return u.productRepo.SoftDelete(ctx, product.ID)
}

func (u *ProductUsecase) myTenant(ctx context.Context, ownerID string) (model.Tenant, error) {
	tenant, err := u.tenantRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Tenant{}, NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return model.Tenant{}, err
	}
	return tenant, nil
}

func (u *ProductUsecase) ownedProduct(ctx context.Context, ownerID string, productID string) (model.Tenant, model.Product, error) {
	tenant, err := u.myTenant(ctx, ownerID)
	if err != nil {
		return model.Tenant{}, model.Product{}, err
	}

	product, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Tenant{}, model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Tenant{}, model.Product{}, err
	}
	if product.TenantID != tenant.ID {
		return model.Tenant{}, model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return tenant, product, nil
}

// カテゴリは任意。指定されたら自店のものかを確認する。
func (u *ProductUsecase) resolveCategory(ctx context.Context, tenantID string, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}

	category, err := u.categoryRepo.FindByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewHTTPError(http.StatusBadRequest, "category not found")
		}
		return nil, err
	}
	if category.TenantID != tenantID {
		return nil, NewHTTPError(http.StatusBadRequest, "category not found")
	}

	id := category.ID
	return &id, nil
}

func validateProductFields(name string, description string, basePrice int64) (string, string, error) {
	trimmedName := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmedName); n < 2 || n > 60 {
		return "", "", NewHTTPError(http.StatusBadRequest, "name must be 2-60 characters")
	}

	trimmedDesc := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmedDesc) > 200 {
		return "", "", NewHTTPError(http.StatusBadRequest, "description must be at most 200 characters")
	}

	if basePrice < 0 {
		return "", "", NewHTTPError(http.StatusBadRequest, "base_price must be >= 0")
	}

	return trimmedName, trimmedDesc, nil
}
