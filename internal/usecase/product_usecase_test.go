package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
)

type productRepoStub struct {
	byID        map[string]model.Product
	created     []model.Product
	updated     []model.Product
	softDeleted []string
}

func (s *productRepoStub) ListByTenant(_ context.Context, tenantID string, onlyActive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.byID {
		if p.TenantID != tenantID {
			continue
		}
		if onlyActive && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *productRepoStub) FindByID(_ context.Context, id string) (model.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) FindByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *productRepoStub) Create(_ context.Context, p model.Product) (model.Product, error) {
	s.created = append(s.created, p)
	return p, nil
}

func (s *productRepoStub) Update(_ context.Context, p model.Product) error {
	s.updated = append(s.updated, p)
	return nil
}

func (s *productRepoStub) SoftDelete(_ context.Context, id string) error {
	s.softDeleted = append(s.softDeleted, id)
	return nil
}

type categoryRepoStub struct {
	byID map[string]model.Category
}

func (s *categoryRepoStub) ListByTenant(_ context.Context, tenantID string, onlyActive bool) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.byID {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *categoryRepoStub) FindByID(_ context.Context, id string) (model.Category, error) {
	c, ok := s.byID[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (s *categoryRepoStub) Create(_ context.Context, c model.Category) (model.Category, error) {
	return c, nil
}

func (s *categoryRepoStub) Update(_ context.Context, c model.Category) error { return nil }

func (s *categoryRepoStub) Delete(_ context.Context, id string) error { return nil }

func newProductFixture() (*ProductUsecase, *productRepoStub) {
	tenants := &tenantRepoStub{
		byOwner: map[string]model.Tenant{
			"owner1": {ID: "t1", OwnerID: "owner1", Slug: "pizza-juan"},
		},
	}
	products := &productRepoStub{byID: map[string]model.Product{}}
	categories := &categoryRepoStub{
		byID: map[string]model.Category{
			"c1":    {ID: "c1", TenantID: "t1", Name: "Pizzas"},
			"other": {ID: "other", TenantID: "t2", Name: "Ajena"},
		},
	}

	uc := NewProductUsecase(
		tenants,
		products,
		categories,
		&seqIDGen{},
		&fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
	return uc, products
}

func TestCreateProduct_Success(t *testing.T) {
	uc, products := newProductFixture()
	categoryID := "c1"

	out, err := uc.Create(context.Background(), CreateProductInput{
		OwnerID:    "owner1",
		CategoryID: &categoryID,
		Name:       "Pizza Napolitana",
		BasePrice:  8900,
	})

	assert.NoError(t, err)
	assert.Equal(t, "t1", out.TenantID)
	assert.True(t, out.IsActive)
	assert.False(t, out.IsSoldOut)
	assert.Equal(t, "c1", *out.CategoryID)
	assert.Len(t, products.created, 1)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc, products := newProductFixture()

	cases := []CreateProductInput{
		{OwnerID: "owner1", Name: "x", BasePrice: 100},
		{OwnerID: "owner1", Name: "Pizza", BasePrice: -1},
	}

	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, he.Status)
	}
	assert.Empty(t, products.created)
}

func TestCreateProduct_ForeignCategoryRejected(t *testing.T) {
	uc, _ := newProductFixture()
	categoryID := "other"

	_, err := uc.Create(context.Background(), CreateProductInput{
		OwnerID:    "owner1",
		CategoryID: &categoryID,
		Name:       "Pizza",
		BasePrice:  100,
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestUpdateProduct_ForeignProductHidden(t *testing.T) {
	uc, products := newProductFixture()
	products.byID["p-ajeno"] = model.Product{ID: "p-ajeno", TenantID: "t2", Name: "Ajeno"}

	_, err := uc.Update(context.Background(), UpdateProductInput{
		OwnerID:   "owner1",
		ProductID: "p-ajeno",
		Name:      "Hackeado",
		BasePrice: 1,
	})

	// 他店の商品は404（存在ごと隠す）
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	assert.Empty(t, products.updated)
}

func TestDeleteProduct_SoftDeletes(t *testing.T) {
	uc, products := newProductFixture()
	products.byID["p1"] = model.Product{ID: "p1", TenantID: "t1", Name: "Pizza"}

	err := uc.Delete(context.Background(), "owner1", "p1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"p1"}, products.softDeleted)
}
