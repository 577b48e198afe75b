package usecase

import (
	"context"
	"strings"
	"testing"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
)

type tenantRepoStub struct {
	bySlug    map[string]model.Tenant
	byOwner   map[string]model.Tenant
	createErr error
	created   []model.Tenant
	updated   []model.Tenant
}

func (s *tenantRepoStub) Create(_ context.Context, t model.Tenant) (model.Tenant, error) {
	if s.createErr != nil {
		return model.Tenant{}, s.createErr
	}
	s.created = append(s.created, t)
	return t, nil
}

func (s *tenantRepoStub) FindBySlug(_ context.Context, slug string) (model.Tenant, error) {
	t, ok := s.bySlug[slug]
	if !ok {
		return model.Tenant{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *tenantRepoStub) FindByOwnerID(_ context.Context, ownerID string) (model.Tenant, error) {
	t, ok := s.byOwner[ownerID]
	if !ok {
		return model.Tenant{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *tenantRepoStub) Update(_ context.Context, t model.Tenant) error {
	s.updated = append(s.updated, t)
	return nil
}

type catalogStub struct {
	products map[string]cart.CatalogProduct
}

func (c *catalogStub) ProductsByIDs(_ context.Context, ids []string) ([]cart.CatalogProduct, error) {
	var out []cart.CatalogProduct
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newCheckoutFixture() (*CheckoutUsecase, *cart.Manager, *tenantRepoStub) {
	tenants := &tenantRepoStub{
		bySlug: map[string]model.Tenant{
			"pizza-juan": {
				ID:              "t1",
				Name:            "Pizza Juan",
				Slug:            "pizza-juan",
				WhatsappPhone:   "+56 9 1234 5678",
				DeliveryFee:     1500,
				PickupEnabled:   true,
				DeliveryEnabled: true,
				IsActive:        true,
			},
		},
	}

	catalog := &catalogStub{
		products: map[string]cart.CatalogProduct{
			"p1": {ID: "p1", Name: "Pizza", Price: 5000, IsActive: true},
		},
	}

	manager := cart.NewManager(catalog, func(string) cart.Storage {
		return cart.NewMemoryStorage()
	})

	return NewCheckoutUsecase(tenants, manager), manager, tenants
}

func previewInput() CheckoutPreviewInput {
	return CheckoutPreviewInput{
		CustomerName: "Pedro",
		Fulfillment:  "delivery",
		Address:      "Av. Libertad 123",
	}
}

func addPizza(t *testing.T, manager *cart.Manager, deviceID string) {
	t.Helper()
	ctx := context.Background()

	engine := manager.Engine(deviceID)
	engine.SetActiveStore(ctx, "pizza-juan")
	assert.NoError(t, engine.AddItem(ctx, cart.NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000}))
	assert.NoError(t, engine.AddItem(ctx, cart.NewItem{ProductID: "p1"}))
}

func TestCheckoutPreview_Success(t *testing.T) {
	uc, manager, _ := newCheckoutFixture()
	addPizza(t, manager, "dev1")

	out, err := uc.Preview(context.Background(), "dev1", "pizza-juan", previewInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(11500), out.Total)
	assert.Contains(t, out.Text, "Hola! Quiero hacer un pedido en Pizza Juan 🛒")
	assert.Contains(t, out.Text, "• 2x Pizza = $10000")
	assert.Contains(t, out.Text, "Delivery: $1500")
	assert.Contains(t, out.Text, "Dirección: Av. Libertad 123")
	assert.True(t, strings.HasPrefix(out.WaLink, "https://wa.me/56912345678?text="))
}

func TestCheckoutPreview_StoreNotFound(t *testing.T) {
	uc, _, _ := newCheckoutFixture()

	_, err := uc.Preview(context.Background(), "dev1", "no-such-store", previewInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCheckoutPreview_InactiveStoreHidden(t *testing.T) {
	uc, manager, tenants := newCheckoutFixture()
	addPizza(t, manager, "dev1")

	tenant := tenants.bySlug["pizza-juan"]
	tenant.IsActive = false
	tenants.bySlug["pizza-juan"] = tenant

	_, err := uc.Preview(context.Background(), "dev1", "pizza-juan", previewInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCheckoutPreview_FulfillmentRules(t *testing.T) {
	uc, manager, tenants := newCheckoutFixture()
	addPizza(t, manager, "dev1")

	in := previewInput()
	in.Fulfillment = "drone"
	_, err := uc.Preview(context.Background(), "dev1", "pizza-juan", in)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	// 店がdeliveryを止めたら選べない
	tenant := tenants.bySlug["pizza-juan"]
	tenant.DeliveryEnabled = false
	tenants.bySlug["pizza-juan"] = tenant

	_, err = uc.Preview(context.Background(), "dev1", "pizza-juan", previewInput())
	he, ok = AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "delivery not available", he.Message)
}

func TestCheckoutPreview_ValidationRules(t *testing.T) {
	uc, manager, _ := newCheckoutFixture()
	addPizza(t, manager, "dev1")

	// 名前が短い
	in := previewInput()
	in.CustomerName = " P "
	_, err := uc.Preview(context.Background(), "dev1", "pizza-juan", in)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	// delivery なのに住所が短い
	in = previewInput()
	in.Address = "abc"
	_, err = uc.Preview(context.Background(), "dev1", "pizza-juan", in)
	he, ok = AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	// pickupなら住所は不要
	in = previewInput()
	in.Fulfillment = "pickup"
	in.Address = ""
	out, err := uc.Preview(context.Background(), "dev1", "pizza-juan", in)
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), out.Total)
	assert.Contains(t, out.Text, "Retiro en local ✅")
}

func TestCheckoutPreview_EmptyCart(t *testing.T) {
	uc, _, _ := newCheckoutFixture()

	_, err := uc.Preview(context.Background(), "dev1", "pizza-juan", previewInput())

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "cart is empty", he.Message)
}
