package usecase

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
)

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return "id-" + string(rune('0'+g.n))
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTenantUsecase(tenants *tenantRepoStub) *TenantUsecase {
	return NewTenantUsecase(
		tenants,
		&seqIDGen{},
		&fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		"https://tienda.example",
	)
}

func TestCreateTenant_SlugifiesName(t *testing.T) {
	tenants := &tenantRepoStub{byOwner: map[string]model.Tenant{}, bySlug: map[string]model.Tenant{}}
	uc := newTenantUsecase(tenants)

	out, err := uc.CreateTenant(context.Background(), CreateTenantInput{
		OwnerID:       "owner1",
		Name:          "Café Ñandú 21",
		Type:          "restaurant",
		WhatsappPhone: "+56912345678",
	})

	assert.NoError(t, err)
	assert.Equal(t, "cafe-nandu-21", out.Tenant.Slug)
	assert.Equal(t, "https://tienda.example/t/cafe-nandu-21", out.CatalogURL)
	assert.True(t, out.Tenant.PickupEnabled)
	assert.True(t, out.Tenant.IsActive)
}

func TestCreateTenant_OnePerOwner(t *testing.T) {
	tenants := &tenantRepoStub{
		byOwner: map[string]model.Tenant{"owner1": {ID: "t1"}},
	}
	uc := newTenantUsecase(tenants)

	_, err := uc.CreateTenant(context.Background(), CreateTenantInput{
		OwnerID:       "owner1",
		Name:          "Otro Local",
		Type:          "entrepreneur",
		WhatsappPhone: "+56912345678",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

func TestCreateTenant_SlugConflict(t *testing.T) {
	tenants := &tenantRepoStub{
		byOwner:   map[string]model.Tenant{},
		createErr: repository.ErrSlugTaken,
	}
	uc := newTenantUsecase(tenants)

	_, err := uc.CreateTenant(context.Background(), CreateTenantInput{
		OwnerID:       "owner1",
		Name:          "Pizza Juan",
		Type:          "restaurant",
		WhatsappPhone: "+56912345678",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
	assert.Equal(t, "slug already exists", he.Message)
}

func TestCreateTenant_Validation(t *testing.T) {
	tenants := &tenantRepoStub{byOwner: map[string]model.Tenant{}}
	uc := newTenantUsecase(tenants)

	cases := []CreateTenantInput{
		{OwnerID: "o", Name: "x", Type: "restaurant", WhatsappPhone: "+56912345678"}, // 名前が短い
		{OwnerID: "o", Name: "Pizza Juan", Type: "foodtruck", WhatsappPhone: "+56912345678"},
		{OwnerID: "o", Name: "Pizza Juan", Type: "restaurant", WhatsappPhone: "12345"}, // 数字不足
	}

	for _, in := range cases {
		_, err := uc.CreateTenant(context.Background(), in)
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, 400, he.Status)
	}
	assert.Empty(t, tenants.created)
}

func TestUpdateSettings_KeepsSlug(t *testing.T) {
	tenants := &tenantRepoStub{
		byOwner: map[string]model.Tenant{
			"owner1": {ID: "t1", OwnerID: "owner1", Name: "Pizza Juan", Slug: "pizza-juan"},
		},
	}
	uc := newTenantUsecase(tenants)

	out, err := uc.UpdateSettings(context.Background(), UpdateSettingsInput{
		OwnerID:         "owner1",
		Name:            "Pizzería Juan",
		WhatsappPhone:   "+56 9 8765 4321",
		Address:         "Calle Falsa 123",
		DeliveryFee:     2000,
		PickupEnabled:   true,
		DeliveryEnabled: true,
		LeadTimeText:    "30-40 min",
	})

	assert.NoError(t, err)
	// 名前を変えても公開URLは変わらない
	assert.Equal(t, "pizza-juan", out.Tenant.Slug)
	assert.Equal(t, "Pizzería Juan", out.Tenant.Name)
	assert.Equal(t, int64(2000), out.Tenant.DeliveryFee)
	assert.Len(t, tenants.updated, 1)
}

func TestUpdateSettings_RejectsNegativeFee(t *testing.T) {
	tenants := &tenantRepoStub{
		byOwner: map[string]model.Tenant{
			"owner1": {ID: "t1", OwnerID: "owner1", Slug: "pizza-juan"},
		},
	}
	uc := newTenantUsecase(tenants)

	_, err := uc.UpdateSettings(context.Background(), UpdateSettingsInput{
		OwnerID:       "owner1",
		Name:          "Pizza Juan",
		WhatsappPhone: "+56912345678",
		DeliveryFee:   -1,
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestQRInfo(t *testing.T) {
	tenants := &tenantRepoStub{
		byOwner: map[string]model.Tenant{
			"owner1": {ID: "t1", OwnerID: "owner1", Slug: "pizza-juan"},
		},
	}
	uc := newTenantUsecase(tenants)

	out, err := uc.QRInfo(context.Background(), "owner1")

	assert.NoError(t, err)
	assert.Equal(t, "https://tienda.example/t/pizza-juan", out.CatalogURL)
	assert.Contains(t, out.QRImageURL, "data=https%3A%2F%2Ftienda.example%2Ft%2Fpizza-juan")
}
