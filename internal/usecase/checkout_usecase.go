package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"app/internal/cart"
	"app/internal/checkout"
	"app/internal/repository"
)

type CheckoutPreviewInput struct {
	CustomerName string
	Fulfillment  string
	Address      string
	Note         string
}

// handlerがJSONにして返す。フロントはwa_linkをそのまま開くだけ。
type CheckoutPreviewOutput struct {
	Text   string `json:"text"`
	Total  int64  `json:"total"`
	WaLink string `json:"wa_link"`
}

type CheckoutUsecase struct {
	tenantRepo repository.TenantRepository
	manager    *cart.Manager
}

// DI
func NewCheckoutUsecase(tenantRepo repository.TenantRepository, manager *cart.Manager) *CheckoutUsecase {
	return &CheckoutUsecase{
		tenantRepo: tenantRepo,
		manager:    manager,
	}
}

// 注文メッセージとwa.meリンクを組み立てる。注文レコードは作らない。
func (u *CheckoutUsecase) Preview(ctx context.Context, deviceID string, slug string, in CheckoutPreviewInput) (CheckoutPreviewOutput, error) {
	var out CheckoutPreviewOutput

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

	// 受け取り方法は店舗のフラグで許可されたものだけ
	fulfillment := checkout.Fulfillment(in.Fulfillment)
	switch fulfillment {
	case checkout.FulfillmentPickup:
		if !tenant.PickupEnabled {
			return out, NewHTTPError(http.StatusBadRequest, "pickup not available")
		}
	case checkout.FulfillmentDelivery:
		if !tenant.DeliveryEnabled {
			return out, NewHTTPError(http.StatusBadRequest, "delivery not available")
		}
	default:
		return out, NewHTTPError(http.StatusBadRequest, "fulfillment must be pickup or delivery")
	}

	customerName := strings.TrimSpace(in.CustomerName)
	if utf8.RuneCountInString(customerName) < 2 {
		return out, NewHTTPError(http.StatusBadRequest, "name must be at least 2 characters")
	}

	address := strings.TrimSpace(in.Address)
	if fulfillment == checkout.FulfillmentDelivery && utf8.RuneCountInString(address) < 4 {
		return out, NewHTTPError(http.StatusBadRequest, "address must be at least 4 characters")
	}

	// メッセージを組む前にカタログと突き合わせて最新の名前・価格にする
	engine := u.manager.Engine(deviceID)
	if engine.StoreKey() != slug {
		engine.SetActiveStore(ctx, slug)
	}
	_ = engine.Reconcile(ctx)

	lines := engine.Items()
	if len(lines) == 0 {
		return out, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	items := make([]checkout.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, checkout.Item{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	msg := checkout.BuildOrderMessage(checkout.MessageInput{
		TenantName:   tenant.Name,
		Items:        items,
		Fulfillment:  fulfillment,
		DeliveryFee:  tenant.DeliveryFee,
		Address:      address,
		CustomerName: customerName,
		Note:         in.Note,
	})

	out.Text = msg.Text
	out.Total = msg.Total
	out.WaLink = checkout.BuildWhatsAppLink(tenant.WhatsappPhone, msg.Text)
	return out, nil
}
