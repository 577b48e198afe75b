package usecase

import (
	"context"

	"app/internal/cart"
)

type AddCartItemInput struct {
	ProductID string
	Name      string
	Price     int64
}

// handlerがJSONにして返すカートの形
type CartOutput struct {
	StoreKey string      `json:"store_key"`
	Items    []cart.Line `json:"items"`
	Count    int64       `json:"count"`
	Subtotal int64       `json:"subtotal"`
}

type CartUsecase struct {
	manager *cart.Manager
}

// DI
func NewCartUsecase(manager *cart.Manager) *CartUsecase {
	return &CartUsecase{manager: manager}
}

// カート取得。店舗を切り替えてから全体を照合する。
func (u *CartUsecase) GetCart(ctx context.Context, deviceID string, slug string) (CartOutput, error) {
	engine := u.engineFor(ctx, deviceID, slug)
	_ = engine.Reconcile(ctx)
	return u.snapshot(engine), nil
}

// 追加。追加した商品だけ照合して名前と価格を確定させる。
func (u *CartUsecase) AddItem(ctx context.Context, deviceID string, slug string, in AddCartItemInput) (CartOutput, error) {
	engine := u.engineFor(ctx, deviceID, slug)

	if err := engine.AddItem(ctx, cart.NewItem{
		ProductID: in.ProductID,
		Name:      in.Name,
		UnitPrice: in.Price,
	}); err != nil {
		return CartOutput{}, err
	}

	_ = engine.Reconcile(ctx, in.ProductID)
	return u.snapshot(engine), nil
}

// 数量変更。JSONの数値はfloatで来るのでここで整数化する。
func (u *CartUsecase) SetQuantity(ctx context.Context, deviceID string, slug string, productID string, qty float64) (CartOutput, error) {
	engine := u.engineFor(ctx, deviceID, slug)

	if err := engine.SetQuantity(ctx, productID, cart.NormalizeQuantity(qty)); err != nil {
		return CartOutput{}, err
	}
	return u.snapshot(engine), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, deviceID string, slug string, productID string) (CartOutput, error) {
	engine := u.engineFor(ctx, deviceID, slug)

	if err := engine.RemoveItem(ctx, productID); err != nil {
		return CartOutput{}, err
	}
	return u.snapshot(engine), nil
}

func (u *CartUsecase) Clear(ctx context.Context, deviceID string, slug string) (CartOutput, error) {
	engine := u.engineFor(ctx, deviceID, slug)

	if err := engine.Clear(ctx); err != nil {
		return CartOutput{}, err
	}
	return u.snapshot(engine), nil
}

// 端末のEngineを取り、アクティブ店舗がslugと違えば切り替える。
func (u *CartUsecase) engineFor(ctx context.Context, deviceID string, slug string) *cart.Engine {
	engine := u.manager.Engine(deviceID)
	if engine.StoreKey() != slug {
		engine.SetActiveStore(ctx, slug)
	}
	return engine
}

func (u *CartUsecase) snapshot(engine *cart.Engine) CartOutput {
	return CartOutput{
		StoreKey: engine.StoreKey(),
		Items:    engine.Items(),
		Count:    engine.Count(),
		Subtotal: engine.Subtotal(),
	}
}
