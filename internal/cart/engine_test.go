package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =====================
// Catalogのスタブ
// =====================

type catalogStub struct {
	products map[string]CatalogProduct
	err      error
	calls    [][]string
	gate     chan struct{} // 非nilなら応答を待たせる
}

func (c *catalogStub) ProductsByIDs(_ context.Context, ids []string) ([]CatalogProduct, error) {
	c.calls = append(c.calls, ids)
	if c.gate != nil {
		<-c.gate
	}
	if c.err != nil {
		return nil, c.err
	}

	out := make([]CatalogProduct, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestEngine(products map[string]CatalogProduct) (*Engine, *MemoryStorage, *catalogStub) {
	storage := NewMemoryStorage()
	catalog := &catalogStub{products: products}
	return NewEngine(storage, catalog), storage, catalog
}

// =====================
// 追加・数量・削除
// =====================

func TestEngine_AddItem_MergesSameProduct(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")

	assert.NoError(t, e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000}))
	assert.NoError(t, e.AddItem(ctx, NewItem{ProductID: "p1", Name: "otra cosa", UnitPrice: 9999}))
	assert.NoError(t, e.AddItem(ctx, NewItem{ProductID: "p2", Name: "Bebida", UnitPrice: 1500}))
	assert.NoError(t, e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000}))

	items := e.Items()
	assert.Len(t, items, 2)

	// 重複追加は数量加算のみ。後から渡したname/priceは無視される
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, "Pizza", items[0].Name)
	assert.Equal(t, int64(5000), items[0].UnitPrice)

	// 新商品は末尾に追加（挿入順を保つ）
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, int64(1), items[1].Quantity)
}

func TestEngine_AddItem_NoActiveStore_IsNoop(t *testing.T) {
	ctx := context.Background()
	e, storage, _ := newTestEngine(nil)

	assert.NoError(t, e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000}))

	assert.Empty(t, e.Items())
	assert.Empty(t, storage.data)
}

func TestEngine_Aggregates(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")

	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})
	_ = e.AddItem(ctx, NewItem{ProductID: "p1"})
	_ = e.AddItem(ctx, NewItem{ProductID: "p2", Name: "Bebida", UnitPrice: 1500})

	assert.Equal(t, int64(3), e.Count())
	assert.Equal(t, int64(11500), e.Subtotal())

	_ = e.SetQuantity(ctx, "p2", 4)
	assert.Equal(t, int64(6), e.Count())
	assert.Equal(t, int64(16000), e.Subtotal())

	_ = e.RemoveItem(ctx, "p1")
	assert.Equal(t, int64(4), e.Count())
	assert.Equal(t, int64(6000), e.Subtotal())
}

func TestEngine_SetQuantity_ClampsToOne(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})

	// 0以下は1へ。行は消えない
	_ = e.SetQuantity(ctx, "p1", 0)
	assert.Equal(t, int64(1), e.Items()[0].Quantity)

	_ = e.SetQuantity(ctx, "p1", -7)
	assert.Equal(t, int64(1), e.Items()[0].Quantity)
	assert.Len(t, e.Items(), 1)
}

func TestEngine_SetQuantity_UnknownProduct_IsNoop(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})

	_ = e.SetQuantity(ctx, "desconocido", 9)
	assert.Len(t, e.Items(), 1)
	assert.Equal(t, int64(1), e.Items()[0].Quantity)
}

func TestEngine_RemoveItem_Idempotent(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})

	assert.NoError(t, e.RemoveItem(ctx, "p1"))
	assert.NoError(t, e.RemoveItem(ctx, "p1"))
	assert.Empty(t, e.Items())
}

// =====================
// 店舗切替と永続化
// =====================

func TestEngine_StoreIsolation_RoundTrip(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(nil)

	e.SetActiveStore(ctx, "shop-a")
	_ = e.AddItem(ctx, NewItem{ProductID: "a1", Name: "Empanada", UnitPrice: 2000})
	_ = e.AddItem(ctx, NewItem{ProductID: "a1"})

	// 店舗を切り替えるとshop-aの中身は見えない
	e.SetActiveStore(ctx, "shop-b")
	assert.Empty(t, e.Items())

	_ = e.AddItem(ctx, NewItem{ProductID: "b1", Name: "Completo", UnitPrice: 3000})
	assert.Len(t, e.Items(), 1)

	// 戻すとshop-aのproductId→qtyが復元される（名前・価格は照合待ちの仮値）
	e.SetActiveStore(ctx, "shop-a")
	items := e.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "Producto", items[0].Name)
	assert.Equal(t, int64(0), items[0].UnitPrice)
}

func TestEngine_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	catalog := &catalogStub{}

	e1 := NewEngine(storage, catalog)
	e1.SetActiveStore(ctx, "pizza-juan")
	_ = e1.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})
	_ = e1.AddItem(ctx, NewItem{ProductID: "p2", Name: "Bebida", UnitPrice: 1500})
	_ = e1.AddItem(ctx, NewItem{ProductID: "p3", Name: "Postre", UnitPrice: 2500})
	_ = e1.SetQuantity(ctx, "p2", 3)

	// メモリ上の状態を捨てて、同じ保存先から別Engineでロード
	e2 := NewEngine(storage, catalog)
	e2.SetActiveStore(ctx, "pizza-juan")

	got := map[string]int64{}
	for _, l := range e2.Items() {
		got[l.ProductID] = l.Quantity
	}
	assert.Equal(t, map[string]int64{"p1": 1, "p2": 3, "p3": 1}, got)
}

func TestEngine_Clear_DeletesPersistedEntry(t *testing.T) {
	ctx := context.Background()
	e, storage, _ := newTestEngine(nil)
	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})

	_, ok, _ := storage.Read(ctx, "catalog_cart_v1:pizza-juan")
	assert.True(t, ok)

	assert.NoError(t, e.Clear(ctx))
	assert.Empty(t, e.Items())

	// 空配列を書くのではなく、エントリごと消す
	_, ok, _ = storage.Read(ctx, "catalog_cart_v1:pizza-juan")
	assert.False(t, ok)
}

func TestEngine_SetActiveStore_MalformedPersistedData(t *testing.T) {
	ctx := context.Background()
	e, storage, _ := newTestEngine(nil)

	_ = storage.Write(ctx, "catalog_cart_v1:rota", `{esto no es json`)
	e.SetActiveStore(ctx, "rota")
	assert.Empty(t, e.Items())

	_ = storage.Write(ctx, "catalog_cart_v1:rota", `{"productId":"p1","qty":2}`)
	e.SetActiveStore(ctx, "rota")
	assert.Empty(t, e.Items())
}

// =====================
// 照合（reconcile）
// =====================

func TestEngine_Reconcile_DropsInactiveAndMissing(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine(map[string]CatalogProduct{
		"p1": {ID: "p1", Name: "Pizza Napolitana", Price: 5500, IsActive: true},
		"p2": {ID: "p2", Name: "Bebida", Price: 1500, IsActive: false},
	})

	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})
	_ = e.AddItem(ctx, NewItem{ProductID: "p2", Name: "Bebida", UnitPrice: 1500})
	_ = e.AddItem(ctx, NewItem{ProductID: "p3", Name: "Fantasma", UnitPrice: 900})
	_ = e.SetQuantity(ctx, "p1", 2)

	assert.NoError(t, e.Reconcile(ctx, "p1", "p2", "p3"))

	items := e.Items()
	assert.Len(t, items, 1)

	// p1は名前・価格が最新になり、数量はそのまま
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "Pizza Napolitana", items[0].Name)
	assert.Equal(t, int64(5500), items[0].UnitPrice)
	assert.Equal(t, int64(2), items[0].Quantity)
}

func TestEngine_Reconcile_DefaultTargetsOnlyStaleLines(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	catalog := &catalogStub{products: map[string]CatalogProduct{
		"p1": {ID: "p1", Name: "Pizza", Price: 5000, IsActive: true},
	}}

	// p1は保存済み（ロード後は仮値）、p2は手で追加してキャッシュ済み
	_ = storage.Write(ctx, "catalog_cart_v1:pizza-juan", `[{"productId":"p1","qty":2}]`)

	e := NewEngine(storage, catalog)
	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p2", Name: "Bebida", UnitPrice: 1500})

	assert.NoError(t, e.Reconcile(ctx))

	// 問い合わせは仮値の行だけ
	assert.Len(t, catalog.calls, 1)
	assert.Equal(t, []string{"p1"}, catalog.calls[0])

	items := e.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "Pizza", items[0].Name)
	assert.Equal(t, int64(5000), items[0].UnitPrice)
	// キャッシュ済みの行は触らない
	assert.Equal(t, "Bebida", items[1].Name)
}

func TestEngine_Reconcile_CatalogFailure_KeepsStaleValues(t *testing.T) {
	ctx := context.Background()
	e, _, catalog := newTestEngine(nil)
	catalog.err = assert.AnError

	e.SetActiveStore(ctx, "pizza-juan")
	_ = e.AddItem(ctx, NewItem{ProductID: "p1", Name: "Pizza", UnitPrice: 5000})

	// 失敗してもエラーにせず、古いキャッシュのまま使い続ける
	assert.NoError(t, e.Reconcile(ctx, "p1"))

	items := e.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "Pizza", items[0].Name)
	assert.Equal(t, int64(5000), items[0].UnitPrice)
}

func TestEngine_Reconcile_StaleResultDiscardedAfterStoreSwitch(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	catalog := &catalogStub{
		products: map[string]CatalogProduct{
			"a1": {ID: "a1", Name: "Empanada", Price: 2000, IsActive: true},
		},
		gate: make(chan struct{}),
	}

	_ = storage.Write(ctx, "catalog_cart_v1:shop-a", `[{"productId":"a1","qty":1}]`)

	e := NewEngine(storage, catalog)
	e.SetActiveStore(ctx, "shop-a")

	done := make(chan struct{})
	go func() {
		_ = e.Reconcile(ctx)
		close(done)
	}()

	// 照合の応答待ちの間に店舗を切り替える
	e.SetActiveStore(ctx, "shop-b")
	_ = e.AddItem(ctx, NewItem{ProductID: "b1", Name: "Completo", UnitPrice: 3000})

	close(catalog.gate)
	<-done

	// 遅れて届いたshop-aの結果は捨てられ、shop-bには影響しない
	items := e.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "b1", items[0].ProductID)
	assert.Equal(t, "Completo", items[0].Name)
}
