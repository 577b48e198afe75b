package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	assert.Equal(t, int64(1), NormalizeQuantity(0))
	assert.Equal(t, int64(1), NormalizeQuantity(-3))
	assert.Equal(t, int64(1), NormalizeQuantity(0.5))
	assert.Equal(t, int64(2), NormalizeQuantity(2.7))
	assert.Equal(t, int64(5), NormalizeQuantity(5))
}

func TestStorageKey_Namespacing(t *testing.T) {
	// 店舗slugごとにキーが分かれて衝突しない
	assert.Equal(t, "catalog_cart_v1:shop-a", storageKey("shop-a"))
	assert.Equal(t, "catalog_cart_v1:shop-b", storageKey("shop-b"))
}

func TestDecodePersisted(t *testing.T) {
	// 正常
	got := decodePersisted(`[{"productId":"p1","qty":2},{"productId":"p2","qty":1}]`)
	assert.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.Equal(t, float64(2), got[0].Qty)

	// 壊れたJSONは「カート無し」
	assert.Nil(t, decodePersisted(`{corrupto`))

	// 配列以外も「カート無し」
	assert.Nil(t, decodePersisted(`{"productId":"p1","qty":2}`))
	assert.Nil(t, decodePersisted(`"hola"`))

	// おかしな要素は読み飛ばす
	got = decodePersisted(`[{"productId":"p1","qty":2},{"productId":123},{"qty":4},null]`)
	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ProductID)

	// 数量は max(1, floor(qty)) に直す
	got = decodePersisted(`[{"productId":"p1","qty":0},{"productId":"p2","qty":2.9},{"productId":"p3","qty":-1}]`)
	assert.Equal(t, float64(1), got[0].Qty)
	assert.Equal(t, float64(2), got[1].Qty)
	assert.Equal(t, float64(1), got[2].Qty)
}

func TestEncodePersisted_MinimalSubsetOnly(t *testing.T) {
	raw, err := encodePersisted([]Line{
		{ProductID: "p1", Name: "Pizza", UnitPrice: 5000, Quantity: 2},
	})
	assert.NoError(t, err)

	// 名前と価格は保存しない（古くなるのでロード時に引き直す）
	assert.Equal(t, `[{"productId":"p1","qty":2}]`, raw)
}
