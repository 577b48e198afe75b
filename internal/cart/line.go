package cart

import (
	"encoding/json"
	"math"
)

// 永続化キーの名前空間。店舗slugと組み合わせてキーにする。
const Namespace = "catalog_cart_v1"

// 未照合の行に入れる仮の表示名。
// 照合（reconcile）が終わるまで名前・価格は信用しない。
const placeholderName = "Producto"

// カートの1行。name/unit_priceはカタログのキャッシュで、古い可能性がある。
type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	Quantity  int64  `json:"qty"`
}

// 永続化するのは最小限（productIdとqtyだけ）。
// 名前と価格は古くなるので保存せず、ロード時にカタログから引き直す。
type persistedLine struct {
	ProductID string  `json:"productId"`
	Qty       float64 `json:"qty"`
}

func storageKey(storeKey string) string {
	return Namespace + ":" + storeKey
}

// 数量の正規化。max(1, floor(q))。
// 0以下や小数は1に切り上げる（削除はRemoveItemだけ）。
func NormalizeQuantity(q float64) int64 {
	n := int64(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}

// 保存された生データを行に戻す。
// 壊れたJSON・配列以外・おかしな要素は捨てて「カート無し」として扱う。
func decodePersisted(raw string) []persistedLine {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	out := make([]persistedLine, 0, len(entries))
	for _, e := range entries {
		var p persistedLine
		if err := json.Unmarshal(e, &p); err != nil {
			continue
		}
		if p.ProductID == "" {
			continue
		}
		p.Qty = float64(NormalizeQuantity(p.Qty))
		out = append(out, p)
	}
	return out
}

func encodePersisted(lines []Line) (string, error) {
	minimal := make([]persistedLine, 0, len(lines))
	for _, l := range lines {
		minimal = append(minimal, persistedLine{ProductID: l.ProductID, Qty: float64(l.Quantity)})
	}

	b, err := json.Marshal(minimal)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
