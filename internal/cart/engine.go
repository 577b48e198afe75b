package cart

import (
	"context"
	"sync"
)

// Engineは「今アクティブな店舗」のカート状態を持つ。
// storeKeyは店舗slug。""のときは店舗未選択でカートは常に空。
//
// 1リクエスト1操作だが、同じ端末のEngineは複数リクエストで共有されるので
// mutexで直列化する。店舗切替と照合の競合はepochで守る：
// 切替のたびにepochを進め、古いepochで始まった照合結果は捨てる。
type Engine struct {
	mu      sync.Mutex
	storage Storage
	catalog Catalog

	storeKey string
	lines    []Line
	epoch    uint64
}

// 追加入力。name/unit_priceは追加時点のキャッシュ初期値。
type NewItem struct {
	ProductID string
	Name      string
	UnitPrice int64
}

// DI
func NewEngine(storage Storage, catalog Catalog) *Engine {
	return &Engine{storage: storage, catalog: catalog}
}

// アクティブ店舗を切り替える。メモリ上の行は無条件に捨てる。
// keyが空でなければ、その店舗の保存済みカートをロードする。
// ロード直後の行は仮の名前と価格0のままなので、呼び出し側がReconcileを呼ぶ。
func (e *Engine) SetActiveStore(ctx context.Context, key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.epoch++
	e.storeKey = key
	e.lines = nil

	if key == "" {
		return
	}

	raw, ok, err := e.storage.Read(ctx, storageKey(key))
	if err != nil || !ok {
		// 読めないときは空のカートとして続行（オフラインでも使える）
		return
	}

	for _, p := range decodePersisted(raw) {
		e.lines = append(e.lines, Line{
			ProductID: p.ProductID,
			Name:      placeholderName,
			UnitPrice: 0,
			Quantity:  NormalizeQuantity(p.Qty),
		})
	}
}

func (e *Engine) StoreKey() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.storeKey
}

// 行のコピーを返す（挿入順）。
func (e *Engine) Items() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// Σ quantity
func (e *Engine) Count() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var n int64
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// Σ (unit_price × quantity)
func (e *Engine) Subtotal() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s int64
	for _, l := range e.lines {
		s += l.UnitPrice * l.Quantity
	}
	return s
}

// 商品を1つ追加する。同じ商品があれば数量+1（行は増やさない）。
// 店舗未選択のときは何もしない。店舗を持たないカートは作らせない。
func (e *Engine) AddItem(ctx context.Context, item NewItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.storeKey == "" || item.ProductID == "" {
		return nil
	}

	found := false
	for i := range e.lines {
		if e.lines[i].ProductID == item.ProductID {
			// 既存行のキャッシュの方が新しいとみなし、渡されたname/priceは無視
			e.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		e.lines = append(e.lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
		})
	}

	return e.persistLocked(ctx)
}

// 行を削除する。無ければ何もしない。
func (e *Engine) RemoveItem(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.storeKey == "" {
		return nil
	}

	next := make([]Line, 0, len(e.lines))
	removed := false
	for _, l := range e.lines {
		if l.ProductID == productID {
			removed = true
			continue
		}
		next = append(next, l)
	}
	if !removed {
		return nil
	}

	e.lines = next
	return e.persistLocked(ctx)
}

// 数量を変更する。0以下は1に切り上げ（0での削除はさせない）。
// 行が無ければ何もしない。
func (e *Engine) SetQuantity(ctx context.Context, productID string, qty int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.storeKey == "" {
		return nil
	}
	if qty < 1 {
		qty = 1
	}

	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines[i].Quantity = qty
			return e.persistLocked(ctx)
		}
	}
	return nil
}

// カートを空にして、保存済みエントリ自体を消す（空配列を書くのではない）。
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	if e.storeKey == "" {
		return nil
	}
	return e.storage.Delete(ctx, storageKey(e.storeKey))
}

// カタログと突き合わせて、対象行の名前・価格を最新にする。
// 売り切りや削除で買えなくなった商品の行は静かに落とす。
//
// idsを省略したときは「価格0または仮の名前のまま」の行だけを対象にする。
// カタログ参照に失敗したら古いキャッシュのまま維持する（エラーにはしない）。
func (e *Engine) Reconcile(ctx context.Context, ids ...string) error {
	e.mu.Lock()

	if e.storeKey == "" || len(e.lines) == 0 {
		e.mu.Unlock()
		return nil
	}

	epoch := e.epoch

	target := make(map[string]struct{})
	if len(ids) == 0 {
		for _, l := range e.lines {
			if l.UnitPrice == 0 || l.Name == placeholderName {
				target[l.ProductID] = struct{}{}
			}
		}
	} else {
		for _, id := range ids {
			target[id] = struct{}{}
		}
	}

	// 問い合わせ順は行の挿入順に合わせる
	lookup := make([]string, 0, len(target))
	for _, l := range e.lines {
		if _, ok := target[l.ProductID]; ok {
			lookup = append(lookup, l.ProductID)
		}
	}
	e.mu.Unlock()

	if len(lookup) == 0 {
		return nil
	}

	products, err := e.catalog.ProductsByIDs(ctx, lookup)
	if err != nil {
		// 照合失敗。手元のキャッシュ値で使い続ける
		return nil
	}

	fresh := make(map[string]CatalogProduct, len(products))
	for _, p := range products {
		fresh[p.ID] = p
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// 待っている間に店舗が切り替わっていたら、この結果は捨てる
	if e.epoch != epoch {
		return nil
	}

	changed := false
	next := make([]Line, 0, len(e.lines))
	for _, l := range e.lines {
		if _, ok := target[l.ProductID]; !ok {
			next = append(next, l)
			continue
		}

		p, ok := fresh[l.ProductID]
		if !ok || !p.IsActive {
			// カタログに無い・非公開 → 行ごと落とす
			changed = true
			continue
		}

		if l.Name != p.Name || l.UnitPrice != p.Price {
			changed = true
		}
		l.Name = p.Name
		l.UnitPrice = p.Price
		next = append(next, l)
	}
	e.lines = next

	if changed {
		return e.persistLocked(ctx)
	}
	return nil
}

// 変更のたびに呼ぶ。アクティブ店舗のキーに最小形を書き戻す。
// 呼び出し側でmuを握っていること。
func (e *Engine) persistLocked(ctx context.Context) error {
	if e.storeKey == "" {
		return nil
	}

	raw, err := encodePersisted(e.lines)
	if err != nil {
		return err
	}
	return e.storage.Write(ctx, storageKey(e.storeKey), raw)
}
