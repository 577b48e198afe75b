package cart

import "sync"

// 端末ごとのStorageを作る。Redis実装は端末IDでキーを分ける。
type StorageFactory func(deviceID string) Storage

// 端末ID→Engineの置き場。グローバルなシングルトンは作らず、
// main.goで組み立ててhandlerへ渡す。
type Manager struct {
	mu      sync.Mutex
	catalog Catalog
	factory StorageFactory
	engines map[string]*Engine
}

// DI
func NewManager(catalog Catalog, factory StorageFactory) *Manager {
	return &Manager{
		catalog: catalog,
		factory: factory,
		engines: make(map[string]*Engine),
	}
}

// 端末のEngineを取得（無ければ作る）。
func (m *Manager) Engine(deviceID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.engines[deviceID]; ok {
		return e
	}

	e := NewEngine(m.factory(deviceID), m.catalog)
	m.engines[deviceID] = e
	return e
}
