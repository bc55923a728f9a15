package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// MemoryStore объединённое in-memory хранилище: каталог, корзина, заявки, настройки.
// Всё состояние живёт до перезапуска процесса.
type MemoryStore struct {
	mu          sync.RWMutex
	farmers     []domain.Farmer
	products    []domain.Product // новые товары в начале списка
	cartLines   []domain.CartLine
	cartVisible bool
	rfqs        []domain.RFQRequest // новые заявки в начале списка
	currency    domain.Currency
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{currency: domain.CurrencyINR}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var (
	_ CatalogRepository  = (*MemoryStore)(nil)
	_ SettingsRepository = (*MemoryStore)(nil)
)

// AddFarmer регистрирует фермера при загрузке каталога
func (m *MemoryStore) AddFarmer(ctx context.Context, f *domain.Farmer) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	m.farmers = append(m.farmers, *f)
	return nil
}

func (m *MemoryStore) GetFarmer(ctx context.Context, id string) (*domain.Farmer, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, f := range m.farmers {
		if f.ID == id {
			cp := f
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListFarmers(ctx context.Context) ([]domain.Farmer, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Farmer, len(m.farmers))
	copy(out, m.farmers)
	return out, nil
}

func (m *MemoryStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// ListProducts возвращает копию каталога в порядке отображения
func (m *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

// AddProduct добавляет товар в начало каталога
func (m *MemoryStore) AddProduct(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.products = append([]domain.Product{*p}, m.products...)
	return nil
}

func (m *MemoryStore) Currency(ctx context.Context) (domain.Currency, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.currency, nil
}

func (m *MemoryStore) SetCurrency(ctx context.Context, c domain.Currency) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.currency = c
	return nil
}

// CartRepository implementation on wrapper type
type MemoryCart struct{ store *MemoryStore }

func NewMemoryCart(store *MemoryStore) *MemoryCart { return &MemoryCart{store: store} }

var _ CartRepository = (*MemoryCart)(nil)

func (mc *MemoryCart) Lines(ctx context.Context) ([]domain.CartLine, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.CartLine, len(mc.store.cartLines))
	copy(out, mc.store.cartLines)
	return out, nil
}

func (mc *MemoryCart) GetLine(ctx context.Context, productID string) (*domain.CartLine, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	for _, l := range mc.store.cartLines {
		if l.ProductID == productID {
			cp := l
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// UpsertLine заменяет позицию с тем же product id или добавляет новую в конец
func (mc *MemoryCart) UpsertLine(ctx context.Context, l *domain.CartLine) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.cartLines {
		if mc.store.cartLines[i].ProductID == l.ProductID {
			mc.store.cartLines[i] = *l
			return nil
		}
	}
	mc.store.cartLines = append(mc.store.cartLines, *l)
	return nil
}

// RemoveLine удаляет позицию; отсутствие позиции не ошибка
func (mc *MemoryCart) RemoveLine(ctx context.Context, productID string) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for i := range mc.store.cartLines {
		if mc.store.cartLines[i].ProductID == productID {
			mc.store.cartLines = append(mc.store.cartLines[:i], mc.store.cartLines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (mc *MemoryCart) Clear(ctx context.Context) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.cartLines = nil
	return nil
}

func (mc *MemoryCart) Visible(ctx context.Context) (bool, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	return mc.store.cartVisible, nil
}

func (mc *MemoryCart) SetVisible(ctx context.Context, v bool) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	mc.store.cartVisible = v
	return nil
}

// RFQRepository implementation on wrapper type
type MemoryRFQ struct{ store *MemoryStore }

func NewMemoryRFQ(store *MemoryStore) *MemoryRFQ { return &MemoryRFQ{store: store} }

var _ RFQRepository = (*MemoryRFQ)(nil)

// Prepend добавляет заявку в начало списка
func (mr *MemoryRFQ) Prepend(ctx context.Context, r *domain.RFQRequest) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	mr.store.rfqs = append([]domain.RFQRequest{*r}, mr.store.rfqs...)
	return nil
}

func (mr *MemoryRFQ) List(ctx context.Context) ([]domain.RFQRequest, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]domain.RFQRequest, len(mr.store.rfqs))
	copy(out, mr.store.rfqs)
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory берём блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
