package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/shopspring/decimal"
)

// mockTransactor выполняет fn без транзакции и запоминает, чем она закончилась.
type mockTransactor struct {
	calls      int
	rolledBack int
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack++
		return err
	}

	return nil
}

type mockProductRepository struct {
	products    []domain.Product
	entries     map[string]domain.PriceEntry
	listErr     error
	listCalls   int
	lastLimit   int
	lastOffset  int
	lastBook    string
	entriesErr  error
	entriesReqs [][]string
	entryBooks  map[string]string // прайс-лист записи, если отличается от стандартного
	entryBook   string
}

func (m *mockProductRepository) ListProducts(_ context.Context, limit, offset int) ([]domain.Product, error) {
	m.listCalls++
	m.lastLimit, m.lastOffset = limit, offset
	if m.listErr != nil {
		return nil, m.listErr
	}

	if offset >= len(m.products) {
		return []domain.Product{}, nil
	}
	end := offset + limit
	if end > len(m.products) {
		end = len(m.products)
	}

	return append([]domain.Product(nil), m.products[offset:end]...), nil
}

func (m *mockProductRepository) GetPriceEntries(_ context.Context, productIDs []string, priceBookName string) ([]domain.PriceEntry, error) {
	m.entriesReqs = append(m.entriesReqs, productIDs)
	m.lastBook = priceBookName
	if m.entriesErr != nil {
		return nil, m.entriesErr
	}

	res := make([]domain.PriceEntry, 0)
	for _, id := range productIDs {
		for _, entry := range m.entries {
			if entry.ProductID == id {
				res = append(res, entry)
			}
		}
	}

	return res, nil
}

func (m *mockProductRepository) GetPriceEntry(_ context.Context, id, priceBookName string) (*domain.PriceEntry, error) {
	m.entryBook = priceBookName
	entry, ok := m.entries[id]
	if book, found := m.entryBooks[id]; found && book != priceBookName {
		ok = false
	}
	if !ok {
		return nil, e.NewRemoteError(e.ErrPriceEntryNotFound.Error(), e.ErrPriceEntryNotFound)
	}

	return &entry, nil
}

type mockOrderRepository struct {
	orders    map[string]*domain.Order
	activated []string
}

func (m *mockOrderRepository) Get(_ context.Context, id string) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, e.NewRemoteError(e.ErrOrderNotFound.Error(), e.ErrOrderNotFound)
	}

	cp := *order
	return &cp, nil
}

func (m *mockOrderRepository) GetForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	return m.Get(ctx, id)
}

func (m *mockOrderRepository) Activate(_ context.Context, id string) (*domain.Order, error) {
	order := m.orders[id]
	order.Status = domain.OrderStatusActivated
	m.activated = append(m.activated, id)

	cp := *order
	return &cp, nil
}

type mockOrderItemRepository struct {
	items     map[string][]domain.OrderLineItem
	upserts   []string
	upsertErr error
	deleted   []string
	deleteErr error
}

func (m *mockOrderItemRepository) ListByOrder(_ context.Context, orderID string) ([]domain.OrderLineItem, error) {
	return append([]domain.OrderLineItem(nil), m.items[orderID]...), nil
}

func (m *mockOrderItemRepository) UpsertIncrement(_ context.Context, orderID string, entry *domain.PriceEntry) (*domain.OrderLineItem, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	m.upserts = append(m.upserts, entry.ID)

	for i, item := range m.items[orderID] {
		if item.ProductID == entry.ProductID {
			item.Quantity++
			item.TotalPrice = item.ListPrice.Mul(decimal.NewFromInt(item.Quantity))
			m.items[orderID][i] = item
			return &item, nil
		}
	}

	item := domain.OrderLineItem{
		ID:         "li-" + entry.ProductID,
		OrderID:    orderID,
		ProductID:  entry.ProductID,
		ListPrice:  entry.UnitPrice,
		Quantity:   1,
		TotalPrice: entry.UnitPrice,
	}
	m.items[orderID] = append(m.items[orderID], item)

	return &item, nil
}

func (m *mockOrderItemRepository) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

type mockOutboxRepository struct {
	events    []*OutboxEvent
	createErr error
}

func (m *mockOutboxRepository) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.events = append(m.events, event)

	return event, nil
}

func (m *mockOutboxRepository) GetAndMarkAsProcessing(_ context.Context, _ int, _ time.Duration) ([]*OutboxEvent, error) {
	return nil, errors.New("not implemented")
}

func (m *mockOutboxRepository) MarkAsProcessed(_ context.Context, _ int64) error {
	return errors.New("not implemented")
}

func (m *mockOutboxRepository) ReleaseForRetry(_ context.Context, _ int64) error {
	return errors.New("not implemented")
}

func (m *mockOutboxRepository) MarkAsFailed(_ context.Context, _ int64, _ string) error {
	return errors.New("not implemented")
}

type mockCatalogCache struct {
	mu     sync.Mutex
	pages  map[int]*domain.CatalogPage
	getErr error
	sets   []int
}

func (m *mockCatalogCache) GetCatalogPage(_ context.Context, page int) (*domain.CatalogPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}

	return m.pages[page], nil
}

func (m *mockCatalogCache) SetCatalogPage(_ context.Context, page int, catalogPage *domain.CatalogPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets = append(m.sets, page)
	m.pages[page] = catalogPage

	return nil
}

type mockArchive struct {
	saved   map[string]*OrderSnapshot
	deleted []string
}

func (m *mockArchive) Save(_ context.Context, snapshot *OrderSnapshot) (string, error) {
	key := "orders/" + snapshot.OrderID + ".json"
	m.saved[key] = snapshot

	return key, nil
}

func (m *mockArchive) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.saved, key)

	return nil
}

type mockEncoder struct{}

func (mockEncoder) EncodeOrderSent(eventID string, snapshot *OrderSnapshot) ([]byte, error) {
	return []byte(eventID + ":" + snapshot.OrderID), nil
}
