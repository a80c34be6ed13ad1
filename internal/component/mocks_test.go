package component

import (
	"context"
	"sync"

	"github.com/DRSN-tech/product-ordering/internal/domain"
)

type mockCatalogSource struct {
	mu    sync.Mutex
	pages map[int]*domain.CatalogPage
	errs  map[int]error
	calls []int
	// block, если задан, удерживает загрузку до закрытия канала
	block chan struct{}
	// started получает номер страницы в момент начала загрузки
	started chan int
}

func newMockCatalogSource() *mockCatalogSource {
	return &mockCatalogSource{
		pages: make(map[int]*domain.CatalogPage),
		errs:  make(map[int]error),
	}
}

func (m *mockCatalogSource) FetchCatalogPage(_ context.Context, page int) (*domain.CatalogPage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, page)
	block, started := m.block, m.started
	res, err := m.pages[page], m.errs[page]
	m.mu.Unlock()

	if started != nil {
		started <- page
	}
	if block != nil {
		<-block
	}

	if err != nil {
		return nil, err
	}
	if res == nil {
		return &domain.CatalogPage{}, nil
	}

	return res, nil
}

func (m *mockCatalogSource) Calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]int(nil), m.calls...)
}

type mockOrderRemote struct {
	mu sync.Mutex

	items    []domain.OrderLineItem
	fetchErr error
	fetches  int
	// fetchHook, если задан, вызывается вместо чтения items
	fetchHook func(n int) ([]domain.OrderLineItem, error)

	addErr   error
	addCalls []domain.IntentMessage
	addHook  func()

	deleteErr   error
	deleteCalls []string

	sent      bool
	sendErr   error
	sendCalls int

	journal []string
}

func (m *mockOrderRemote) FetchOrderLineItems(_ context.Context, _ string) ([]domain.OrderLineItem, error) {
	m.mu.Lock()
	m.fetches++
	n := m.fetches
	hook := m.fetchHook
	items, err := append([]domain.OrderLineItem(nil), m.items...), m.fetchErr
	m.journal = append(m.journal, "fetch")
	m.mu.Unlock()

	if hook != nil {
		return hook(n)
	}

	return items, err
}

func (m *mockOrderRemote) AddOrIncrementLineItem(_ context.Context, _ string, productID, priceEntryID string) error {
	m.mu.Lock()
	hook := m.addHook
	m.mu.Unlock()

	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls = append(m.addCalls, domain.NewIntentMessage(productID, priceEntryID))
	m.journal = append(m.journal, "add")

	return m.addErr
}

func (m *mockOrderRemote) DeleteLineItem(_ context.Context, lineItemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, lineItemID)
	m.journal = append(m.journal, "delete")

	return m.deleteErr
}

func (m *mockOrderRemote) SendOrder(_ context.Context, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls++
	m.journal = append(m.journal, "send")

	return m.sent, m.sendErr
}

func (m *mockOrderRemote) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.fetches
}

func (m *mockOrderRemote) Journal() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.journal...)
}

type mockOrderContexts struct {
	mu    sync.Mutex
	ctx   *domain.OrderContext
	err   error
	calls int
	// next, если задан, отдаётся начиная со второго вызова
	next *domain.OrderContext
}

func (m *mockOrderContexts) GetOrderContext(_ context.Context, _ string) (*domain.OrderContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	if m.calls > 1 && m.next != nil {
		return m.next, nil
	}

	return m.ctx, nil
}

func (m *mockOrderContexts) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}
