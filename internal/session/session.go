// Package session держит смонтированные компоненты для каждого клиента:
// одну шину, каталог и компонент заказа на сессию.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/bus"
	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/component"
	"github.com/DRSN-tech/product-ordering/internal/notify"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/google/uuid"
)

const notificationsLimit = 100

// Session — аналог страницы, на которой рядом смонтированы каталог и заказ.
// Компоненты не знают друг о друге и общаются только через шину сессии.
type Session struct {
	ID       string
	OrderID  string
	Bus      *bus.MessageBus
	Notes    *notify.Collector
	Catalog  *component.Catalog
	Composer *component.OrderComposer

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

// Manager создаёт, выдаёт и закрывает сессии. Простаивающие сессии закрываются по TTL.
type Manager struct {
	source component.CatalogSource
	remote component.OrderItemsRemote
	orders component.OrderContextProvider
	cfg    *cfg.SessionCfg
	logger logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewManager(
	source component.CatalogSource,
	remote component.OrderItemsRemote,
	orders component.OrderContextProvider,
	cfg *cfg.SessionCfg,
	logger logger.Logger,
) *Manager {
	return &Manager{
		source:   source,
		remote:   remote,
		orders:   orders,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
}

// Create монтирует компоненты для заказа orderID. Компонент заказа монтируется первым,
// чтобы подписка на шину существовала до любых действий в каталоге.
// Ошибка загрузки заказа отменяет создание сессии, ошибка первой страницы каталога — нет.
func (m *Manager) Create(ctx context.Context, orderID string) (*Session, error) {
	const op = "Manager.Create"

	if orderID == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	m.mu.Lock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return nil, e.Wrap(op, e.ErrTooManySessions)
	}
	m.mu.Unlock()

	id := uuid.NewString()
	notes := notify.NewCollector(notificationsLimit)
	notifier := notify.Multi{notes, notify.NewLogNotifier(m.logger, "session "+id)}
	b := bus.NewMessageBus()
	opts := component.OrderComposerOptions{StaleRefreshGuard: m.cfg.StaleRefreshGuard}

	s := &Session{
		ID:       id,
		OrderID:  orderID,
		Bus:      b,
		Notes:    notes,
		Catalog:  component.NewCatalog(m.source, b, notifier, m.logger),
		Composer: component.NewOrderComposer(orderID, m.remote, m.orders, b, notifier, m.logger, opts),
		lastSeen: m.now(),
	}

	if err := s.Composer.Mount(ctx); err != nil {
		s.Composer.Unmount()
		return nil, e.Wrap(op, err)
	}

	if err := s.Catalog.Mount(ctx); err != nil {
		m.logger.Warnf("session %s: first catalog page: %v", id, err)
	}

	m.mu.Lock()
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		s.Composer.Unmount()
		return nil, e.Wrap(op, e.ErrTooManySessions)
	}
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Infof("session %s opened for order %s", id, orderID)
	return s, nil
}

// Get возвращает сессию и продлевает её жизнь.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return nil, e.ErrSessionNotFound
	}

	s.touch(m.now())
	return s, nil
}

// Close размонтирует компоненты и удаляет сессию.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return e.ErrSessionNotFound
	}

	s.Composer.Unmount()
	m.logger.Infof("session %s closed", id)
	return nil
}

// Len возвращает количество открытых сессий.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Sweep закрывает сессии, простаивающие дольше IdleTTL, и возвращает их количество.
func (m *Manager) Sweep() int {
	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	deadline := m.now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.idleSince().Before(deadline) {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	closed := 0
	for _, id := range expired {
		if err := m.Close(id); err == nil {
			closed++
		}
	}

	if closed > 0 {
		m.logger.Debugf("closed %d idle sessions", closed)
	}

	return closed
}

// Start запускает фоновую очистку простаивающих сессий.
func (m *Manager) Start(ctx context.Context) {
	if m.cfg.SweepInterval <= 0 {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-m.stop:
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Stop останавливает очистку и закрывает все сессии.
func (m *Manager) Stop(_ context.Context) error {
	m.stopOnce.Do(func() { close(m.stop) })
	m.wg.Wait()

	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Close(id)
	}

	return nil
}
