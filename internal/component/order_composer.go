package component

import (
	"context"
	"sync"

	"github.com/DRSN-tech/product-ordering/internal/bus"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/notify"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
)

// OrderComposerOptions — необязательные настройки компонента заказа.
type OrderComposerOptions struct {
	// StaleRefreshGuard включает отбрасывание ответов refresh, которые пришли
	// позже более нового ответа. По умолчанию побеждает последний пришедший ответ.
	StaleRefreshGuard bool
}

// OrderView — снимок состояния компонента заказа для отрисовки.
type OrderView struct {
	OrderID     string
	Title       string
	OrderNumber string
	Status      domain.OrderStatus
	Items       []domain.OrderLineItemRow
	IsEmpty     bool
	IsLoading   bool
	Activated   bool
}

// OrderComposer показывает позиции заказа и изменяет их по намерениям из шины.
// Список позиций всегда перечитывается целиком после изменения.
type OrderComposer struct {
	orderID  string
	remote   OrderItemsRemote
	orders   OrderContextProvider
	bus      bus.Bus
	notifier notify.Notifier
	logger   logger.Logger
	opts     OrderComposerOptions

	// gate делает проверку статуса и запуск изменения атомарными относительно отправки заказа:
	// изменения берут RLock, отправка — Lock.
	gate sync.RWMutex

	mu         sync.Mutex
	items      []domain.OrderLineItemRow
	isLoading  bool
	order      *domain.OrderContext
	token      bus.Token
	mounted    bool
	refreshSeq uint64
	appliedSeq uint64
}

func NewOrderComposer(
	orderID string,
	remote OrderItemsRemote,
	orders OrderContextProvider,
	b bus.Bus,
	notifier notify.Notifier,
	logger logger.Logger,
	opts OrderComposerOptions,
) *OrderComposer {
	return &OrderComposer{
		orderID:  orderID,
		remote:   remote,
		orders:   orders,
		bus:      b,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
		items:    []domain.OrderLineItemRow{},
	}
}

// Mount подписывается на шину, затем загружает заказ и его позиции.
// Подписка идёт первой, чтобы не пропустить намерения каталога.
// Возвращает ошибку загрузки заказа; позиции загружаются в любом случае.
func (c *OrderComposer) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	if c.token.IsZero() {
		c.token = c.bus.Subscribe(bus.ProductOrderingChannel, c.handleMessage)
	}
	c.mu.Unlock()

	err := c.LoadOrderContext(ctx)
	c.Refresh(ctx)

	return err
}

// Unmount отписывается от шины. Ответы, пришедшие после этого, игнорируются.
func (c *OrderComposer) Unmount() {
	c.mu.Lock()
	token := c.token
	c.token = bus.Token{}
	c.mounted = false
	c.mu.Unlock()

	c.bus.Unsubscribe(token)
}

func (c *OrderComposer) handleMessage(ctx context.Context, msg bus.Message) {
	intent, ok := msg.Payload.(domain.IntentMessage)
	if !ok {
		c.logger.Warnf("order %s: unexpected payload %T on channel %s", c.orderID, msg.Payload, msg.Channel)
		return
	}

	c.OnIntentReceived(ctx, intent)
}

// LoadOrderContext перечитывает номер и статус заказа.
func (c *OrderComposer) LoadOrderContext(ctx context.Context) error {
	const op = "OrderComposer.LoadOrderContext"

	oc, err := c.orders.GetOrderContext(ctx, c.orderID)
	if err != nil {
		c.logger.Warnf("order %s: %v", c.orderID, e.Wrap(op, err))
		notify.Error(c.notifier, e.ErrorMessage(err))
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	if c.mounted {
		c.order = oc
	}
	c.mu.Unlock()

	return nil
}

// Refresh перечитывает все позиции заказа.
// При ошибке показывается уведомление, а прежний снимок остаётся.
func (c *OrderComposer) Refresh(ctx context.Context) {
	const op = "OrderComposer.Refresh"

	c.mu.Lock()
	c.isLoading = true
	c.refreshSeq++
	seq := c.refreshSeq
	c.mu.Unlock()

	items, err := c.remote.FetchOrderLineItems(ctx, c.orderID)

	c.mu.Lock()
	c.isLoading = false
	mounted := c.mounted
	if err == nil && mounted {
		if c.opts.StaleRefreshGuard && seq < c.appliedSeq {
			c.mu.Unlock()
			c.logger.Debugf("order %s: stale refresh #%d dropped", c.orderID, seq)
			return
		}

		rows := make([]domain.OrderLineItemRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, domain.NewOrderLineItemRow(item))
		}
		c.items = rows
		c.appliedSeq = seq
	}
	c.mu.Unlock()

	if !mounted {
		c.logger.Debugf("order %s: refresh #%d finished after unmount", c.orderID, seq)
		return
	}

	if err != nil {
		c.logger.Warnf("order %s: %v", c.orderID, e.Wrap(op, err))
		notify.Error(c.notifier, e.ErrorMessage(err))
	}
}

// OnIntentReceived добавляет продукт в заказ (или увеличивает количество) и перечитывает позиции.
func (c *OrderComposer) OnIntentReceived(ctx context.Context, intent domain.IntentMessage) {
	const op = "OrderComposer.OnIntentReceived"

	c.gate.RLock()
	if c.ActivationGuardActive() {
		c.gate.RUnlock()
		c.showOrderActivatedInfo()
		return
	}

	err := c.remote.AddOrIncrementLineItem(ctx, c.orderID, intent.ProductID, intent.PriceBookEntryID)
	c.gate.RUnlock()

	if err != nil {
		c.logger.Warnf("order %s: add product %s: %v", c.orderID, intent.ProductID, e.Wrap(op, err))
		notify.Error(c.notifier, e.ErrorMessage(err))
		return
	}

	c.Refresh(ctx)
}

// DeleteLineItem удаляет позицию и перечитывает список.
// Ошибка удаления не обрабатывается здесь и возвращается вызывающему как есть.
func (c *OrderComposer) DeleteLineItem(ctx context.Context, lineItemID string) error {
	const op = "OrderComposer.DeleteLineItem"

	c.gate.RLock()
	if c.ActivationGuardActive() {
		c.gate.RUnlock()
		c.showOrderActivatedInfo()
		return nil
	}

	err := c.remote.DeleteLineItem(ctx, lineItemID)
	c.gate.RUnlock()

	if err != nil {
		return e.Wrap(op, err)
	}

	notify.Success(c.notifier, MsgOrderItemDeleted)
	c.Refresh(ctx)

	return nil
}

// SendOrder отправляет заказ. После успешной отправки статус заказа перечитывается,
// и дальнейшие изменения блокируются.
func (c *OrderComposer) SendOrder(ctx context.Context) {
	const op = "OrderComposer.SendOrder"

	c.gate.Lock()
	defer c.gate.Unlock()

	if c.ActivationGuardActive() {
		c.showOrderActivatedInfo()
		return
	}

	c.setLoading(true)
	defer c.setLoading(false)

	sent, err := c.remote.SendOrder(ctx, c.orderID)
	if err != nil {
		c.logger.Errorf(e.Wrap(op, err), "order %s: send failed", c.orderID)
		notify.Error(c.notifier, e.ErrorMessage(err))
		return
	}

	if !sent {
		notify.Error(c.notifier, MsgOrderNotSent)
		return
	}

	notify.Success(c.notifier, MsgOrderSent)
	_ = c.LoadOrderContext(ctx)
}

// HandleRowAction обрабатывает действие над строкой позиций. Неизвестные действия игнорируются.
func (c *OrderComposer) HandleRowAction(ctx context.Context, action string, lineItemID string) error {
	switch action {
	case ActionDeleteOrderLineItem:
		return c.DeleteLineItem(ctx, lineItemID)
	default:
		return nil
	}
}

// ActivationGuardActive сообщает, что заказ активирован и изменения запрещены.
func (c *OrderComposer) ActivationGuardActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Activated()
}

// IsEmpty сообщает, что в последнем снимке нет позиций.
func (c *OrderComposer) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}

// Title — заголовок вида "Order 00000100".
func (c *OrderComposer) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.titleLocked()
}

func (c *OrderComposer) titleLocked() string {
	if c.order == nil {
		return "Order "
	}

	return "Order " + c.order.OrderNumber
}

// View возвращает копию текущего состояния.
func (c *OrderComposer) View() OrderView {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.OrderLineItemRow, len(c.items))
	copy(items, c.items)

	view := OrderView{
		OrderID:   c.orderID,
		Title:     c.titleLocked(),
		Items:     items,
		IsEmpty:   len(c.items) == 0,
		IsLoading: c.isLoading,
		Activated: c.order.Activated(),
	}
	if c.order != nil {
		view.OrderNumber = c.order.OrderNumber
		view.Status = c.order.Status
	}

	return view
}

func (c *OrderComposer) setLoading(v bool) {
	c.mu.Lock()
	c.isLoading = v
	c.mu.Unlock()
}

func (c *OrderComposer) showOrderActivatedInfo() {
	notify.Info(c.notifier, MsgOrderActivated)
}
