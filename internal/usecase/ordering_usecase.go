package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/google/uuid"
)

// OrderingUseCase реализует удалённый слой каталога и заказа поверх PostgreSQL,
// кэша страниц каталога, архива отправленных заказов и outbox.
type OrderingUseCase struct {
	tx          Transactor
	productRepo ProductRepository
	orderRepo   OrderRepository
	itemRepo    OrderItemRepository
	outboxRepo  OutboxRepository
	cacheRepo   CatalogCacheRepository
	archiveRepo OrderArchiveRepository
	encoder     EventEncoder
	logger      logger.Logger
	cfg         *cfg.CatalogCfg
	now         func() time.Time
}

func NewOrderingUC(
	tx Transactor,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	itemRepo OrderItemRepository,
	outboxRepo OutboxRepository,
	cacheRepo CatalogCacheRepository,
	archiveRepo OrderArchiveRepository,
	encoder EventEncoder,
	logger logger.Logger,
	cfg *cfg.CatalogCfg,
) *OrderingUseCase {
	return &OrderingUseCase{
		tx:          tx,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		outboxRepo:  outboxRepo,
		cacheRepo:   cacheRepo,
		archiveRepo: archiveRepo,
		encoder:     encoder,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// FetchCatalogPage возвращает страницу каталога (нумерация с 1) и записи стандартного прайс-листа
// для её продуктов. Непустые страницы кэшируются.
func (u *OrderingUseCase) FetchCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error) {
	const op = "OrderingUseCase.FetchCatalogPage"

	if page < 1 {
		return nil, e.Wrap(op, e.ErrInvalidPage)
	}

	cached, err := u.cacheRepo.GetCatalogPage(ctx, page)
	if err != nil {
		u.logger.Warnf("catalog cache read failed, page %d: %v", page, e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	products, err := u.productRepo.ListProducts(ctx, u.cfg.PageSize, (page-1)*u.cfg.PageSize)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := &domain.CatalogPage{
		Products:     products,
		PriceEntries: []domain.PriceEntry{},
	}
	if len(products) == 0 {
		return result, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	entries, err := u.productRepo.GetPriceEntries(ctx, ids, u.cfg.PriceBookName)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	result.PriceEntries = entries

	if err := u.cacheRepo.SetCatalogPage(ctx, page, result); err != nil {
		u.logger.Warnf("catalog cache write failed, page %d: %v", page, e.Wrap(op, err))
	}

	return result, nil
}

// FetchOrderLineItems возвращает все позиции заказа в порядке добавления.
func (u *OrderingUseCase) FetchOrderLineItems(ctx context.Context, orderID string) ([]domain.OrderLineItem, error) {
	const op = "OrderingUseCase.FetchOrderLineItems"

	items, err := u.itemRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return items, nil
}

// AddOrIncrementLineItem добавляет продукт в заказ или увеличивает количество на единицу.
// Активированный заказ не изменяется.
func (u *OrderingUseCase) AddOrIncrementLineItem(ctx context.Context, orderID, productID, priceEntryID string) error {
	const op = "OrderingUseCase.AddOrIncrementLineItem"

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := u.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status == domain.OrderStatusActivated {
			return e.NewRemoteError(e.ErrOrderActivated.Error(), e.ErrOrderActivated)
		}

		entry, err := u.productRepo.GetPriceEntry(ctx, priceEntryID, u.cfg.PriceBookName)
		if err != nil {
			return err
		}

		if entry.ProductID != productID {
			return e.NewRemoteError("", e.ErrPriceEntryMismatch).
				WithFieldError("PricebookEntryId", e.ErrPriceEntryMismatch.Error())
		}

		item, err := u.itemRepo.UpsertIncrement(ctx, orderID, entry)
		if err != nil {
			return err
		}

		u.logger.Debugf("order %s: line item %s quantity %d", orderID, item.ID, item.Quantity)
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// DeleteLineItem удаляет позицию заказа.
func (u *OrderingUseCase) DeleteLineItem(ctx context.Context, lineItemID string) error {
	const op = "OrderingUseCase.DeleteLineItem"

	if err := u.itemRepo.Delete(ctx, lineItemID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// SendOrder активирует заказ, сохраняет его снимок в архив и ставит событие order.sent в outbox.
// Возвращает false, если заказ уже активирован или в нём нет позиций.
func (u *OrderingUseCase) SendOrder(ctx context.Context, orderID string) (bool, error) {
	const op = "OrderingUseCase.SendOrder"

	var (
		sent       bool
		archiveKey string
	)

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := u.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status == domain.OrderStatusActivated {
			u.logger.Infof("order %s is already activated", orderID)
			return nil
		}

		items, err := u.itemRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			u.logger.Infof("order %s has no line items, nothing to send", orderID)
			return nil
		}

		activated, err := u.orderRepo.Activate(ctx, orderID)
		if err != nil {
			return err
		}

		sentAt := u.now().UTC()
		if activated.ActivatedAt != nil {
			sentAt = *activated.ActivatedAt
		}
		snapshot := NewOrderSnapshot(activated, items, sentAt)

		archiveKey, err = u.archiveRepo.Save(ctx, snapshot)
		if err != nil {
			return err
		}

		eventID := uuid.NewString()
		payload, err := u.encoder.EncodeOrderSent(eventID, snapshot)
		if err != nil {
			return err
		}

		if _, err := u.outboxRepo.Create(ctx, NewOutboxEvent(eventID, OrderSent, orderID, payload)); err != nil {
			return err
		}

		sent = true
		return nil
	})
	if err != nil {
		// Снимок уже в архиве, а транзакция откатилась
		if archiveKey != "" {
			u.cleanupArchive(archiveKey)
		}

		return false, e.Wrap(op, err)
	}

	if sent {
		u.logger.Infof("order %s sent, snapshot %s", orderID, archiveKey)
	}

	return sent, nil
}

// GetOrderContext возвращает номер и статус заказа.
func (u *OrderingUseCase) GetOrderContext(ctx context.Context, orderID string) (*domain.OrderContext, error) {
	const op = "OrderingUseCase.GetOrderContext"

	order, err := u.orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.NewOrderContext(order.OrderNumber, order.Status), nil
}

func (u *OrderingUseCase) cleanupArchive(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := u.archiveRepo.Delete(ctx, key); err != nil {
		u.logger.Warnf("failed to remove orphaned order snapshot %s: %v", key, err)
	}
}
