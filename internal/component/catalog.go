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

// CatalogView — снимок состояния каталога для отрисовки.
type CatalogView struct {
	Rows          []domain.CatalogRow
	Page          int
	HasMore       bool
	IsLoading     bool
	IsLoadingMore bool
}

// Catalog — постраничный каталог продуктов с бесконечной прокруткой.
// Добавление продукта публикует IntentMessage в шину; на компонент заказа каталог не ссылается.
type Catalog struct {
	source   CatalogSource
	bus      bus.Bus
	notifier notify.Notifier
	logger   logger.Logger

	mu            sync.Mutex
	page          int
	hasMore       bool
	isLoading     bool
	isLoadingMore bool
	rows          []domain.CatalogRow
	entries       map[string]domain.PriceEntry // записи прайс-листа по ID продукта
}

func NewCatalog(source CatalogSource, b bus.Bus, notifier notify.Notifier, logger logger.Logger) *Catalog {
	return &Catalog{
		source:   source,
		bus:      b,
		notifier: notifier,
		logger:   logger,
		page:     1,
		hasMore:  true,
		entries:  make(map[string]domain.PriceEntry),
	}
}

// Mount загружает первую страницу.
func (c *Catalog) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.isLoading = true
	c.mu.Unlock()

	err := c.LoadNextPage(ctx)

	c.mu.Lock()
	c.isLoading = false
	c.mu.Unlock()

	return err
}

// LoadNextPage догружает следующую страницу.
// Ничего не делает, если страницы закончились или загрузка уже идёт.
// Пустая страница навсегда выключает дозагрузку.
func (c *Catalog) LoadNextPage(ctx context.Context) error {
	const op = "Catalog.LoadNextPage"

	c.mu.Lock()
	if !c.hasMore || c.isLoadingMore {
		c.mu.Unlock()
		return nil
	}
	c.isLoadingMore = true
	page := c.page
	c.mu.Unlock()

	res, err := c.source.FetchCatalogPage(ctx, page)
	if err != nil {
		c.mu.Lock()
		c.isLoadingMore = false
		c.mu.Unlock()

		c.logger.Warnf("catalog page %d failed: %v", page, e.Wrap(op, err))
		notify.Error(c.notifier, e.ErrorMessage(err))
		return e.Wrap(op, err)
	}

	var (
		products []domain.Product
		entries  []domain.PriceEntry
	)
	if res != nil {
		products, entries = res.Products, res.PriceEntries
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range entries {
		c.entries[entry.ProductID] = entry
	}

	for _, p := range products {
		var entry *domain.PriceEntry
		if pe, ok := c.entries[p.ID]; ok {
			entry = &pe
		}
		c.rows = append(c.rows, domain.NewCatalogRow(p, entry))
	}

	c.page++
	if len(products) == 0 {
		c.hasMore = false
		c.logger.Debugf("catalog exhausted at page %d", page)
	}
	c.isLoadingMore = false

	return nil
}

// AddToBasket публикует намерение добавить продукт в заказ.
func (c *Catalog) AddToBasket(ctx context.Context, productID string) error {
	const op = "Catalog.AddToBasket"

	c.mu.Lock()
	entry, ok := c.entries[productID]
	c.mu.Unlock()

	if !ok {
		return e.Wrap(op, e.Wrap(productID, e.ErrPriceEntryNotFound))
	}

	c.bus.Publish(ctx, bus.ProductOrderingChannel, domain.NewIntentMessage(productID, entry.ID))
	return nil
}

// HandleRowAction обрабатывает действие над строкой каталога. Неизвестные действия игнорируются.
func (c *Catalog) HandleRowAction(ctx context.Context, action string, productID string) error {
	switch action {
	case ActionAddProduct:
		return c.AddToBasket(ctx, productID)
	default:
		return nil
	}
}

// View возвращает копию текущего состояния.
func (c *Catalog) View() CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]domain.CatalogRow, len(c.rows))
	copy(rows, c.rows)

	return CatalogView{
		Rows:          rows,
		Page:          c.page,
		HasMore:       c.hasMore,
		IsLoading:     c.isLoading,
		IsLoadingMore: c.isLoadingMore,
	}
}
