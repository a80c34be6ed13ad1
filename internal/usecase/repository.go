package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/domain"
)

// Transactor выполняет fn в одной транзакции PostgreSQL.
// Репозитории достают транзакцию из контекста через tr.TxFromCtx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	GetPriceEntries(ctx context.Context, productIDs []string, priceBookName string) ([]domain.PriceEntry, error)
	GetPriceEntry(ctx context.Context, id, priceBookName string) (*domain.PriceEntry, error)
}

type OrderRepository interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	GetForUpdate(ctx context.Context, id string) (*domain.Order, error)
	Activate(ctx context.Context, id string) (*domain.Order, error)
}

type OrderItemRepository interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLineItem, error)
	UpsertIncrement(ctx context.Context, orderID string, entry *domain.PriceEntry) (*domain.OrderLineItem, error)
	Delete(ctx context.Context, id string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	// GetAndMarkAsProcessing также забирает события, застрявшие в processing дольше staleAfter.
	GetAndMarkAsProcessing(ctx context.Context, limit int, staleAfter time.Duration) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseForRetry(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64, reason string) error
}

// CatalogCacheRepository — кэш страниц каталога. Промах возвращает nil без ошибки.
type CatalogCacheRepository interface {
	GetCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error)
	SetCatalogPage(ctx context.Context, page int, catalogPage *domain.CatalogPage) error
}

type OrderArchiveRepository interface {
	Save(ctx context.Context, snapshot *OrderSnapshot) (string, error)
	Delete(ctx context.Context, key string) error
}
