package usecase

import (
	"context"

	"github.com/DRSN-tech/product-ordering/internal/domain"
)

// OrderingUC — удалённый слой данных, который потребляют компоненты каталога и заказа.
type OrderingUC interface {
	FetchCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error)
	FetchOrderLineItems(ctx context.Context, orderID string) ([]domain.OrderLineItem, error)
	AddOrIncrementLineItem(ctx context.Context, orderID, productID, priceEntryID string) error
	DeleteLineItem(ctx context.Context, lineItemID string) error
	SendOrder(ctx context.Context, orderID string) (bool, error)
	GetOrderContext(ctx context.Context, orderID string) (*domain.OrderContext, error)
}
