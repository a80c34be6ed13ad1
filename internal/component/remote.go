package component

import (
	"context"

	"github.com/DRSN-tech/product-ordering/internal/domain"
)

// CatalogSource загружает страницу каталога вместе с записями прайс-листа.
type CatalogSource interface {
	FetchCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error)
}

// OrderItemsRemote — удалённые операции над позициями заказа.
type OrderItemsRemote interface {
	FetchOrderLineItems(ctx context.Context, orderID string) ([]domain.OrderLineItem, error)
	AddOrIncrementLineItem(ctx context.Context, orderID, productID, priceEntryID string) error
	DeleteLineItem(ctx context.Context, lineItemID string) error
	SendOrder(ctx context.Context, orderID string) (bool, error)
}

// OrderContextProvider отдаёт номер и статус заказа. Компонент перечитывает его
// при монтировании и после успешной отправки заказа.
type OrderContextProvider interface {
	GetOrderContext(ctx context.Context, orderID string) (*domain.OrderContext, error)
}

// Действия над строками таблиц.
const (
	ActionAddProduct          = "addProduct"
	ActionDeleteOrderLineItem = "deleteOrderLineItem"
)

// Тексты уведомлений.
const (
	MsgOrderActivated   = "Order has been activated and cannot be modified"
	MsgOrderItemDeleted = "Order item was deleted successfully"
	MsgOrderSent        = "Order was sent successfully"
	MsgOrderNotSent     = "An error occurred, the order couldn't be sent"
)
