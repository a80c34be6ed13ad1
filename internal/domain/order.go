package domain

import "time"

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "Draft"
	OrderStatusActivated OrderStatus = "Activated"
)

// Order описывает заказ, в который добавляются позиции
type Order struct {
	ID          string
	OrderNumber string
	Status      OrderStatus
	CreatedAt   time.Time
	ActivatedAt *time.Time
}

// OrderContext — номер и статус родительского заказа.
type OrderContext struct {
	OrderNumber string
	Status      OrderStatus
}

func NewOrderContext(orderNumber string, status OrderStatus) *OrderContext {
	return &OrderContext{
		OrderNumber: orderNumber,
		Status:      status,
	}
}

// Activated сообщает, находится ли заказ в терминальном статусе.
func (o *OrderContext) Activated() bool {
	return o != nil && o.Status == OrderStatusActivated
}
