package domain

import "github.com/shopspring/decimal"

// OrderLineItem — позиция заказа в том виде, в каком её возвращает удалённый слой.
type OrderLineItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	ListPrice   decimal.Decimal
	Quantity    int64
	TotalPrice  decimal.Decimal
}

// OrderLineItemRow — строка представления позиций заказа.
type OrderLineItemRow struct {
	ID           string
	ProductName  string
	ProductURL   string
	OrderItemURL string
	ListPrice    decimal.Decimal
	Quantity     int64
	TotalPrice   decimal.Decimal
}

func NewOrderLineItemRow(item OrderLineItem) OrderLineItemRow {
	return OrderLineItemRow{
		ID:           item.ID,
		ProductName:  item.ProductName,
		ProductURL:   RecordURL(item.ProductID),
		OrderItemURL: RecordURL(item.ID),
		ListPrice:    item.ListPrice,
		Quantity:     item.Quantity,
		TotalPrice:   item.TotalPrice,
	}
}
