package http

import (
	"github.com/DRSN-tech/product-ordering/internal/component"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/notify"
	"github.com/shopspring/decimal"
)

type CreateSessionRequest struct {
	OrderID string `json:"orderId" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	OrderID   string `json:"orderId"`
}

type CatalogRowResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProductURL string `json:"productUrl"`
	UnitPrice  string `json:"unitPrice" example:"999.90"`
}

type CatalogResponse struct {
	Rows          []CatalogRowResponse `json:"rows"`
	Page          int                  `json:"page"`
	HasMore       bool                 `json:"hasMore"`
	IsLoading     bool                 `json:"isLoading"`
	IsLoadingMore bool                 `json:"isLoadingMore"`
}

// CatalogActionRequest — действие над строкой каталога, например addProduct.
type CatalogActionRequest struct {
	Action    string `json:"action" example:"addProduct"`
	ProductID string `json:"productId"`
}

type OrderLineItemResponse struct {
	ID           string `json:"id"`
	ProductName  string `json:"productName"`
	ProductURL   string `json:"productUrl"`
	OrderItemURL string `json:"orderItemUrl"`
	ListPrice    string `json:"listPrice"`
	Quantity     int64  `json:"quantity"`
	TotalPrice   string `json:"totalPrice"`
}

type OrderResponse struct {
	OrderID     string                  `json:"orderId"`
	Title       string                  `json:"title"`
	OrderNumber string                  `json:"orderNumber"`
	Status      string                  `json:"status"`
	Items       []OrderLineItemResponse `json:"items"`
	IsEmpty     bool                    `json:"isEmpty"`
	IsLoading   bool                    `json:"isLoading"`
	Activated   bool                    `json:"activated"`
}

// OrderActionRequest — действие над строкой заказа, например deleteOrderLineItem.
type OrderActionRequest struct {
	Action     string `json:"action" example:"deleteOrderLineItem"`
	LineItemID string `json:"lineItemId"`
}

type NotificationsResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCatalogResponse(view component.CatalogView) *CatalogResponse {
	rows := make([]CatalogRowResponse, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, CatalogRowResponse{
			ID:         row.ID,
			Name:       row.Name,
			ProductURL: row.ProductURL,
			UnitPrice:  formatPrice(row.UnitPrice),
		})
	}

	return &CatalogResponse{
		Rows:          rows,
		Page:          view.Page,
		HasMore:       view.HasMore,
		IsLoading:     view.IsLoading,
		IsLoadingMore: view.IsLoadingMore,
	}
}

func toOrderLineItemResponse(row domain.OrderLineItemRow) OrderLineItemResponse {
	return OrderLineItemResponse{
		ID:           row.ID,
		ProductName:  row.ProductName,
		ProductURL:   row.ProductURL,
		OrderItemURL: row.OrderItemURL,
		ListPrice:    formatPrice(row.ListPrice),
		Quantity:     row.Quantity,
		TotalPrice:   formatPrice(row.TotalPrice),
	}
}

func toOrderResponse(view component.OrderView) *OrderResponse {
	items := make([]OrderLineItemResponse, 0, len(view.Items))
	for _, row := range view.Items {
		items = append(items, toOrderLineItemResponse(row))
	}

	return &OrderResponse{
		OrderID:     view.OrderID,
		Title:       view.Title,
		OrderNumber: view.OrderNumber,
		Status:      string(view.Status),
		Items:       items,
		IsEmpty:     view.IsEmpty,
		IsLoading:   view.IsLoading,
		Activated:   view.Activated,
	}
}
