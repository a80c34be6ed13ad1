package usecase

import (
	"time"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/shopspring/decimal"
)

// OUTBOX

// OutboxStatus — статус события в таблице outbox_events.
type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed" // постоянная ошибка публикации, повторов не будет
)

// OutboxEventType — тип события заказа.
type OutboxEventType string

const (
	OrderSent OutboxEventType = "order.sent"
)

// OutboxEvent — событие, ожидающее публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

// WriteRawMessageReq — уже закодированное сообщение для Kafka.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// ORDER SNAPSHOT

// OrderSnapshot — состояние заказа на момент отправки. Сохраняется в архив
// и служит телом события order.sent.
type OrderSnapshot struct {
	OrderID     string              `json:"orderId"`
	OrderNumber string              `json:"orderNumber"`
	SentAt      time.Time           `json:"sentAt"`
	Items       []OrderSnapshotItem `json:"items"`
	Total       decimal.Decimal     `json:"total"`
}

type OrderSnapshotItem struct {
	LineItemID  string          `json:"lineItemId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ListPrice   decimal.Decimal `json:"listPrice"`
	Quantity    int64           `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// MAPPERS

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

// NewOrderSnapshot собирает снимок заказа и считает итоговую сумму.
func NewOrderSnapshot(order *domain.Order, items []domain.OrderLineItem, sentAt time.Time) *OrderSnapshot {
	snapshot := &OrderSnapshot{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		SentAt:      sentAt,
		Items:       make([]OrderSnapshotItem, 0, len(items)),
		Total:       decimal.Zero,
	}

	for _, item := range items {
		snapshot.Items = append(snapshot.Items, OrderSnapshotItem{
			LineItemID:  item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ListPrice:   item.ListPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
		snapshot.Total = snapshot.Total.Add(item.TotalPrice)
	}

	return snapshot
}
