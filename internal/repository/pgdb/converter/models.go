package converter

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

// PriceEntryModel представляет запись таблицы price_book_entries.
type PriceEntryModel struct {
	ID          string          `db:"id"`
	PriceBookID string          `db:"price_book_id"`
	ProductID   string          `db:"product_id"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
}

// OrderModel представляет запись таблицы orders.
type OrderModel struct {
	ID          string     `db:"id"`
	OrderNumber string     `db:"order_number"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ActivatedAt *time.Time `db:"activated_at"`
}

// OrderItemModel представляет запись order_items вместе с названием продукта.
type OrderItemModel struct {
	ID               string          `db:"id"`
	OrderID          string          `db:"order_id"`
	ProductID        string          `db:"product_id"`
	ProductName      string          `db:"product_name"`
	PriceBookEntryID string          `db:"price_book_entry_id"`
	ListPrice        decimal.Decimal `db:"list_price"`
	Quantity         int64           `db:"quantity"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	CreatedAt        time.Time       `db:"created_at"`
}

type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     string     `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
