package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает продукт каталога
type Product struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

func NewProduct(id string, name string) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		IsActive: true,
	}
}

// URL возвращает навигационную ссылку на продукт.
func (p Product) URL() string {
	return RecordURL(p.ID)
}

// PriceEntry — запись прайс-листа, привязанная к продукту.
type PriceEntry struct {
	ID        string
	ProductID string
	UnitPrice decimal.Decimal
}

func NewPriceEntry(id string, productID string, unitPrice decimal.Decimal) *PriceEntry {
	return &PriceEntry{
		ID:        id,
		ProductID: productID,
		UnitPrice: unitPrice,
	}
}

// CatalogPage — одна страница каталога: продукты и их записи прайс-листа.
type CatalogPage struct {
	Products     []Product
	PriceEntries []PriceEntry
}

// RecordURL строит относительную ссылку на запись по её идентификатору.
func RecordURL(id string) string {
	return "/" + id
}
