package domain

import "github.com/shopspring/decimal"

// CatalogRow — строка представления каталога, вычисляется из Product и его PriceEntry.
type CatalogRow struct {
	ID         string
	Name       string
	ProductURL string
	UnitPrice  decimal.Decimal
}

// NewCatalogRow строит строку каталога. Если записи прайс-листа нет, цена равна нулю.
func NewCatalogRow(p Product, entry *PriceEntry) CatalogRow {
	price := decimal.Zero
	if entry != nil {
		price = entry.UnitPrice
	}

	return CatalogRow{
		ID:         p.ID,
		Name:       p.Name,
		ProductURL: p.URL(),
		UnitPrice:  price,
	}
}
