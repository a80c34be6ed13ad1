package converter

// CatalogPageRedisModel — страница каталога в кэше. Цены хранятся строкой,
// чтобы не терять точность decimal.
type CatalogPageRedisModel struct {
	Page         int                    `json:"page"`
	Products     []ProductRedisModel    `json:"products"`
	PriceEntries []PriceEntryRedisModel `json:"price_entries"`
}

type ProductRedisModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PriceEntryRedisModel struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UnitPrice string `json:"unit_price"`
}
