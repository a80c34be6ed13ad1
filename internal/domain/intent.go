package domain

// IntentMessage — намерение добавить продукт в активный заказ.
// Публикуется каталогом, обрабатывается компонентом заказа.
type IntentMessage struct {
	ProductID        string `json:"productId"`
	PriceBookEntryID string `json:"priceBookEntryId"`
}

func NewIntentMessage(productID string, priceBookEntryID string) IntentMessage {
	return IntentMessage{
		ProductID:        productID,
		PriceBookEntryID: priceBookEntryID,
	}
}
