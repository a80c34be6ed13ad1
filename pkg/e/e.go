package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки компонентов заказа
	ErrPriceEntryNotFound = fmt.Errorf("price book entry not found for product")
	ErrComponentUnmounted = fmt.Errorf("component is not mounted")

	// Ошибки удалённого слоя данных
	ErrOrderNotFound      = fmt.Errorf("order not found")
	ErrOrderActivated     = fmt.Errorf("order has been activated and cannot be modified")
	ErrOrderItemNotFound  = fmt.Errorf("entity is deleted")
	ErrPriceEntryMismatch = fmt.Errorf("price book entry does not belong to product")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrInvalidJSON         = fmt.Errorf("invalid json body")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidPage         = fmt.Errorf("page must be positive")
	ErrSessionNotFound     = fmt.Errorf("session not found")
	ErrTooManySessions     = fmt.Errorf("too many active sessions")
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
