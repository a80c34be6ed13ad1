package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderItemRepo реализует репозиторий позиций заказа поверх PostgreSQL.
type OrderItemRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderItemConverter
}

func NewOrderItemRepo(pool *pgxpool.Pool, conv converter.OrderItemConverter) *OrderItemRepo {
	return &OrderItemRepo{
		pool: pool,
		conv: conv,
	}
}

// ListByOrder возвращает позиции заказа с названиями продуктов в порядке добавления.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderLineItem, error) {
	query := `
		SELECT oi.id::text, oi.order_id::text, oi.product_id::text, p.name,
		       oi.price_book_entry_id::text, oi.list_price, oi.quantity, oi.total_price, oi.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.created_at, oi.id
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), toRemoteError(err))
	}
	defer rows.Close()

	var models []converter.OrderItemModel
	for rows.Next() {
		var model converter.OrderItemModel
		err := rows.Scan(
			&model.ID,
			&model.OrderID,
			&model.ProductID,
			&model.ProductName,
			&model.PriceBookEntryID,
			&model.ListPrice,
			&model.Quantity,
			&model.TotalPrice,
			&model.CreatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), nil
}

// UpsertIncrement создаёт позицию с количеством 1 или увеличивает количество существующей.
// Итоговая сумма пересчитывается как цена × количество.
func (r *OrderItemRepo) UpsertIncrement(ctx context.Context, orderID string, entry *domain.PriceEntry) (*domain.OrderLineItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH upsert AS (
			INSERT INTO order_items (order_id, product_id, price_book_entry_id, list_price, quantity, total_price)
			VALUES ($1, $2, $3, $4, 1, $4)
			ON CONFLICT (order_id, product_id)
			DO UPDATE SET
				quantity = order_items.quantity + 1,
				total_price = order_items.list_price * (order_items.quantity + 1),
				updated_at = now()
			RETURNING id, order_id, product_id, price_book_entry_id, list_price, quantity, total_price, created_at
		)
		SELECT u.id::text, u.order_id::text, u.product_id::text, p.name,
		       u.price_book_entry_id::text, u.list_price, u.quantity, u.total_price, u.created_at
		FROM upsert u
		JOIN products p ON p.id = u.product_id
	`

	var model converter.OrderItemModel
	err = tx.QueryRow(ctx, query, orderID, entry.ProductID, entry.ID, entry.UnitPrice).Scan(
		&model.ID,
		&model.OrderID,
		&model.ProductID,
		&model.ProductName,
		&model.PriceBookEntryID,
		&model.ListPrice,
		&model.Quantity,
		&model.TotalPrice,
		&model.CreatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), toRemoteError(err))
	}

	return r.conv.ToEntity(&model), nil
}

// Delete удаляет позицию. Отсутствующая позиция — ошибка "entity is deleted".
func (r *OrderItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		if invalidID(err) {
			return notFound(e.ErrOrderItemNotFound)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return notFound(e.ErrOrderItemNotFound)
	}

	return nil
}
