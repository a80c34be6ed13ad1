package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

const orderColumns = `id::text, order_number, status, created_at, activated_at`

// Get возвращает заказ по идентификатору.
func (o *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	return o.scanOne(conn(ctx, o.pool).QueryRow(ctx, query, id))
}

// GetForUpdate блокирует строку заказа до конца транзакции.
func (o *OrderRepo) GetForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	return o.scanOne(tx.QueryRow(ctx, query, id))
}

// Activate переводит черновик заказа в статус Activated.
func (o *OrderRepo) Activate(ctx context.Context, id string) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET status = $2, activated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING ` + orderColumns

	return o.scanOne(tx.QueryRow(ctx, query, id, domain.OrderStatusActivated, domain.OrderStatusDraft))
}

func (o *OrderRepo) scanOne(row pgx.Row) (*domain.Order, error) {
	var model converter.OrderModel
	err := row.Scan(&model.ID, &model.OrderNumber, &model.Status, &model.CreatedAt, &model.ActivatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return nil, notFound(e.ErrOrderNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), toRemoteError(err))
	}

	return o.conv.ToEntity(&model), nil
}
