package pgdb

import (
	"context"

	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/DRSN-tech/product-ordering/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// TxManager открывает транзакции PostgreSQL и кладёт их в контекст для репозиториев.
type TxManager struct {
	db     transaction.Transactional
	logger logger.Logger
}

func NewTxManager(db transaction.Transactional, logger logger.Logger) *TxManager {
	return &TxManager{
		db:     db,
		logger: logger,
	}
}

// WithinTx выполняет fn в транзакции. Ошибка fn откатывает транзакцию.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "TxManager.WithinTx"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				m.logger.Warnf("rollback failed: %v", e.Wrap(op, rbErr))
			}
		}
	}()

	if err = fn(tr.WithTx(ctx, tx.Transaction())); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
