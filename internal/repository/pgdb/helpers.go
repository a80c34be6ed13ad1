package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRep      = "22P02"
)

// constraintMessages — тексты для пользователя по кодам ограничений.
// Detail и Message из PostgreSQL содержат значения строк и наружу не отдаются.
var constraintMessages = map[string]string{
	pgUniqueViolation:     "record already exists",
	pgCheckViolation:      "value violates a constraint",
	pgNotNullViolation:    "required field is missing",
	pgForeignKeyViolation: "related record does not exist",
	pgInvalidTextRep:      "invalid identifier",
}

// querier — общее подмножество pgx.Tx и *pgxpool.Pool.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// conn возвращает транзакцию из контекста, а если её нет — пул.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// invalidID сообщает, что идентификатор не является UUID.
func invalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRep
}

// notFound строит ошибку удалённого слоя для отсутствующей записи.
func notFound(sentinel error) error {
	return e.NewRemoteError(sentinel.Error(), sentinel)
}

// toRemoteError переводит нарушения ограничений PostgreSQL в RemoteError с ошибкой поля
// и фиксированным текстом. Остальные ошибки возвращаются как есть.
func toRemoteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	msg, ok := constraintMessages[pgErr.Code]
	if !ok {
		return err
	}

	remote := e.NewRemoteError("", err)
	field := pgErr.ColumnName
	if field == "" {
		field = pgErr.ConstraintName
	}

	if field != "" {
		return remote.WithFieldError(field, msg)
	}

	return remote.WithPageError(msg)
}
