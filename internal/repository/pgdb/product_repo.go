package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов и прайс-листов поверх PostgreSQL.
type ProductRepo struct {
	pool      *pgxpool.Pool
	conv      converter.ProductConverter
	entryConv converter.PriceEntryConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter, entryConv converter.PriceEntryConverter) *ProductRepo {
	return &ProductRepo{
		pool:      pool,
		conv:      conv,
		entryConv: entryConv,
	}
}

// ListProducts возвращает активные продукты, упорядоченные по имени.
func (p *ProductRepo) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	query := `
		SELECT id::text, name, is_active, created_at
		FROM products
		WHERE is_active
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`

	rows, err := conn(ctx, p.pool).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0, limit)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(&model.ID, &model.Name, &model.IsActive, &model.CreatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetPriceEntries возвращает активные записи указанного прайс-листа для продуктов.
func (p *ProductRepo) GetPriceEntries(ctx context.Context, productIDs []string, priceBookName string) ([]domain.PriceEntry, error) {
	query := `
		SELECT pbe.id::text, pbe.price_book_id::text, pbe.product_id::text, pbe.unit_price
		FROM price_book_entries pbe
		JOIN price_books pb ON pb.id = pbe.price_book_id
		WHERE pbe.product_id = ANY($1::uuid[])
		  AND pb.name = $2
		  AND pb.is_active
		  AND pbe.is_active
	`

	rows, err := conn(ctx, p.pool).Query(ctx, query, productIDs, priceBookName)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.PriceEntryModel, 0, len(productIDs))
	for rows.Next() {
		var model converter.PriceEntryModel
		if err := rows.Scan(&model.ID, &model.PriceBookID, &model.ProductID, &model.UnitPrice); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.entryConv.ToArrEntity(models), nil
}

// GetPriceEntry возвращает активную запись активного прайс-листа priceBookName.
// Запись чужого или выключенного прайс-листа считается ненайденной.
func (p *ProductRepo) GetPriceEntry(ctx context.Context, id, priceBookName string) (*domain.PriceEntry, error) {
	query := `
		SELECT pbe.id::text, pbe.price_book_id::text, pbe.product_id::text, pbe.unit_price
		FROM price_book_entries pbe
		JOIN price_books pb ON pb.id = pbe.price_book_id
		WHERE pbe.id = $1 AND pbe.is_active
		  AND pb.name = $2 AND pb.is_active
	`

	var model converter.PriceEntryModel
	err := conn(ctx, p.pool).QueryRow(ctx, query, id, priceBookName).
		Scan(&model.ID, &model.PriceBookID, &model.ProductID, &model.UnitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidID(err) {
			return nil, notFound(e.ErrPriceEntryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), toRemoteError(err))
	}

	return p.entryConv.ToEntity(&model), nil
}
