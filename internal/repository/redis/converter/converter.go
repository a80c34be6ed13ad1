package converter

import (
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogPageConverter interface {
	ToRedisModel(page int, entity *domain.CatalogPage) *CatalogPageRedisModel
	ToEntity(model *CatalogPageRedisModel) (*domain.CatalogPage, error)
}

type CatalogPageConverterImpl struct{}

func NewCatalogPageConverterImpl() *CatalogPageConverterImpl {
	return &CatalogPageConverterImpl{}
}

func (c *CatalogPageConverterImpl) ToRedisModel(page int, entity *domain.CatalogPage) *CatalogPageRedisModel {
	model := &CatalogPageRedisModel{
		Page:         page,
		Products:     make([]ProductRedisModel, 0, len(entity.Products)),
		PriceEntries: make([]PriceEntryRedisModel, 0, len(entity.PriceEntries)),
	}

	for _, p := range entity.Products {
		model.Products = append(model.Products, ProductRedisModel{ID: p.ID, Name: p.Name})
	}

	for _, pe := range entity.PriceEntries {
		model.PriceEntries = append(model.PriceEntries, PriceEntryRedisModel{
			ID:        pe.ID,
			ProductID: pe.ProductID,
			UnitPrice: pe.UnitPrice.String(),
		})
	}

	return model
}

// ToEntity восстанавливает страницу каталога. Ошибка означает испорченную запись кэша.
func (c *CatalogPageConverterImpl) ToEntity(model *CatalogPageRedisModel) (*domain.CatalogPage, error) {
	page := &domain.CatalogPage{
		Products:     make([]domain.Product, 0, len(model.Products)),
		PriceEntries: make([]domain.PriceEntry, 0, len(model.PriceEntries)),
	}

	for _, p := range model.Products {
		page.Products = append(page.Products, *domain.NewProduct(p.ID, p.Name))
	}

	for _, pe := range model.PriceEntries {
		price, err := decimal.NewFromString(pe.UnitPrice)
		if err != nil {
			return nil, err
		}

		page.PriceEntries = append(page.PriceEntries, *domain.NewPriceEntry(pe.ID, pe.ProductID, price))
	}

	return page, nil
}
