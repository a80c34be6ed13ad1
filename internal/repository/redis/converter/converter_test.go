package converter

import (
	"testing"

	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogPageConverter(t *testing.T) {
	conv := NewCatalogPageConverterImpl()
	page := &domain.CatalogPage{
		Products: []domain.Product{*domain.NewProduct("p1", "Laptop"), *domain.NewProduct("p2", "Mouse")},
		PriceEntries: []domain.PriceEntry{
			*domain.NewPriceEntry("pbe1", "p1", decimal.RequireFromString("1299.99")),
		},
	}

	model := conv.ToRedisModel(4, page)
	assert.Equal(t, 4, model.Page)
	assert.Equal(t, "1299.99", model.PriceEntries[0].UnitPrice)

	restored, err := conv.ToEntity(model)
	require.NoError(t, err)
	require.Len(t, restored.Products, 2)
	assert.Equal(t, "Mouse", restored.Products[1].Name)
	assert.True(t, restored.PriceEntries[0].UnitPrice.Equal(decimal.RequireFromString("1299.99")))

	t.Run("corrupted price", func(t *testing.T) {
		model.PriceEntries[0].UnitPrice = "n/a"

		_, err := conv.ToEntity(model)
		assert.Error(t, err)
	})
}
