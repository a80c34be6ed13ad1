package component

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/product-ordering/internal/bus"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/notify"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalog(t *testing.T) (*Catalog, *mockCatalogSource, *bus.MessageBus, *notify.Collector) {
	t.Helper()

	source := newMockCatalogSource()
	b := bus.NewMessageBus()
	notes := notify.NewCollector(0)
	return NewCatalog(source, b, notes, logger.NewNopLogger()), source, b, notes
}

func twoProductPage() *domain.CatalogPage {
	return &domain.CatalogPage{
		Products: []domain.Product{
			*domain.NewProduct("p1", "Laptop"),
			*domain.NewProduct("p2", "Mouse"),
		},
		PriceEntries: []domain.PriceEntry{
			*domain.NewPriceEntry("pbe1", "p1", decimal.NewFromInt(10)),
			*domain.NewPriceEntry("pbe2", "p2", decimal.NewFromInt(20)),
		},
	}
}

func TestCatalogPaginationUntilEmptyPage(t *testing.T) {
	catalog, source, _, _ := setupCatalog(t)
	source.pages[1] = twoProductPage()
	ctx := context.Background()

	require.NoError(t, catalog.Mount(ctx))

	view := catalog.View()
	require.Len(t, view.Rows, 2)
	assert.True(t, view.Rows[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, view.Rows[1].UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "/p1", view.Rows[0].ProductURL)
	assert.True(t, view.HasMore)
	assert.False(t, view.IsLoading)
	assert.Equal(t, 2, view.Page)

	require.NoError(t, catalog.LoadNextPage(ctx))
	view = catalog.View()
	assert.False(t, view.HasMore)
	assert.Len(t, view.Rows, 2)

	require.NoError(t, catalog.LoadNextPage(ctx))
	require.NoError(t, catalog.LoadNextPage(ctx))

	assert.Equal(t, []int{1, 2}, source.Calls())
	assert.Len(t, catalog.View().Rows, 2)
}

func TestCatalogRowsAccumulateInOrder(t *testing.T) {
	catalog, source, _, _ := setupCatalog(t)
	source.pages[1] = twoProductPage()
	source.pages[2] = &domain.CatalogPage{
		Products:     []domain.Product{*domain.NewProduct("p3", "Keyboard")},
		PriceEntries: []domain.PriceEntry{*domain.NewPriceEntry("pbe3", "p3", decimal.RequireFromString("15.50"))},
	}
	ctx := context.Background()

	prev := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, catalog.LoadNextPage(ctx))
		n := len(catalog.View().Rows)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}

	rows := catalog.View().Rows
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, []int{1, 2, 3}, source.Calls())
}

func TestCatalogMissingPriceEntry(t *testing.T) {
	catalog, source, b, _ := setupCatalog(t)
	source.pages[1] = &domain.CatalogPage{
		Products: []domain.Product{*domain.NewProduct("p1", "Orphan")},
	}
	ctx := context.Background()
	require.NoError(t, catalog.Mount(ctx))

	assert.True(t, catalog.View().Rows[0].UnitPrice.IsZero())

	published := 0
	b.Subscribe(bus.ProductOrderingChannel, func(context.Context, bus.Message) { published++ })

	err := catalog.AddToBasket(ctx, "p1")
	assert.ErrorIs(t, err, e.ErrPriceEntryNotFound)
	assert.Equal(t, 0, published)
}

func TestCatalogAddToBasketPublishesIntent(t *testing.T) {
	catalog, source, b, _ := setupCatalog(t)
	source.pages[1] = twoProductPage()
	source.pages[2] = &domain.CatalogPage{
		Products:     []domain.Product{*domain.NewProduct("p3", "Keyboard")},
		PriceEntries: []domain.PriceEntry{*domain.NewPriceEntry("pbe3", "p3", decimal.NewFromInt(5))},
	}
	ctx := context.Background()
	require.NoError(t, catalog.Mount(ctx))
	require.NoError(t, catalog.LoadNextPage(ctx))

	var got []domain.IntentMessage
	b.Subscribe(bus.ProductOrderingChannel, func(_ context.Context, msg bus.Message) {
		got = append(got, msg.Payload.(domain.IntentMessage))
	})

	t.Run("product from an earlier page", func(t *testing.T) {
		require.NoError(t, catalog.HandleRowAction(ctx, ActionAddProduct, "p2"))
	})

	t.Run("product from the latest page", func(t *testing.T) {
		require.NoError(t, catalog.AddToBasket(ctx, "p3"))
	})

	t.Run("unknown action is ignored", func(t *testing.T) {
		require.NoError(t, catalog.HandleRowAction(ctx, "viewProduct", "p1"))
	})

	assert.Equal(t, []domain.IntentMessage{
		{ProductID: "p2", PriceBookEntryID: "pbe2"},
		{ProductID: "p3", PriceBookEntryID: "pbe3"},
	}, got)
}

func TestCatalogPublishWithoutSubscriber(t *testing.T) {
	catalog, source, b, notes := setupCatalog(t)
	source.pages[1] = twoProductPage()
	ctx := context.Background()
	require.NoError(t, catalog.Mount(ctx))
	before := catalog.View()

	require.NoError(t, catalog.AddToBasket(ctx, "p1"))

	assert.Equal(t, before, catalog.View())
	assert.Equal(t, 0, b.Len(bus.ProductOrderingChannel))
	assert.Equal(t, 0, notes.Pending())
}

func TestCatalogFetchFailure(t *testing.T) {
	catalog, source, _, notes := setupCatalog(t)
	source.errs[1] = e.NewRemoteError("Query timeout", nil).WithPageError("Too many SOQL queries")
	ctx := context.Background()

	err := catalog.Mount(ctx)
	require.Error(t, err)

	view := catalog.View()
	assert.Empty(t, view.Rows)
	assert.True(t, view.HasMore)
	assert.False(t, view.IsLoadingMore)
	assert.Equal(t, 1, view.Page)

	got := notes.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.KindError, got[0].Kind)
	assert.Equal(t, "Too many SOQL queries - Query timeout", got[0].Message)

	t.Run("retry after failure loads the same page", func(t *testing.T) {
		source.mu.Lock()
		delete(source.errs, 1)
		source.pages[1] = twoProductPage()
		source.mu.Unlock()

		require.NoError(t, catalog.LoadNextPage(ctx))
		assert.Len(t, catalog.View().Rows, 2)
		assert.Equal(t, []int{1, 1}, source.Calls())
	})
}

func TestCatalogSkipsLoadWhileInFlight(t *testing.T) {
	catalog, source, _, _ := setupCatalog(t)
	source.pages[1] = twoProductPage()
	source.block = make(chan struct{})
	source.started = make(chan int, 1)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, catalog.LoadNextPage(ctx))
	}()

	<-source.started
	assert.True(t, catalog.View().IsLoadingMore)
	require.NoError(t, catalog.LoadNextPage(ctx))

	close(source.block)
	wg.Wait()

	assert.Equal(t, []int{1}, source.Calls())
	assert.False(t, catalog.View().IsLoadingMore)
}

func TestCatalogNilPageIsTreatedAsEmpty(t *testing.T) {
	catalog, _, _, _ := setupCatalog(t)
	catalog.source = catalogSourceFunc(func(context.Context, int) (*domain.CatalogPage, error) {
		return nil, nil
	})

	require.NoError(t, catalog.LoadNextPage(context.Background()))
	assert.False(t, catalog.View().HasMore)
}

func TestCatalogPlainErrorMessage(t *testing.T) {
	catalog, _, _, notes := setupCatalog(t)
	catalog.source = catalogSourceFunc(func(context.Context, int) (*domain.CatalogPage, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	require.Error(t, catalog.LoadNextPage(context.Background()))
	got := notes.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, e.ErrInternalServerError.Error(), got[0].Message)
	assert.NotContains(t, got[0].Message, "dial tcp")
}

type catalogSourceFunc func(ctx context.Context, page int) (*domain.CatalogPage, error)

func (f catalogSourceFunc) FetchCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error) {
	return f(ctx, page)
}
