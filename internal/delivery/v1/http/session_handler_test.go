package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/internal/component"
	"github.com/DRSN-tech/product-ordering/internal/domain"
	"github.com/DRSN-tech/product-ordering/internal/notify"
	"github.com/DRSN-tech/product-ordering/internal/session"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrderID = "801"

// memoryRemote — удалённый слой в памяти с одним заказом.
type memoryRemote struct {
	mu     sync.Mutex
	status domain.OrderStatus
	items  []domain.OrderLineItem
}

func (m *memoryRemote) FetchCatalogPage(_ context.Context, page int) (*domain.CatalogPage, error) {
	if page > 1 {
		return &domain.CatalogPage{}, nil
	}

	return &domain.CatalogPage{
		Products: []domain.Product{
			*domain.NewProduct("p1", "Laptop"),
			*domain.NewProduct("p2", "Monitor"),
		},
		PriceEntries: []domain.PriceEntry{
			*domain.NewPriceEntry("pbe1", "p1", decimal.RequireFromString("999.9")),
		},
	}, nil
}

func (m *memoryRemote) FetchOrderLineItems(_ context.Context, _ string) ([]domain.OrderLineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.OrderLineItem(nil), m.items...), nil
}

func (m *memoryRemote) AddOrIncrementLineItem(_ context.Context, orderID, productID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	price := decimal.RequireFromString("999.9")
	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity++
			m.items[i].TotalPrice = price.Mul(decimal.NewFromInt(m.items[i].Quantity))
			return nil
		}
	}

	m.items = append(m.items, domain.OrderLineItem{
		ID:          "li-" + productID,
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: "Laptop",
		ListPrice:   price,
		Quantity:    1,
		TotalPrice:  price,
	})
	return nil
}

func (m *memoryRemote) DeleteLineItem(_ context.Context, lineItemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == lineItemID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}

	return e.NewRemoteError(e.ErrOrderItemNotFound.Error(), e.ErrOrderItemNotFound)
}

func (m *memoryRemote) SendOrder(_ context.Context, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == domain.OrderStatusActivated || len(m.items) == 0 {
		return false, nil
	}
	m.status = domain.OrderStatusActivated

	return true, nil
}

func (m *memoryRemote) GetOrderContext(_ context.Context, orderID string) (*domain.OrderContext, error) {
	if orderID != testOrderID {
		return nil, e.NewRemoteError(e.ErrOrderNotFound.Error(), e.ErrOrderNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return domain.NewOrderContext("00000100", m.status), nil
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	remote  *memoryRemote
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	remote := &memoryRemote{status: domain.OrderStatusDraft}
	manager := session.NewManager(remote, remote, remote, &cfg.SessionCfg{MaxSessions: 10, IdleTTL: time.Hour}, logger.NewNopLogger())
	t.Cleanup(func() { _ = manager.Stop(context.Background()) })

	mux := chi.NewRouter()
	NewRouter(mux, logger.NewNopLogger()).Init(manager, "/swagger/doc.json")

	return &testAPI{t: t, handler: mux, remote: remote}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	return rec
}

func (a *testAPI) openSession() string {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/sessions", CreateSessionRequest{OrderID: testOrderID})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateSessionResponse
	decode(a.t, rec, &resp)
	require.NotEmpty(a.t, resp.SessionID)

	return resp.SessionID
}

func (a *testAPI) notifications(id string) []notify.Notification {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/sessions/"+id+"/notifications", nil)
	require.Equal(a.t, http.StatusOK, rec.Code)

	var resp NotificationsResponse
	decode(a.t, rec, &resp)

	return resp.Notifications
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func addProduct(productID string) CatalogActionRequest {
	return CatalogActionRequest{Action: component.ActionAddProduct, ProductID: productID}
}

func TestCreateSession(t *testing.T) {
	t.Run("mounts catalog with first page", func(t *testing.T) {
		api := newTestAPI(t)
		id := api.openSession()

		rec := api.do(http.MethodGet, "/sessions/"+id+"/catalog", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var catalog CatalogResponse
		decode(t, rec, &catalog)
		require.Len(t, catalog.Rows, 2)
		assert.Equal(t, "999.90", catalog.Rows[0].UnitPrice)
		assert.Equal(t, "/p1", catalog.Rows[0].ProductURL)
		assert.Equal(t, "0.00", catalog.Rows[1].UnitPrice)
		assert.Equal(t, 2, catalog.Page)
		assert.True(t, catalog.HasMore)
		assert.False(t, catalog.IsLoading)
	})

	t.Run("missing order id", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/sessions", CreateSessionRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/sessions", `{"orderId":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, e.ErrInvalidJSON.Error(), resp.Message)
	})

	t.Run("unknown order", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/sessions", CreateSessionRequest{OrderID: "404"})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, e.ErrOrderNotFound.Error(), resp.Message)
	})
}

func TestUnknownSession(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/sessions/nope/catalog", "/sessions/nope/order", "/sessions/nope/notifications"} {
		rec := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestLoadMoreStopsOnEmptyPage(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()

	rec := api.do(http.MethodPost, "/sessions/"+id+"/catalog/more", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog CatalogResponse
	decode(t, rec, &catalog)
	assert.False(t, catalog.HasMore)
	assert.Len(t, catalog.Rows, 2)
}

func TestAddProductThroughBus(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()

	rec := api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var order OrderResponse
	decode(t, rec, &order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(2), order.Items[0].Quantity)
	assert.Equal(t, "1999.80", order.Items[0].TotalPrice)
	assert.Equal(t, "/li-p1", order.Items[0].OrderItemURL)
	assert.False(t, order.IsEmpty)
	assert.Empty(t, api.notifications(id))

	t.Run("product without price entry", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p2"))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, e.ErrPriceEntryNotFound.Error(), resp.Message)
	})

	t.Run("unknown action is ignored", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", CatalogActionRequest{Action: "view", ProductID: "p1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var order OrderResponse
		decode(t, rec, &order)
		assert.Equal(t, int64(2), order.Items[0].Quantity)
	})
}

func TestDeleteLineItem(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()
	api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p1"))

	t.Run("success", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/sessions/"+id+"/order/actions",
			OrderActionRequest{Action: component.ActionDeleteOrderLineItem, LineItemID: "li-p1"})
		require.Equal(t, http.StatusOK, rec.Code)

		var order OrderResponse
		decode(t, rec, &order)
		assert.True(t, order.IsEmpty)

		notes := api.notifications(id)
		require.Len(t, notes, 1)
		assert.Equal(t, notify.KindSuccess, notes[0].Kind)
		assert.Equal(t, component.MsgOrderItemDeleted, notes[0].Message)
	})

	t.Run("error goes to the caller without a toast", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/sessions/"+id+"/order/actions",
			OrderActionRequest{Action: component.ActionDeleteOrderLineItem, LineItemID: "li-p1"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp ErrorResponse
		decode(t, rec, &resp)
		assert.Equal(t, e.ErrOrderItemNotFound.Error(), resp.Message)
		assert.Empty(t, api.notifications(id))
	})

	t.Run("missing line item", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/sessions/"+id+"/order/actions",
			OrderActionRequest{Action: component.ActionDeleteOrderLineItem})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSendOrderLocksComposer(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()
	api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p1"))

	rec := api.do(http.MethodPost, "/sessions/"+id+"/order/send", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order OrderResponse
	decode(t, rec, &order)
	assert.True(t, order.Activated)
	assert.Equal(t, "Order 00000100", order.Title)
	assert.False(t, order.IsLoading)

	notes := api.notifications(id)
	require.Len(t, notes, 1)
	assert.Equal(t, component.MsgOrderSent, notes[0].Message)

	rec = api.do(http.MethodPost, "/sessions/"+id+"/catalog/actions", addProduct("p1"))
	require.Equal(t, http.StatusOK, rec.Code)

	decode(t, rec, &order)
	assert.Equal(t, int64(1), order.Items[0].Quantity)

	notes = api.notifications(id)
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindInfo, notes[0].Kind)
	assert.Equal(t, component.MsgOrderActivated, notes[0].Message)
}

func TestRefreshOrder(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()

	require.NoError(t, api.remote.AddOrIncrementLineItem(context.Background(), testOrderID, "p1", "pbe1"))

	rec := api.do(http.MethodPost, "/sessions/"+id+"/order/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order OrderResponse
	decode(t, rec, &order)
	assert.Len(t, order.Items, 1)
}

func TestCloseSession(t *testing.T) {
	api := newTestAPI(t)
	id := api.openSession()

	rec := api.do(http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/sessions/"+id+"/order", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"activated", e.Wrap("op", e.NewRemoteError(e.ErrOrderActivated.Error(), e.ErrOrderActivated)), http.StatusConflict, e.ErrOrderActivated.Error()},
		{"field errors", e.NewRemoteError("", e.ErrPriceEntryMismatch).WithFieldError("PricebookEntryId", "bad"), http.StatusUnprocessableEntity, "bad"},
		{"too many sessions", e.Wrap("op", e.ErrTooManySessions), http.StatusServiceUnavailable, e.ErrTooManySessions.Error()},
		{"plain", context.DeadlineExceeded, http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestSwaggerRouteIsMounted(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "/sessions"))
}
