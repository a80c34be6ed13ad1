package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/product-ordering/internal/session"
	"github.com/DRSN-tech/product-ordering/pkg/e"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const sessionIDParam = "sessionID"

// SessionManager — то, что обработчикам нужно от менеджера сессий.
type SessionManager interface {
	Create(ctx context.Context, orderID string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Close(id string) error
}

type SessionHandler struct {
	manager SessionManager
	logger  logger.Logger
}

func NewSessionHandler(manager SessionManager, logger logger.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: logger}
}

// @Summary Открыть сессию заказа
// @Description Монтирует каталог и компонент заказа для orderId. Первая страница каталога загружается сразу.
// @Tags sessions
// @Accept json
// @Produce json
// @Param input body CreateSessionRequest true "Заказ"
// @Success 201 {object} CreateSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.OrderID == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	s, err := h.manager.Create(r.Context(), req.OrderID)
	if err != nil {
		h.logger.Errorf(err, "failed to open session for order %s", req.OrderID)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CreateSessionResponse{SessionID: s.ID, OrderID: s.OrderID})
}

// @Summary Закрыть сессию
// @Tags sessions
// @Param sessionID path string true "ID сессии"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID} [delete]
func (h *SessionHandler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(chi.URLParam(r, sessionIDParam)); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Состояние каталога
// @Tags catalog
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} CatalogResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID}/catalog [get]
func (h *SessionHandler) getCatalog(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, toCatalogResponse(s.Catalog.View()))
}

// @Summary Загрузить следующую страницу каталога
// @Description Ничего не делает, если страниц больше нет или загрузка уже идёт.
// @Tags catalog
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} CatalogResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{sessionID}/catalog/more [post]
func (h *SessionHandler) loadMore(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Catalog.LoadNextPage(r.Context()); err != nil {
		h.logger.Errorf(err, "session %s: failed to load catalog page", s.ID)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCatalogResponse(s.Catalog.View()))
}

// @Summary Действие над строкой каталога
// @Description addProduct публикует намерение добавить продукт в заказ. Неизвестные действия игнорируются.
// @Tags catalog
// @Accept json
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Param input body CatalogActionRequest true "Действие"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{sessionID}/catalog/actions [post]
func (h *SessionHandler) catalogAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req CatalogActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Action == "" || req.ProductID == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	if err := s.Catalog.HandleRowAction(r.Context(), req.Action, req.ProductID); err != nil {
		WriteError(w, err)
		return
	}

	// Шина синхронна: к этому моменту компонент заказа уже обработал намерение
	WriteSuccess(w, http.StatusOK, toOrderResponse(s.Composer.View()))
}

// @Summary Состояние заказа
// @Tags order
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID}/order [get]
func (h *SessionHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(s.Composer.View()))
}

// @Summary Действие над позицией заказа
// @Description deleteOrderLineItem удаляет позицию. Ошибка удаления возвращается клиенту без уведомления.
// @Tags order
// @Accept json
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Param input body OrderActionRequest true "Действие"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{sessionID}/order/actions [post]
func (h *SessionHandler) orderAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req OrderActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.Action == "" || req.LineItemID == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	if err := s.Composer.HandleRowAction(r.Context(), req.Action, req.LineItemID); err != nil {
		h.logger.Errorf(err, "session %s: order action %s on %s", s.ID, req.Action, req.LineItemID)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(s.Composer.View()))
}

// @Summary Отправить заказ
// @Description Результат отправки приходит уведомлением.
// @Tags order
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID}/order/send [post]
func (h *SessionHandler) sendOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.Composer.SendOrder(r.Context())
	WriteSuccess(w, http.StatusOK, toOrderResponse(s.Composer.View()))
}

// @Summary Перечитать позиции заказа
// @Tags order
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID}/order/refresh [post]
func (h *SessionHandler) refreshOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.Composer.Refresh(r.Context())
	WriteSuccess(w, http.StatusOK, toOrderResponse(s.Composer.View()))
}

// @Summary Забрать накопившиеся уведомления
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID сессии"
// @Success 200 {object} NotificationsResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID}/notifications [get]
func (h *SessionHandler) notifications(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, NotificationsResponse{Notifications: s.Notes.Drain()})
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.manager.Get(chi.URLParam(r, sessionIDParam))
	if err != nil {
		WriteError(w, err)
		return nil, false
	}

	return s, true
}
