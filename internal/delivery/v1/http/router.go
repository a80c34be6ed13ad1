package http

import (
	_ "github.com/DRSN-tech/product-ordering/docs" // Регистрация описания API для swagger
	"github.com/DRSN-tech/product-ordering/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(manager SessionManager, swaggerURL string) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		sessionHandler := NewSessionHandler(manager, r.logger)
		registerSessionRoutes(v1, sessionHandler)
	})
}

func registerSessionRoutes(router chi.Router, h *SessionHandler) {
	router.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", h.createSession)

		sr.Route("/{"+sessionIDParam+"}", func(s chi.Router) {
			s.Delete("/", h.closeSession)
			s.Get("/notifications", h.notifications)

			s.Get("/catalog", h.getCatalog)
			s.Post("/catalog/more", h.loadMore)
			s.Post("/catalog/actions", h.catalogAction)

			s.Get("/order", h.getOrder)
			s.Post("/order/actions", h.orderAction)
			s.Post("/order/send", h.sendOrder)
			s.Post("/order/refresh", h.refreshOrder)
		})
	})
}
