package http

import (
	_ "github.com/DRSN-tech/storefront-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
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

func (r *Router) Init(catalogUC usecase.CatalogUC, subscriptionUC usecase.SubscriptionUC, diagnosticsUC usecase.DiagnosticsUC) {
	r.router.Use(requestID, accessLog(r.logger), middleware.Recoverer, cors)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	sysHandler := NewSystemHandler(diagnosticsUC, r.logger)
	r.router.Get("/", sysHandler.root)
	r.router.Get("/test", sysHandler.diagnose)

	r.router.Route("/api", func(api chi.Router) {
		api.Get("/hello", sysHandler.hello)
		registerProductRoutes(api, NewProductHandler(catalogUC, r.logger))
		registerSubscriptionRoutes(api, NewSubscriptionHandler(subscriptionUC, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/products", prHandler.listProducts)
}

func registerSubscriptionRoutes(router chi.Router, subHandler *SubscriptionHandler) {
	router.Post("/subscribe", subHandler.subscribe)
}
