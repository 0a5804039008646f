package http

import (
	"github.com/DRSN-tech/go-storefront/internal/server/auth"
	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router    *chi.Mux
	validator auth.TokenValidator
	logger    logger.Logger
}

func NewRouter(router *chi.Mux, validator auth.TokenValidator, logger logger.Logger) *Router {
	return &Router{router: router, validator: validator, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, authUC usecase.AuthUC) {
	r.router.Use(RequestLogger(r.logger))
	r.router.Use(Metrics)

	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(catalogUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(cartUC, r.logger), r.validator, r.logger)
		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/search", prHandler.searchProducts)
		pr.Post("/", prHandler.registerNewProduct)
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler, validator auth.TokenValidator, log logger.Logger) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Use(RequireAuth(validator, log))
		cr.Get("/", cartHandler.getCart)
		cr.Post("/", cartHandler.postCart)
	})
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", authHandler.register)
		ar.Post("/login", authHandler.login)
	})
}
