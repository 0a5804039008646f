package usecase

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

// CatalogGateway — то, что каталогу и поиску нужно от сервера.
type CatalogGateway interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// CartGateway — то, что корзине нужно от сервера.
type CartGateway interface {
	FetchCart(ctx context.Context, token string) ([]domain.CartEntry, error)
	UpsertCartEntry(ctx context.Context, token, productID string, quantity int) ([]domain.CartEntry, error)
}
