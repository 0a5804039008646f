package usecase

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetAll(ctx context.Context) ([]ProductInfo, error)
	Search(ctx context.Context, query string) ([]ProductInfo, error)
	GetByID(ctx context.Context, id string) (*ProductInfo, error)
}

type CartRepository interface {
	GetEntries(ctx context.Context, userID string) ([]CartEntryInfo, error)
	Upsert(ctx context.Context, userID, productID string, quantity int) error
	Delete(ctx context.Context, userID, productID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetCatalog(ctx context.Context) ([]ProductInfo, error)
	SetCatalog(ctx context.Context, products []ProductInfo) error
	DeleteCatalog(ctx context.Context) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
