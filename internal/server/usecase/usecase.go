package usecase

import "context"

type CatalogUC interface {
	ListProducts(ctx context.Context) ([]ProductInfo, error)
	SearchProducts(ctx context.Context, query string) ([]ProductInfo, error)
	RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*ProductInfo, error)
}

type CartUC interface {
	GetCart(ctx context.Context, userID string) ([]CartEntryInfo, error)
	UpsertEntry(ctx context.Context, req *UpsertCartReq) ([]CartEntryInfo, error)
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) error
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
}
