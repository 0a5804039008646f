package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogUseCase реализует бизнес-логику каталога товаров.
type CatalogUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// ListProducts возвращает весь каталог: сначала пробует кэш, при промахе читает БД
// и фоново прогревает кэш.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]ProductInfo, error) {
	const op = "CatalogUseCase.ListProducts"

	cached, err := c.cacheRepo.GetCatalog(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}

	products, err := c.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление каталога в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetCatalog(bgCtx, products); err != nil {
			c.logger.Warnf("Failed to cache catalog in background: %v", e.Wrap(op, err))
		}
	}()

	return products, nil
}

// SearchProducts возвращает товары, имя или категория которых содержит запрос.
// Пустой запрос эквивалентен полному каталогу. Пустой результат — не ошибка:
// интерпретация «ничего не найдено» принадлежит слою доставки.
func (c *CatalogUseCase) SearchProducts(ctx context.Context, query string) ([]ProductInfo, error) {
	const op = "CatalogUseCase.SearchProducts"

	query = strings.TrimSpace(query)
	if query == "" {
		return c.ListProducts(ctx)
	}

	products, err := c.productRepo.Search(ctx, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// RegisterNewProduct обрабатывает добавление нового товара с изображениями,
// событием outbox и сохранением в хранилища.
func (c *CatalogUseCase) RegisterNewProduct(ctx context.Context, req *AddNewProductReq) (*ProductInfo, error) {
	const op = "CatalogUseCase.RegisterNewProduct"

	var err error
	if err = c.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		imagesRes *UploadImagesRes
		uploaded  bool
	)

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции и очистка загруженных изображений
	defer func() {
		if err != nil {
			if tx.IsActive() {
				tx.Rollback(ctx)
			}

			if uploaded && imagesRes != nil {
				c.logger.Warnf(
					"Cleaning up orphaned images after transaction failure. product_name: %s, error: %v",
					req.Name,
					e.Wrap(op, err),
				)

				c.imagesInfra.CleanupImages(imagesRes.ImagesKeys)
			}
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Сохранение изображений в MinIO; адрес первого изображения становится картинкой товара
	var imageURL string
	if len(req.Images) > 0 {
		imagesRes, err = c.imagesInfra.UploadImages(ctx, NewUploadImagesReq(req.Name, req.Images))
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		uploaded = true
		imageURL = imagesRes.ImagesURLs[0]
	}

	product, err := c.productRepo.Create(ctx, domain.NewProduct(
		newProductID(), req.Name, req.Category, req.Cost, req.Rating, imageURL,
	))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewProductInfo(product.ID, product.Name, product.Category, product.Cost, product.Rating, product.ImageURL)

	event, err := NewProductUpsertedEvent(&info)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = c.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Инвалидация закэшированного каталога
	if err := c.cacheRepo.DeleteCatalog(ctx); err != nil {
		c.logger.Warnf("Failed to invalidate catalog cache: %v", e.Wrap(op, err))
	}

	return &info, nil
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (c *CatalogUseCase) validateProduct(req *AddNewProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Cost <= 0 {
		return e.ErrPriceMustBePositive
	}

	if req.Rating < 0 || req.Rating > 5 {
		return e.ErrStatusBadRequest
	}

	return nil
}

// newProductID возвращает непрозрачный идентификатор товара.
func newProductID() string {
	return uuid.NewString()
}
