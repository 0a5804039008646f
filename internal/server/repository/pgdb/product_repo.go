package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/internal/server/repository/pgdb/converter"
	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет новый товар; имя уникально в пределах каталога.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (id, name, category, cost, rating, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name)
		DO UPDATE SET
			category = EXCLUDED.category,
			cost = EXCLUDED.cost,
			rating = EXCLUDED.rating,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING id, name, category, cost, rating, image_url, created_at, updated_at;
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.ID, product.Name, product.Category, product.Cost, product.Rating, product.ImageURL,
	).Scan(
		&model.ID, &model.Name, &model.Category, &model.Cost,
		&model.Rating, &model.ImageURL, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetAll возвращает весь каталог в порядке добавления товаров.
func (p *ProductRepo) GetAll(ctx context.Context) ([]usecase.ProductInfo, error) {
	query := `
		SELECT id, name, category, cost, rating, image_url
		FROM products
		ORDER BY created_at, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}

// Search возвращает товары, имя или категория которых содержит подстроку запроса
// без учёта регистра.
func (p *ProductRepo) Search(ctx context.Context, query string) ([]usecase.ProductInfo, error) {
	sql := `
		SELECT id, name, category, cost, rating, image_url
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
		ORDER BY created_at, id
	`

	rows, err := p.pool.Query(ctx, sql, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfos(rows)
}

// GetByID возвращает товар по идентификатору; pgx.ErrNoRows, если товара нет.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*usecase.ProductInfo, error) {
	query := `
		SELECT id, name, category, cost, rating, image_url
		FROM products
		WHERE id = $1
	`

	var product usecase.ProductInfo
	err := querierFromCtx(ctx, p.pool).QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Category,
		&product.Cost, &product.Rating, &product.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func scanProductInfos(rows pgx.Rows) ([]usecase.ProductInfo, error) {
	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Category,
			&product.Cost, &product.Rating, &product.ImageURL,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
