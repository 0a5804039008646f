package pgdb

import (
	"context"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CartRepo реализует репозиторий корзин поверх PostgreSQL.
// Одна строка таблицы — одна пара (пользователь, товар); количество всегда положительно.
type CartRepo struct {
	pool *pgxpool.Pool
}

func NewCartRepo(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

// GetEntries возвращает строки корзины в порядке их первого добавления.
// Читает через транзакцию из контекста, если она есть.
func (c *CartRepo) GetEntries(ctx context.Context, userID string) ([]usecase.CartEntryInfo, error) {
	query := `
		SELECT product_id, qty
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, product_id
	`

	rows, err := querierFromCtx(ctx, c.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.CartEntryInfo, 0)
	for rows.Next() {
		var entry usecase.CartEntryInfo
		if err := rows.Scan(&entry.ProductID, &entry.Quantity); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Upsert идемпотентно создаёт или обновляет строку корзины,
// сохраняя created_at первой вставки (и тем самым порядок строк).
func (c *CartRepo) Upsert(ctx context.Context, userID, productID string, quantity int) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, qty)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET
			qty = EXCLUDED.qty,
			updated_at = NOW()
	`

	if _, err := tx.Exec(ctx, query, userID, productID, quantity); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет строку корзины; отсутствие строки не считается ошибкой.
func (c *CartRepo) Delete(ctx context.Context, userID, productID string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	if _, err := tx.Exec(ctx, query, userID, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
