package usecase

import (
	"context"
	"errors"

	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// CartUseCase реализует серверную логику корзины.
// Сервер авторитетен: каждая мутация возвращает полную актуальную корзину,
// и именно её клиент обязан принять как новое состояние.
type CartUseCase struct {
	cartRepo    CartRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewCartUC(
	cartRepo CartRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// GetCart возвращает корзину пользователя в порядке добавления строк.
func (c *CartUseCase) GetCart(ctx context.Context, userID string) ([]CartEntryInfo, error) {
	const op = "CartUseCase.GetCart"

	entries, err := c.cartRepo.GetEntries(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return entries, nil
}

// UpsertEntry устанавливает количество одного товара в корзине.
// Нулевое количество удаляет строку: запись с qty=0 в корзине не существует.
// Изменение строки и событие outbox пишутся в одной транзакции.
func (c *CartUseCase) UpsertEntry(ctx context.Context, req *UpsertCartReq) ([]CartEntryInfo, error) {
	const op = "CartUseCase.UpsertEntry"

	var err error
	if req.Quantity < 0 {
		return nil, e.Wrap(op, e.ErrQuantityNegative)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	// Неизвестный товар отклоняется до каких-либо изменений
	if _, err = c.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = e.ErrProductNotFound
		}
		return nil, e.Wrap(op, err)
	}

	if req.Quantity == 0 {
		err = c.cartRepo.Delete(ctx, req.UserID, req.ProductID)
	} else {
		err = c.cartRepo.Upsert(ctx, req.UserID, req.ProductID, req.Quantity)
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := NewCartUpdatedEvent(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err = c.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Полная корзина читается в той же транзакции, чтобы ответ был согласован с записью
	entries, err := c.cartRepo.GetEntries(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return entries, nil
}
