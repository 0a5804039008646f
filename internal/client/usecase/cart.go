package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// UpsertPolicy управляет поведением при добавлении уже имеющегося товара.
// PreventDuplicate=true используется кнопкой «в корзину» из каталога:
// повторное добавление отклоняется, количество не меняется. Степпер внутри
// корзины работает с PreventDuplicate=false и перезаписывает количество.
type UpsertPolicy struct {
	PreventDuplicate bool
}

// CartCoordinator проводит все мутации корзины через сервер и хранит
// последнее подтверждённое состояние. Локальных слияний нет: успешный ответ
// сервера целиком замещает локальные строки, неудачная мутация оставляет их
// нетронутыми. Ответы применяются в порядке прихода; для перекрывающихся
// мутаций одного товара порядок разрешения не гарантируется — побеждает
// последний пришедший ответ.
type CartCoordinator struct {
	gw CartGateway

	mu      sync.RWMutex
	entries []domain.CartEntry
}

func NewCartCoordinator(gw CartGateway) *CartCoordinator {
	return &CartCoordinator{gw: gw}
}

// Load подтягивает корзину с сервера. Для неаутентифицированной сессии
// корзина пуста и сеть не задействуется.
func (c *CartCoordinator) Load(ctx context.Context, session domain.Session) error {
	const op = "CartCoordinator.Load"

	entries, err := c.gw.FetchCart(ctx, session.Token)
	if err != nil {
		return e.Wrap(op, err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	return nil
}

// AddOrUpdate устанавливает количество товара в корзине.
// Порядок проверок:
//  1. без аутентификации — e.ErrUnauthenticated, сеть не задействуется;
//  2. товар уже в корзине при PreventDuplicate — e.ErrDuplicateItem,
//     сеть не задействуется, количество не меняется;
//  3. иначе один запрос к серверу; успех замещает локальное состояние
//     полным ответом сервера.
func (c *CartCoordinator) AddOrUpdate(ctx context.Context, session domain.Session, productID string, quantity int, policy UpsertPolicy) ([]domain.CartEntry, error) {
	const op = "CartCoordinator.AddOrUpdate"

	if !session.Authenticated {
		return nil, e.ErrUnauthenticated
	}

	if policy.PreventDuplicate && c.Contains(productID) {
		return nil, e.ErrDuplicateItem
	}

	entries, err := c.gw.UpsertCartEntry(ctx, session.Token, productID, quantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	return entries, nil
}

// Entries возвращает последнее подтверждённое сервером состояние корзины.
func (c *CartCoordinator) Entries() []domain.CartEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entries
}

// Contains сообщает, есть ли товар в последнем подтверждённом состоянии.
func (c *CartCoordinator) Contains(productID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, entry := range c.entries {
		if entry.ProductID == productID {
			return true
		}
	}

	return false
}

// Clear сбрасывает локальное состояние корзины (выход из аккаунта).
func (c *CartCoordinator) Clear() {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
}
