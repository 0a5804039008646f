package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// cartEntryWire — строка корзины в формате обмена с сервером.
type cartEntryWire struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// FetchCart загружает корзину пользователя. Пустой токен означает
// неаутентифицированную сессию: возвращается (nil, nil), без похода в сеть.
// Отказ сервера по токену приходит как ошибка, сопоставимая с e.ErrAuthRejected.
func (g *Gateway) FetchCart(ctx context.Context, token string) ([]domain.CartEntry, error) {
	if token == "" {
		return nil, nil
	}

	_, data, err := g.doRequest(ctx, http.MethodGet, "/cart", token, nil)
	if err != nil {
		return nil, err
	}

	return decodeCartEntries(data)
}

// UpsertCartEntry устанавливает количество одного товара. Сервер авторитетен:
// в ответ приходит полная обновлённая корзина, которой вызывающий код
// целиком замещает локальное состояние.
func (g *Gateway) UpsertCartEntry(ctx context.Context, token, productID string, quantity int) ([]domain.CartEntry, error) {
	body := cartEntryWire{ProductID: productID, Quantity: quantity}

	_, data, err := g.doRequest(ctx, http.MethodPost, "/cart", token, body)
	if err != nil {
		return nil, err
	}

	return decodeCartEntries(data)
}

func decodeCartEntries(data []byte) ([]domain.CartEntry, error) {
	var wire []cartEntryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, e.Wrap("gateway: decode cart", err)
	}

	entries := make([]domain.CartEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, domain.CartEntry{
			ProductID: w.ProductID,
			Quantity:  w.Quantity,
		})
	}

	return entries, nil
}
