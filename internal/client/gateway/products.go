package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

// productWire — товар в формате ответа сервера. Стоимость приходит числом
// в рублях; внутри клиента она хранится в копейках.
type productWire struct {
	ID       string      `json:"_id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Cost     json.Number `json:"cost"`
	Rating   int         `json:"rating"`
	Image    string      `json:"image"`
}

// FetchProducts загружает полный каталог. При любом сбое каталог остаётся
// пустым: частичная загрузка не возвращается.
func (g *Gateway) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	_, data, err := g.doRequest(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, err
	}

	return decodeProducts(data)
}

// SearchProducts ищет товары по подстроке. Ответ 404 означает «ничего не
// найдено» и превращается в пустой результат, а не в ошибку.
func (g *Gateway) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	path := "/products/search?value=" + url.QueryEscape(query)

	_, data, err := g.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return []domain.Product{}, nil
		}
		return nil, err
	}

	return decodeProducts(data)
}

func decodeProducts(data []byte) ([]domain.Product, error) {
	var wire []productWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, e.Wrap("gateway: decode products", err)
	}

	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		cost, err := unitsToCents(w.Cost)
		if err != nil {
			return nil, e.Wrap("gateway: product "+w.ID, err)
		}

		products = append(products, domain.Product{
			ID:       w.ID,
			Name:     w.Name,
			Category: w.Category,
			Cost:     cost,
			Rating:   w.Rating,
			ImageURL: w.Image,
		})
	}

	return products, nil
}

// unitsToCents переводит стоимость из рублей в копейки без потерь float64.
func unitsToCents(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
