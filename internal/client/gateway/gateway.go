package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

// Gateway — HTTP-клиент API витрины. Единственная точка обмена с сервером:
// каталог, поиск, корзина и аутентификация ходят через него.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

func NewGateway(cfg *cfg.ClientConfig, logger logger.Logger) *Gateway {
	return &Gateway{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    cfg.Endpoint,
		logger:     logger,
	}
}

// errorBody — тело ответа сервера при отказе.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// doRequest выполняет запрос и возвращает статус с телом ответа.
// Транспортный сбой (нет интерпретируемого ответа) превращается в
// e.ErrServiceUnreachable; ответ со статусом >= 400 — в *APIError
// с текстом сервера.
func (g *Gateway) doRequest(ctx context.Context, method, path, token string, body any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, e.Wrap("gateway: marshal request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, e.Wrap("gateway: build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warnf("%s %s: transport failure: %v", method, path, err)
		return 0, nil, e.Wrap(err.Error(), e.ErrServiceUnreachable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, e.Wrap(err.Error(), e.ErrServiceUnreachable)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
		g.logger.Debugf("%s %s -> %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return resp.StatusCode, data, apiErr
	}

	return resp.StatusCode, data, nil
}

// serverMessage достаёт текст ошибки из тела {success:false, message};
// если тело нечитаемо, возвращает нейтральный текст.
func serverMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return e.ErrInternalServerError.Error()
	}
	return body.Message
}
