package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type credentialsWire struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponseWire struct {
	Success  bool        `json:"success"`
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Balance  json.Number `json:"balance"`
}

// Login аутентифицирует пользователя и возвращает готовую сессию.
// Отказ сервера (неизвестное имя, неверный пароль) приходит как *APIError
// с текстом сервера, который показывается пользователю дословно.
func (g *Gateway) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	_, data, err := g.doRequest(ctx, http.MethodPost, "/auth/login", "", credentialsWire{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var wire loginResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, e.Wrap("gateway: decode login response", err)
	}

	balance := int64(0)
	if wire.Balance != "" {
		d, err := decimal.NewFromString(wire.Balance.String())
		if err != nil {
			return nil, e.Wrap("gateway: decode balance", err)
		}
		balance = d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	}

	return &domain.Session{
		Authenticated: true,
		Username:      wire.Username,
		Token:         wire.Token,
		Balance:       balance,
	}, nil
}

// Register создаёт нового пользователя. Успех не включает автоматический
// вход: за логином вызывающий код обращается отдельно.
func (g *Gateway) Register(ctx context.Context, username, password string) error {
	_, _, err := g.doRequest(ctx, http.MethodPost, "/auth/register", "", credentialsWire{
		Username: username,
		Password: password,
	})

	return err
}
