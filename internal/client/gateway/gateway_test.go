package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/cfg"
	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
)

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw := NewGateway(&cfg.ClientConfig{
		Endpoint:       srv.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.NewSlogLoggerTo(io.Discard))

	return gw, srv
}

func TestFetchProducts(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"_id":"p2","name":"Phone","category":"electronics","cost":599.99,"rating":4,"image":"http://img/p2.png"},
			{"_id":"p1","name":"Mug","category":"kitchen","cost":120,"rating":5,"image":"http://img/p1.png"}
		]`)
	}))

	products, err := gw.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].ID, "порядок ответа сервера сохраняется")
	assert.Equal(t, int64(59999), products[0].Cost, "рубли переводятся в копейки без потерь")
	assert.Equal(t, int64(12000), products[1].Cost)
	assert.Equal(t, "http://img/p2.png", products[0].ImageURL)
}

func TestSearchProductsNotFoundMeansEmpty(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/search", r.URL.Path)
		require.Equal(t, "nothing", r.URL.Query().Get("value"))
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"No products found"}`)
	}))

	products, err := gw.SearchProducts(context.Background(), "nothing")

	require.NoError(t, err, "404 при поиске — пустой результат, а не ошибка")
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestFetchCartEmptyTokenSkipsNetwork(t *testing.T) {
	called := false
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	entries, err := gw.FetchCart(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, entries)
	assert.False(t, called, "пустой токен не должен порождать запрос")
}

func TestFetchCartSendsBearerToken(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		io.WriteString(w, `[{"productId":"p1","qty":2}]`)
	}))

	entries, err := gw.FetchCart(context.Background(), "token-1")

	require.NoError(t, err)
	assert.Equal(t, []domain.CartEntry{{ProductID: "p1", Quantity: 2}}, entries)
}

func TestFetchCartAuthRejected(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"success":false,"message":"Protected route, token expired or invalid"}`)
	}))

	_, err := gw.FetchCart(context.Background(), "stale-token")

	require.ErrorIs(t, err, e.ErrAuthRejected)
	assert.EqualError(t, err, "Protected route, token expired or invalid", "текст сервера передаётся дословно")
}

func TestUpsertCartEntryReturnsFullCart(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body cartEntryWire
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "p2", body.ProductID)
		require.Equal(t, 3, body.Quantity)

		io.WriteString(w, `[{"productId":"p1","qty":1},{"productId":"p2","qty":3}]`)
	}))

	entries, err := gw.UpsertCartEntry(context.Background(), "token-1", "p2", 3)

	require.NoError(t, err)
	assert.Equal(t, []domain.CartEntry{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 3},
	}, entries)
}

func TestTransportFailureIsServiceUnreachable(t *testing.T) {
	gw, srv := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := gw.FetchProducts(context.Background())

	require.ErrorIs(t, err, e.ErrServiceUnreachable)
}

func TestLogin(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var body credentialsWire
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "shopper1", body.Username)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"token":"token-1","username":"shopper1","balance":5000}`)
	}))

	session, err := gw.Login(context.Background(), "shopper1", "secret-pass")

	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, "token-1", session.Token)
	assert.Equal(t, "shopper1", session.Username)
	assert.Equal(t, int64(500_000), session.Balance)
}

func TestLoginRejectedWithServerMessage(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"success":false,"message":"Password is incorrect"}`)
	}))

	_, err := gw.Login(context.Background(), "shopper1", "wrong")

	require.Error(t, err)
	assert.EqualError(t, err, "Password is incorrect")
	assert.ErrorIs(t, err, e.ErrValidation)
}

func TestRegister(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true}`)
	}))

	require.NoError(t, gw.Register(context.Background(), "shopper1", "secret-pass"))
}

func TestServerMessageFallback(t *testing.T) {
	gw, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<html>gateway timeout</html>`)
	}))

	_, err := gw.FetchProducts(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, e.ErrInternalServerError.Error(), "нечитаемое тело заменяется нейтральным текстом")
	assert.ErrorIs(t, err, e.ErrInternalServerError)
}

func TestUnitsToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      json.Number
		want    int64
		wantErr bool
	}{
		{name: "integer units", in: "120", want: 12000},
		{name: "two decimals", in: "599.99", want: 59999},
		{name: "one decimal", in: "10.5", want: 1050},
		{name: "zero", in: "0", want: 0},
		{name: "empty treated as zero", in: "", want: 0},
		{name: "garbage", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unitsToCents(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
