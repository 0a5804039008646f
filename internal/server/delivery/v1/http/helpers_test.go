package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/server/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "integer", in: "600", want: 60000},
		{name: "two decimals", in: "599.99", want: 59999},
		{name: "one decimal", in: "10.5", want: 1050},
		{name: "zero", in: "0", want: 0},
		{name: "whitespace only", in: "   ", wantErr: e.ErrInvalidPrice},
		{name: "garbage", in: "abc", wantErr: e.ErrInvalidPrice},
		{name: "negative", in: "-1", wantErr: e.ErrInvalidPrice},
		{name: "over limit", in: "1000000001", wantErr: e.ErrInvalidPrice},
		{name: "three decimals", in: "1.999", wantErr: e.ErrPricePrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.in != "   " { // пустая цена — отдельный текст без доменной ошибки
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsToUnits(t *testing.T) {
	assert.Equal(t, 599.99, centsToUnits(59999))
	assert.Equal(t, 120.0, centsToUnits(12000))
	assert.Equal(t, 0.0, centsToUnits(0))
	assert.Equal(t, 0.01, centsToUnits(1))
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation error is 400 with verbatim text",
			err:      e.Wrap("AuthUseCase.Login", e.ErrWrongPassword),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Password is incorrect",
		},
		{
			name:     "taken username",
			err:      e.ErrUsernameTaken,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Username is already taken",
		},
		{
			name:     "empty search result is 404",
			err:      e.ErrNoProductsFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "No products found",
		},
		{
			name:     "unknown error hides details",
			err:      e.Wrap("ProductRepo.GetAll", assert.AnError),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestUnwrapMessageReturnsInnermost(t *testing.T) {
	err := e.Wrap("outer op", e.Wrap("inner op", e.ErrUsernameTooShort))

	assert.Equal(t, e.ErrUsernameTooShort.Error(), unwrapMessage(err))
}

func TestToProductJSON(t *testing.T) {
	json := toProductJSON(usecase.ProductInfo{
		ID:       "p1",
		Name:     "Phone",
		Category: "electronics",
		Cost:     59999,
		Rating:   4,
		ImageURL: "http://img/p1.png",
	})

	assert.Equal(t, "p1", json.ID)
	assert.Equal(t, 599.99, json.Cost, "клиент получает рубли, не копейки")
	assert.Equal(t, "http://img/p1.png", json.ImageURL)
}
