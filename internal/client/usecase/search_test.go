package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

type fakeCatalogGateway struct {
	products  []domain.Product
	fetchErr  error
	searchFn  func(query string) ([]domain.Product, error)
	searchErr error
}

func (f *fakeCatalogGateway) FetchProducts(_ context.Context) ([]domain.Product, error) {
	return f.products, f.fetchErr
}

func (f *fakeCatalogGateway) SearchProducts(_ context.Context, query string) ([]domain.Product, error) {
	if f.searchFn != nil {
		return f.searchFn(query)
	}
	return f.products, f.searchErr
}

func TestSearchControllerStaleResponseDiscarded(t *testing.T) {
	resultsByQuery := map[string][]domain.Product{
		"xy":  {product("p1", 100)},
		"xyz": {product("p2", 200)},
	}
	gw := &fakeCatalogGateway{
		searchFn: func(query string) ([]domain.Product, error) {
			return resultsByQuery[query], nil
		},
	}
	search := NewSearchController(gw)

	genOld := search.Issue()
	genNew := search.Issue()

	// Ответ на более новый запрос приходит первым.
	applied, err := search.Run(context.Background(), genNew, "xyz")
	require.NoError(t, err)
	require.True(t, applied)

	// Запоздавший ответ устаревшего запроса отбрасывается.
	applied, err = search.Run(context.Background(), genOld, "xy")
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Equal(t, resultsByQuery["xyz"], search.Results(), "побеждает последний выпущенный запрос")
}

func TestSearchControllerAppliesInIssueOrder(t *testing.T) {
	gw := &fakeCatalogGateway{products: []domain.Product{product("p1", 100)}}
	search := NewSearchController(gw)

	gen := search.Issue()
	applied, err := search.Run(context.Background(), gen, "p1")

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, gw.products, search.Results())
}

func TestSearchControllerStaleErrorSilenced(t *testing.T) {
	gw := &fakeCatalogGateway{searchErr: e.ErrServiceUnreachable}
	search := NewSearchController(gw)

	genOld := search.Issue()
	search.Issue()

	applied, err := search.Run(context.Background(), genOld, "xy")

	assert.NoError(t, err, "сбой устаревшего запроса не сообщается")
	assert.False(t, applied)
}

func TestSearchControllerCurrentErrorReported(t *testing.T) {
	gw := &fakeCatalogGateway{searchErr: e.ErrServiceUnreachable}
	search := NewSearchController(gw)

	gen := search.Issue()
	applied, err := search.Run(context.Background(), gen, "xy")

	require.ErrorIs(t, err, e.ErrServiceUnreachable)
	assert.False(t, applied)
	assert.Empty(t, search.Results())
}

func TestSearchControllerEmptyResultApplied(t *testing.T) {
	gw := &fakeCatalogGateway{}
	search := NewSearchController(gw)

	// Сначала непустой результат, затем пустой: пустой должен его заместить.
	gw.searchFn = func(string) ([]domain.Product, error) {
		return []domain.Product{product("p1", 100)}, nil
	}
	gen := search.Issue()
	applied, err := search.Run(context.Background(), gen, "p1")
	require.NoError(t, err)
	require.True(t, applied)

	gw.searchFn = func(string) ([]domain.Product, error) {
		return []domain.Product{}, nil
	}
	gen = search.Issue()
	applied, err = search.Run(context.Background(), gen, "nothing")
	require.NoError(t, err)
	require.True(t, applied)

	assert.Empty(t, search.Results())
}
