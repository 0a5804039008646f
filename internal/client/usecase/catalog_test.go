package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

func TestCatalogStoreLoad(t *testing.T) {
	gw := &fakeCatalogGateway{
		products: []domain.Product{product("p2", 200), product("p1", 100)},
	}
	store := NewCatalogStore(gw)

	require.False(t, store.Loaded())
	require.NoError(t, store.Load(context.Background()))

	assert.True(t, store.Loaded())
	assert.Equal(t, gw.products, store.Products(), "порядок сервера сохраняется")

	p, ok := store.Lookup("p1")
	require.True(t, ok)
	assert.Equal(t, int64(100), p.Cost)

	_, ok = store.Lookup("p9")
	assert.False(t, ok)
}

func TestCatalogStoreLoadFailureLeavesStoreEmpty(t *testing.T) {
	gw := &fakeCatalogGateway{fetchErr: e.ErrServiceUnreachable}
	store := NewCatalogStore(gw)

	err := store.Load(context.Background())

	require.ErrorIs(t, err, e.ErrServiceUnreachable)
	assert.False(t, store.Loaded())
	assert.Empty(t, store.Products())
}
