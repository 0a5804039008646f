package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

func product(id string, cost int64) domain.Product {
	return domain.Product{ID: id, Name: "product-" + id, Category: "misc", Cost: cost}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.CartEntry
		catalog []domain.Product
		wantIDs []string
		wantQty []int
	}{
		{
			name: "entry order preserved, not catalog order",
			entries: []domain.CartEntry{
				{ProductID: "p3", Quantity: 1},
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 3},
			},
			catalog: []domain.Product{product("p1", 100), product("p2", 200), product("p3", 300)},
			wantIDs: []string{"p3", "p1", "p2"},
			wantQty: []int{1, 2, 3},
		},
		{
			name: "unknown product dropped silently",
			entries: []domain.CartEntry{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p9", Quantity: 1},
			},
			catalog: []domain.Product{product("p1", 100), product("p2", 50)},
			wantIDs: []string{"p1"},
			wantQty: []int{2},
		},
		{
			name:    "all entries unknown yields empty view",
			entries: []domain.CartEntry{{ProductID: "p9", Quantity: 1}},
			catalog: []domain.Product{product("p1", 100)},
			wantIDs: []string{},
			wantQty: []int{},
		},
		{
			name:    "empty cart",
			entries: nil,
			catalog: []domain.Product{product("p1", 100)},
			wantIDs: []string{},
			wantQty: []int{},
		},
		{
			name:    "catalog not yet loaded",
			entries: []domain.CartEntry{{ProductID: "p1", Quantity: 1}},
			catalog: nil,
			wantIDs: []string{},
			wantQty: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Reconcile(tt.entries, tt.catalog)

			require.Len(t, items, len(tt.wantIDs))
			for i, item := range items {
				assert.Equal(t, tt.wantIDs[i], item.Product.ID)
				assert.Equal(t, tt.wantQty[i], item.Quantity)
			}
		})
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	catalog := []domain.Product{product("p1", 10000), product("p2", 5000)}
	entries := []domain.CartEntry{{ProductID: "p1", Quantity: 2}}

	items := Reconcile(entries, catalog)

	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestReconcileIsPure(t *testing.T) {
	entries := []domain.CartEntry{
		{ProductID: "p2", Quantity: 5},
		{ProductID: "p1", Quantity: 1},
	}
	catalog := []domain.Product{product("p1", 100), product("p2", 200)}

	entriesCopy := append([]domain.CartEntry(nil), entries...)
	catalogCopy := append([]domain.Product(nil), catalog...)

	first := Reconcile(entries, catalog)
	second := Reconcile(entries, catalog)

	assert.Equal(t, first, second, "одинаковый вход должен давать одинаковый выход")
	assert.Equal(t, entriesCopy, entries, "входные строки корзины не должны меняться")
	assert.Equal(t, catalogCopy, catalog, "каталог не должен меняться")
}
