package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

type fakeCartGateway struct {
	fetchCalls  int
	upsertCalls int

	fetchEntries  []domain.CartEntry
	fetchErr      error
	upsertEntries []domain.CartEntry
	upsertErr     error

	lastProductID string
	lastQuantity  int
}

func (f *fakeCartGateway) FetchCart(_ context.Context, token string) ([]domain.CartEntry, error) {
	f.fetchCalls++
	if token == "" {
		return nil, nil
	}
	return f.fetchEntries, f.fetchErr
}

func (f *fakeCartGateway) UpsertCartEntry(_ context.Context, _ string, productID string, quantity int) ([]domain.CartEntry, error) {
	f.upsertCalls++
	f.lastProductID = productID
	f.lastQuantity = quantity
	return f.upsertEntries, f.upsertErr
}

func authSession() domain.Session {
	return domain.Session{Token: "token-1", Username: "shopper1", Authenticated: true}
}

func TestCartCoordinatorAddOrUpdate_Unauthenticated(t *testing.T) {
	gw := &fakeCartGateway{}
	cart := NewCartCoordinator(gw)

	_, err := cart.AddOrUpdate(context.Background(), domain.Session{}, "p1", 1, UpsertPolicy{PreventDuplicate: true})

	require.ErrorIs(t, err, e.ErrUnauthenticated)
	assert.Zero(t, gw.upsertCalls, "сеть не должна задействоваться без аутентификации")
	assert.Empty(t, cart.Entries())
}

func TestCartCoordinatorAddOrUpdate_DuplicateRejectedLocally(t *testing.T) {
	gw := &fakeCartGateway{
		fetchEntries: []domain.CartEntry{{ProductID: "p1", Quantity: 2}},
	}
	cart := NewCartCoordinator(gw)
	require.NoError(t, cart.Load(context.Background(), authSession()))

	_, err := cart.AddOrUpdate(context.Background(), authSession(), "p1", 1, UpsertPolicy{PreventDuplicate: true})

	require.ErrorIs(t, err, e.ErrDuplicateItem)
	assert.Zero(t, gw.upsertCalls, "дубликат отклоняется без запроса к серверу")
	assert.Equal(t, []domain.CartEntry{{ProductID: "p1", Quantity: 2}}, cart.Entries(), "количество не должно меняться")
}

func TestCartCoordinatorAddOrUpdate_StepperOverwritesQuantity(t *testing.T) {
	gw := &fakeCartGateway{
		fetchEntries:  []domain.CartEntry{{ProductID: "p1", Quantity: 2}},
		upsertEntries: []domain.CartEntry{{ProductID: "p1", Quantity: 3}},
	}
	cart := NewCartCoordinator(gw)
	require.NoError(t, cart.Load(context.Background(), authSession()))

	entries, err := cart.AddOrUpdate(context.Background(), authSession(), "p1", 3, UpsertPolicy{PreventDuplicate: false})

	require.NoError(t, err)
	assert.Equal(t, 1, gw.upsertCalls, "ровно один запрос к серверу")
	assert.Equal(t, "p1", gw.lastProductID)
	assert.Equal(t, 3, gw.lastQuantity)
	assert.Equal(t, []domain.CartEntry{{ProductID: "p1", Quantity: 3}}, entries)
}

func TestCartCoordinatorAddOrUpdate_ServerStateReplacesLocal(t *testing.T) {
	// Ответ сервера замещает локальное состояние целиком, включая строки,
	// которых локально не было.
	gw := &fakeCartGateway{
		upsertEntries: []domain.CartEntry{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 4},
		},
	}
	cart := NewCartCoordinator(gw)

	_, err := cart.AddOrUpdate(context.Background(), authSession(), "p1", 4, UpsertPolicy{PreventDuplicate: true})

	require.NoError(t, err)
	assert.Equal(t, gw.upsertEntries, cart.Entries())
}

func TestCartCoordinatorAddOrUpdate_FailedMutationKeepsState(t *testing.T) {
	gw := &fakeCartGateway{
		fetchEntries: []domain.CartEntry{{ProductID: "p1", Quantity: 2}},
		upsertErr:    e.ErrServiceUnreachable,
	}
	cart := NewCartCoordinator(gw)
	require.NoError(t, cart.Load(context.Background(), authSession()))

	_, err := cart.AddOrUpdate(context.Background(), authSession(), "p2", 1, UpsertPolicy{PreventDuplicate: true})

	require.ErrorIs(t, err, e.ErrServiceUnreachable)
	assert.Equal(t, []domain.CartEntry{{ProductID: "p1", Quantity: 2}}, cart.Entries(), "неудачная мутация не трогает состояние")
}

func TestCartCoordinatorLoad_AnonymousSkipsNetworkState(t *testing.T) {
	gw := &fakeCartGateway{}
	cart := NewCartCoordinator(gw)

	require.NoError(t, cart.Load(context.Background(), domain.Session{}))
	assert.Empty(t, cart.Entries())
}

func TestCartCoordinatorClear(t *testing.T) {
	gw := &fakeCartGateway{
		fetchEntries: []domain.CartEntry{{ProductID: "p1", Quantity: 1}},
	}
	cart := NewCartCoordinator(gw)
	require.NoError(t, cart.Load(context.Background(), authSession()))
	require.True(t, cart.Contains("p1"))

	cart.Clear()

	assert.Empty(t, cart.Entries())
	assert.False(t, cart.Contains("p1"))
}
