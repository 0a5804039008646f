package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// CatalogStore держит полный каталог, загруженный один раз за сеанс.
// После загрузки каталог неизменяем до явного Refresh.
type CatalogStore struct {
	gw CatalogGateway

	mu       sync.RWMutex
	products []domain.Product
	byID     map[string]domain.Product
	loaded   bool
}

func NewCatalogStore(gw CatalogGateway) *CatalogStore {
	return &CatalogStore{
		gw:   gw,
		byID: make(map[string]domain.Product),
	}
}

// Load загружает каталог целиком. При сбое хранилище остаётся пустым,
// не частично заполненным; повторная попытка — решение вызывающего кода.
func (s *CatalogStore) Load(ctx context.Context) error {
	const op = "CatalogStore.Load"

	products, err := s.gw.FetchProducts(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.byID = make(map[string]domain.Product, len(products))
	for _, p := range products {
		s.byID[p.ID] = p
	}
	s.loaded = true

	return nil
}

// Products возвращает каталог в серверном порядке.
func (s *CatalogStore) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.products
}

// Lookup возвращает товар по идентификатору.
func (s *CatalogStore) Lookup(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok
}

// Loaded сообщает, состоялась ли загрузка каталога.
func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}
