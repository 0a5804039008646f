package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/go-storefront/internal/domain"
	"github.com/DRSN-tech/go-storefront/pkg/e"
)

// SearchController выполняет поисковые запросы и защищает отображаемый
// результат от устаревших ответов. Каждому выпущенному запросу присваивается
// монотонный номер поколения; применяется только ответ последнего выпущенного
// запроса — побеждает порядок выпуска, а не порядок прихода ответов.
type SearchController struct {
	gw CatalogGateway

	mu      sync.Mutex
	latest  uint64
	results []domain.Product
	applied uint64
}

func NewSearchController(gw CatalogGateway) *SearchController {
	return &SearchController{gw: gw}
}

// Issue регистрирует новый поисковый запрос и возвращает его поколение.
// Все запросы, выпущенные раньше, с этого момента устаревают.
func (s *SearchController) Issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	return s.latest
}

// Run выполняет запрос указанного поколения. Результат применяется, только
// если к моменту прихода ответа не был выпущен более новый запрос; иначе
// ответ отбрасывается, а отображаемое состояние не меняется.
// Возвращает признак того, был ли результат применён.
func (s *SearchController) Run(ctx context.Context, gen uint64, query string) (bool, error) {
	const op = "SearchController.Run"

	products, err := s.gw.SearchProducts(ctx, query)
	if err != nil {
		// Сбой устаревшего запроса не трогает текущий результат и не
		// сообщается: пользователь уже ждёт ответ на более новый запрос.
		if !s.isCurrent(gen) {
			return false, nil
		}
		return false, e.Wrap(op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.latest {
		return false, nil // устаревший ответ
	}

	s.results = products
	s.applied = gen
	return true, nil
}

// Results возвращает последний применённый результат поиска.
func (s *SearchController) Results() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.results
}

func (s *SearchController) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return gen == s.latest
}
