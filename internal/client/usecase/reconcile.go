package usecase

import "github.com/DRSN-tech/go-storefront/internal/domain"

// Reconcile сводит строки серверной корзины с каталогом в готовые к показу
// позиции. Чистая функция: не трогает аргументы и детерминирована.
//
// Порядок результата повторяет порядок entries, как их вернул сервер;
// пересортировки по каталогу или алфавиту нет. Строка, чей товар отсутствует
// в каталоге, молча пропускается: каталог и корзина загружаются независимо
// и могут временно расходиться.
func Reconcile(entries []domain.CartEntry, catalog []domain.Product) []domain.CartLineItem {
	byID := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]domain.CartLineItem, 0, len(entries))
	for _, entry := range entries {
		product, ok := byID[entry.ProductID]
		if !ok {
			continue
		}

		items = append(items, domain.CartLineItem{
			Product:  product,
			Quantity: entry.Quantity,
		})
	}

	return items
}
