package domain

// CartEntry — одна строка серверной корзины: товар и его количество.
// Сервер — единственный владелец корзины; на клиенте записи только зеркалируются.
// Инвариант: не бывает двух записей с одним ProductID и не бывает записи с нулевым количеством.
type CartEntry struct {
	ProductID string
	Quantity  int
}

// CartLineItem — строка корзины, обогащённая данными каталога для отображения.
// Производное значение: пересобирается при каждом изменении каталога или корзины, нигде не хранится.
type CartLineItem struct {
	Product  Product
	Quantity int
}

// TotalCost возвращает суммарную стоимость строк корзины в копейках.
func TotalCost(items []CartLineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Product.Cost * int64(item.Quantity)
	}
	return total
}
