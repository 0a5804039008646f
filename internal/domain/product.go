package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID        string // непрозрачный идентификатор, назначается сервером
	Name      string
	Category  string
	Cost      int64 // Цена хранится в копейках
	Rating    int   // 0..5
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewProduct(id, name, category string, cost int64, rating int, imageURL string) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Category: category,
		Cost:     cost,
		Rating:   rating,
		ImageURL: imageURL,
	}
}
