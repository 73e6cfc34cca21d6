package domain

import "github.com/shopspring/decimal"

// ProductCollection — коллекция товаров в хранилище документов.
const ProductCollection = "product"

// Product описывает товар витрины
type Product struct {
	Title       string
	Description string
	Price       decimal.Decimal // валюта не фиксируется
	Category    string          // retro, vintage, custom и т.п.
	InStock     bool
	Images      []string // URL изображений в порядке показа
	Colors      []string
	Sizes       []string
}

func NewProduct(title, description string, price decimal.Decimal, category string, inStock bool,
	images, colors, sizes []string) *Product {
	return &Product{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		InStock:     inStock,
		Images:      images,
		Colors:      colors,
		Sizes:       sizes,
	}
}

// ToDocument возвращает представление товара для записи в хранилище.
// Слайсы копируются, чтобы документ не разделял память с исходной структурой.
func (p *Product) ToDocument() Document {
	return Document{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price.InexactFloat64(),
		"category":    p.Category,
		"in_stock":    p.InStock,
		"images":      append([]string(nil), p.Images...),
		"colors":      append([]string(nil), p.Colors...),
		"sizes":       append([]string(nil), p.Sizes...),
	}
}
