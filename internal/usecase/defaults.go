package usecase

import (
	"strconv"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultProducts возвращает базовый каталог: им заполняется пустая коллекция,
// и он же отдаётся клиенту, когда хранилище недоступно.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		*domain.NewProduct(
			"Heritage Hoops Polo",
			"Thick navy/cream hoops with vintage collar and embroidered crest.",
			decimal.NewFromInt(89),
			"retro",
			true,
			[]string{"https://images.unsplash.com/photo-1520975916090-3105956dac38?q=80&w=1200&auto=format&fit=crop"},
			[]string{"Navy/Cream"},
			[]string{"S", "M", "L", "XL"},
		),
		*domain.NewProduct(
			"Classic Touchline Polo",
			"Solid forest green with contrast white collar, heavyweight jersey.",
			decimal.NewFromInt(79),
			"vintage",
			true,
			[]string{"https://images.unsplash.com/photo-1512436991641-6745cdb1723f?q=80&w=1200&auto=format&fit=crop"},
			[]string{"Forest/White"},
			[]string{"XS", "S", "M", "L", "XL", "XXL"},
		),
		*domain.NewProduct(
			"Retro Club Stripe",
			"Bold burgundy/gold bars inspired by 90s club kits.",
			decimal.NewFromInt(85),
			"retro",
			true,
			[]string{"https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?q=80&w=1200&auto=format&fit=crop"},
			[]string{"Burgundy/Gold"},
			[]string{"S", "M", "L", "XL"},
		),
		*domain.NewProduct(
			"Custom Matchday Polo",
			"Your colors, your crest. Built to order with premium fabric.",
			decimal.NewFromInt(99),
			"custom",
			true,
			[]string{"https://images.unsplash.com/photo-1509631179647-0177331693ae?q=80&w=1200&auto=format&fit=crop"},
			[]string{"Custom"},
			[]string{"S", "M", "L", "XL", "XXL"},
		),
	}
}

// FallbackProducts возвращает базовый каталог в виде ответа клиенту.
// У товаров фиксированные id вида default-N, так что ответ одинаков между вызовами.
func FallbackProducts() []domain.Document {
	products := DefaultProducts()
	items := make([]domain.Document, 0, len(products))
	for i, p := range products {
		doc := p.ToDocument()
		doc[domain.ExternalIDField] = "default-" + strconv.Itoa(i+1)
		items = append(items, doc)
	}

	return items
}
