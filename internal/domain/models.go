package domain

import "time"

// Currency валюта отображения цен
type Currency string

const (
	CurrencyINR Currency = "INR" // базовая валюта, все цены хранятся в ней
	CurrencyUSD Currency = "USD"
)

// Category категория товара
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryGrains     Category = "Grains"
	CategoryDairy      Category = "Dairy"
	CategoryPulses     Category = "Pulses"

	// CategoryAll сентинел для листинга: без фильтрации по категории
	CategoryAll Category = "All"
)

// Categories допустимые категории товара (без сентинела All)
var Categories = []Category{CategoryVegetables, CategoryFruits, CategoryGrains, CategoryDairy, CategoryPulses}

// Farmer представляет фермера на площадке
type Farmer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
}

// BulkTier ступень оптовой цены: действует при количестве >= MinQty
type BulkTier struct {
	MinQty    int64 `json:"min_qty"`
	UnitPrice int64 `json:"unit_price"`
}

// Product представляет товар в каталоге. Цены в базовой валюте, целыми единицами.
type Product struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Price    int64      `json:"price"`
	Stock    int64      `json:"stock"`
	MOQ      int64      `json:"moq"`
	Category Category   `json:"category"`
	Image    string     `json:"image"`
	FarmerID string     `json:"farmer_id"`
	Rating   float64    `json:"rating"`
	Tiers    []BulkTier `json:"tiers"`
}

// CartLine позиция в корзине. Снимок полей товара на момент добавления.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

// RFQRequest заявка на оптовую цену. Неизменяема после создания.
type RFQRequest struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location"`
	TargetPrice *int64    `json:"target_price,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidCategory проверяет, что категория входит в допустимый набор
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
