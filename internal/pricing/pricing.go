package pricing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// ErrInvalidSchedule возвращается при нарушении инварианта ступеней оптовой цены
var ErrInvalidSchedule = errors.New("invalid tier schedule")

// UnitPriceFor возвращает цену за единицу для заданного количества:
// берётся ступень с наибольшим порогом, не превышающим qty,
// иначе базовая цена товара. MOQ здесь не участвует.
func UnitPriceFor(p domain.Product, qty int64) int64 {
	price := p.Price
	for _, t := range p.Tiers {
		if qty >= t.MinQty {
			price = t.UnitPrice
		}
	}
	return price
}

// ValidateTiers проверяет расписание ступеней: пороги строго возрастают,
// цены не возрастают и не превышают базовую.
func ValidateTiers(base int64, tiers []domain.BulkTier) error {
	prevQty := int64(0)
	prevPrice := base
	for i, t := range tiers {
		if t.MinQty <= prevQty {
			return fmt.Errorf("tier %d: threshold %d not ascending: %w", i, t.MinQty, ErrInvalidSchedule)
		}
		if t.UnitPrice < 0 || t.UnitPrice > prevPrice {
			return fmt.Errorf("tier %d: price %d above previous %d: %w", i, t.UnitPrice, prevPrice, ErrInvalidSchedule)
		}
		prevQty = t.MinQty
		prevPrice = t.UnitPrice
	}
	return nil
}

// Converter пересчитывает суммы из базовой валюты в валюту отображения
type Converter struct {
	inrPerUSD decimal.Decimal
}

// NewConverter создаёт конвертер с фиксированным курсом INR за 1 USD
func NewConverter(inrPerUSD float64) Converter {
	return Converter{inrPerUSD: decimal.NewFromFloat(inrPerUSD)}
}

// Convert линейный и монотонный пересчёт: для базовой валюты — тождество,
// для USD — деление на курс с округлением до цента.
func (c Converter) Convert(amount int64, to domain.Currency) decimal.Decimal {
	d := decimal.NewFromInt(amount)
	if to != domain.CurrencyUSD {
		return d
	}
	return d.Div(c.inrPerUSD).Round(2)
}

// Format форматирует сумму в валюте отображения:
// рупии целыми с индийской группировкой разрядов, доллары с двумя знаками.
func (c Converter) Format(amount int64, to domain.Currency) string {
	if to == domain.CurrencyUSD {
		return "$" + c.Convert(amount, to).StringFixed(2)
	}
	return "₹" + groupIndian(amount)
}

// groupIndian группировка разрядов по индийской системе: 1,23,456
func groupIndian(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		for len(head) > 2 {
			tail = head[len(head)-2:] + "," + tail
			head = head[:len(head)-2]
		}
		s = head + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}
