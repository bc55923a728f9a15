package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
	"github.com/KARAN3690/FarmersAgent/internal/payment"
	"github.com/KARAN3690/FarmersAgent/internal/repository"
)

// ErrPaymentFailed оборачивает отказ платёжного шлюза при оформлении
var ErrPaymentFailed = errors.New("payment failed")

// CartService реализует логику корзины: добавление, количество, оформление.
// Составные операции (чтение-изменение-запись) выполняются в транзакции,
// чтобы параллельные запросы не теряли обновления.
type CartService struct {
	catalog  repository.CatalogRepository
	cart     repository.CartRepository
	settings repository.SettingsRepository
	gateway  payment.Gateway
	tx       repository.TxManager
}

func NewCartService(catalog repository.CatalogRepository, cart repository.CartRepository, settings repository.SettingsRepository, gateway payment.Gateway, tx repository.TxManager) *CartService {
	return &CartService{catalog: catalog, cart: cart, settings: settings, gateway: gateway, tx: tx}
}

// CartView текущее содержимое корзины для витрины
type CartView struct {
	Lines   []domain.CartLine `json:"lines"`
	Total   int64             `json:"total"`
	Visible bool              `json:"visible"`
}

// CheckoutResult итог успешного оформления
type CheckoutResult struct {
	Total     int64           `json:"total"`
	Currency  domain.Currency `json:"currency"`
	Reference string          `json:"reference"`
}

// Add кладёт товар в корзину. Повторное добавление увеличивает количество
// ровно на 1, первая позиция получает количество max(1, MOQ) и снимок
// полей товара на момент добавления. Корзина становится видимой.
func (s *CartService) Add(ctx context.Context, productID string) (*domain.CartLine, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	var added *domain.CartLine
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		line, err := s.cart.GetLine(ctx, productID)
		switch {
		case err == nil:
			line.Quantity++
		case errors.Is(err, repository.ErrNotFound):
			qty := p.MOQ
			if qty < 1 {
				qty = 1
			}
			line = &domain.CartLine{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.Image,
				UnitPrice: p.Price,
				Quantity:  qty,
			}
		default:
			return err
		}
		if err := s.cart.UpsertLine(ctx, line); err != nil {
			return err
		}
		if err := s.cart.SetVisible(ctx, true); err != nil {
			return err
		}
		added = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// SetQuantity выставляет количество позиции. Значения меньше 1 отклоняются.
func (s *CartService) SetQuantity(ctx context.Context, productID string, qty int64) (*domain.CartLine, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	var updated *domain.CartLine
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		line, err := s.cart.GetLine(ctx, productID)
		if err != nil {
			return err
		}
		line.Quantity = qty
		if err := s.cart.UpsertLine(ctx, line); err != nil {
			return err
		}
		updated = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove убирает позицию; отсутствующая позиция не ошибка
func (s *CartService) Remove(ctx context.Context, productID string) error {
	return s.cart.RemoveLine(ctx, productID)
}

// View возвращает позиции, итог и флаг видимости корзины.
// Итог считается по ценам на момент добавления, оптовые ступени
// корзиной не применяются.
func (s *CartService) View(ctx context.Context) (*CartView, error) {
	var view *CartView
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.cart.Lines(ctx)
		if err != nil {
			return err
		}
		visible, err := s.cart.Visible(ctx)
		if err != nil {
			return err
		}
		view = &CartView{Lines: lines, Total: total(lines), Visible: visible}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Checkout проводит оплату через шлюз, очищает корзину и скрывает её.
// Вся операция идёт в одной транзакции: позиция, добавленная параллельным
// запросом, не может исчезнуть неоплаченной. Пустая корзина не оформляется.
func (s *CartService) Checkout(ctx context.Context) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.cart.Lines(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrInvalidInput
		}
		sum := total(lines)
		currency, err := s.settings.Currency(ctx)
		if err != nil {
			return err
		}
		ref, err := s.gateway.Charge(ctx, sum, currency)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		if err := s.cart.Clear(ctx); err != nil {
			return err
		}
		if err := s.cart.SetVisible(ctx, false); err != nil {
			return err
		}
		result = &CheckoutResult{Total: sum, Currency: currency, Reference: ref}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func total(lines []domain.CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPrice * l.Quantity
	}
	return sum
}
