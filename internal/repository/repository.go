package repository

import (
	"context"
	"errors"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// CatalogRepository интерфейс каталога товаров и фермеров
type CatalogRepository interface {
	GetFarmer(ctx context.Context, id string) (*domain.Farmer, error)
	ListFarmers(ctx context.Context) ([]domain.Farmer, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, p *domain.Product) error
}

// CartRepository интерфейс состояния корзины
type CartRepository interface {
	Lines(ctx context.Context) ([]domain.CartLine, error)
	GetLine(ctx context.Context, productID string) (*domain.CartLine, error)
	UpsertLine(ctx context.Context, l *domain.CartLine) error
	RemoveLine(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	Visible(ctx context.Context) (bool, error)
	SetVisible(ctx context.Context, v bool) error
}

// RFQRepository интерфейс списка заявок на оптовую цену
type RFQRepository interface {
	Prepend(ctx context.Context, r *domain.RFQRequest) error
	List(ctx context.Context) ([]domain.RFQRequest, error)
}

// SettingsRepository сессионные настройки отображения
type SettingsRepository interface {
	Currency(ctx context.Context) (domain.Currency, error)
	SetCurrency(ctx context.Context, c domain.Currency) error
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
