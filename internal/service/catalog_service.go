package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
	"github.com/KARAN3690/FarmersAgent/internal/pricing"
	"github.com/KARAN3690/FarmersAgent/internal/repository"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrMissingField    = errors.New("missing field")
)

// CatalogService инкапсулирует бизнес-логику вокруг каталога
type CatalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// TierInput ступень цены из формы, числа приходят текстом
type TierInput struct {
	MinQty    string `json:"min_qty"`
	UnitPrice string `json:"unit_price"`
}

// ProductInput форма создания товара. Числовые поля разбираются явно,
// некорректный текст отклоняется, а не подменяется нулём.
type ProductInput struct {
	Name     string      `json:"name"`
	Price    string      `json:"price"`
	Stock    string      `json:"stock"`
	MOQ      string      `json:"moq"`
	Category string      `json:"category"`
	Image    string      `json:"image"`
	FarmerID string      `json:"farmer_id"`
	Tiers    []TierInput `json:"tiers"`
}

// ParseProductInput разбирает и валидирует форму товара
func ParseProductInput(in ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", ErrMissingField)
	}
	price, err := parseNonNegative("price", in.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseNonNegative("stock", in.Stock)
	if err != nil {
		return nil, err
	}
	moq, err := parseNonNegative("moq", in.MOQ)
	if err != nil {
		return nil, err
	}
	if moq < 1 {
		return nil, fmt.Errorf("moq must be positive: %w", ErrInvalidInput)
	}
	cat := domain.Category(in.Category)
	if !domain.ValidCategory(cat) {
		return nil, fmt.Errorf("category %q: %w", in.Category, ErrInvalidInput)
	}
	tiers := make([]domain.BulkTier, 0, len(in.Tiers))
	for i, t := range in.Tiers {
		minQty, err := parseNonNegative(fmt.Sprintf("tiers[%d].min_qty", i), t.MinQty)
		if err != nil {
			return nil, err
		}
		unitPrice, err := parseNonNegative(fmt.Sprintf("tiers[%d].unit_price", i), t.UnitPrice)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, domain.BulkTier{MinQty: minQty, UnitPrice: unitPrice})
	}
	if err := pricing.ValidateTiers(price, tiers); err != nil {
		return nil, err
	}
	return &domain.Product{
		Name:     name,
		Price:    price,
		Stock:    stock,
		MOQ:      moq,
		Category: cat,
		Image:    in.Image,
		FarmerID: in.FarmerID,
		Tiers:    tiers,
	}, nil
}

func parseNonNegative(field, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", field, s, ErrInvalidInput)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s is negative: %w", field, ErrInvalidInput)
	}
	return v, nil
}

// SaveProduct создаёт товар фермера и помещает его в начало каталога
func (s *CatalogService) SaveProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := ParseProductInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetFarmer(ctx, p.FarmerID); err != nil {
		return nil, err
	}
	if err := s.catalog.AddProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.catalog.GetProduct(ctx, id)
}

func (s *CatalogService) GetFarmer(ctx context.Context, id string) (*domain.Farmer, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.catalog.GetFarmer(ctx, id)
}

func (s *CatalogService) ListFarmers(ctx context.Context) ([]domain.Farmer, error) {
	return s.catalog.ListFarmers(ctx)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

// Quote возвращает цену за единицу для количества с учётом оптовых ступеней
func (s *CatalogService) Quote(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty < 1 {
		return 0, ErrInvalidQuantity
	}
	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return pricing.UnitPriceFor(*p, qty), nil
}
