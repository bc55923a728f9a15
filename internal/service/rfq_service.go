package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
	"github.com/KARAN3690/FarmersAgent/internal/repository"
)

// RFQService реализует приём заявок на оптовую цену
type RFQService struct {
	catalog repository.CatalogRepository
	rfqs    repository.RFQRepository
}

func NewRFQService(catalog repository.CatalogRepository, rfqs repository.RFQRepository) *RFQService {
	return &RFQService{catalog: catalog, rfqs: rfqs}
}

// SubmitRFQInput поля заявки покупателя
type SubmitRFQInput struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	Location    string `json:"location"`
	TargetPrice *int64 `json:"target_price,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Submit валидирует заявку, присваивает идентификатор и время создания
// и помещает её в начало списка. Соответствие количества MOQ остаётся
// на совести интерфейса и здесь не проверяется.
func (s *RFQService) Submit(ctx context.Context, in SubmitRFQInput) (*domain.RFQRequest, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return nil, ErrMissingField
	}
	if _, err := s.catalog.GetProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	r := &domain.RFQRequest{
		ID:          uuid.NewString(),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Location:    location,
		TargetPrice: in.TargetPrice,
		Notes:       in.Notes,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.rfqs.Prepend(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List возвращает заявки, новые в начале
func (s *RFQService) List(ctx context.Context) ([]domain.RFQRequest, error) {
	return s.rfqs.List(ctx)
}
