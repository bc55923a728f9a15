package payment

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// Gateway контракт платёжного шлюза. Принимает итог в базовой валюте
// и валюту отображения, возвращает ссылку на платёж либо ошибку.
type Gateway interface {
	Charge(ctx context.Context, total int64, currency domain.Currency) (reference string, err error)
}

// Simulated шлюз-заглушка: всегда подтверждает платёж
type Simulated struct {
	seq atomic.Int64
}

func NewSimulated() *Simulated { return &Simulated{} }

var _ Gateway = (*Simulated)(nil)

func (s *Simulated) Charge(ctx context.Context, total int64, currency domain.Currency) (string, error) {
	n := s.seq.Add(1)
	return fmt.Sprintf("SIM-%06d", n), nil
}
