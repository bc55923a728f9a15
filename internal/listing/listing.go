package listing

import (
	"sort"
	"strings"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// SortKey ключ сортировки витрины
type SortKey string

const (
	SortRelevance  SortKey = "relevance" // исходный порядок каталога
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
)

// Derive строит витрину: фильтр по подстроке имени, фильтр по категории,
// затем устойчивая сортировка. Входной срез не изменяется.
// Неизвестный ключ сортировки ведёт себя как relevance.
func Derive(products []domain.Product, query string, category domain.Category, key SortKey) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !containsIgnoreCase(p.Name, query) {
			continue
		}
		if category != "" && category != domain.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
