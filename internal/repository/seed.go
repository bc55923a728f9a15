package repository

import (
	"context"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

// SeedCatalog загружает стартовый каталог: фермеры и товары демо-площадки.
// Порядок отображения: первый товар списка — первый на витрине.
func SeedCatalog(ctx context.Context, store *MemoryStore) error {
	farmers := []domain.Farmer{
		{ID: "f1", Name: "Ramesh Patil", Location: "Nashik, Maharashtra", Rating: 4.8},
		{ID: "f2", Name: "Lakshmi Devi", Location: "Anand, Gujarat", Rating: 4.6},
		{ID: "f3", Name: "Gurpreet Singh", Location: "Ludhiana, Punjab", Rating: 4.9},
	}
	for i := range farmers {
		if err := store.AddFarmer(ctx, &farmers[i]); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{
			ID: "p1", Name: "Tomatoes", Price: 89, Stock: 12000, MOQ: 100,
			Category: domain.CategoryVegetables, Image: "/images/tomatoes.jpg",
			FarmerID: "f1", Rating: 4.7,
			Tiers: []domain.BulkTier{{MinQty: 100, UnitPrice: 84}, {MinQty: 500, UnitPrice: 80}, {MinQty: 2500, UnitPrice: 76}},
		},
		{
			ID: "p2", Name: "Fresh Cow Milk", Price: 62, Stock: 5000, MOQ: 50,
			Category: domain.CategoryDairy, Image: "/images/milk.jpg",
			FarmerID: "f2", Rating: 4.8,
			Tiers: []domain.BulkTier{{MinQty: 50, UnitPrice: 59}, {MinQty: 300, UnitPrice: 56}},
		},
		{
			ID: "p3", Name: "Basmati Rice", Price: 145, Stock: 30000, MOQ: 200,
			Category: domain.CategoryGrains, Image: "/images/rice.jpg",
			FarmerID: "f3", Rating: 4.9,
			Tiers: []domain.BulkTier{{MinQty: 200, UnitPrice: 139}, {MinQty: 1000, UnitPrice: 132}, {MinQty: 5000, UnitPrice: 125}},
		},
		{
			ID: "p4", Name: "Alphonso Mangoes", Price: 420, Stock: 1800, MOQ: 24,
			Category: domain.CategoryFruits, Image: "/images/mangoes.jpg",
			FarmerID: "f1", Rating: 4.6,
			Tiers: []domain.BulkTier{{MinQty: 24, UnitPrice: 399}, {MinQty: 120, UnitPrice: 379}},
		},
		{
			ID: "p5", Name: "Yellow Toor Dal", Price: 118, Stock: 9000, MOQ: 100,
			Category: domain.CategoryPulses, Image: "/images/toor-dal.jpg",
			FarmerID: "f3", Rating: 4.5,
			Tiers: []domain.BulkTier{{MinQty: 100, UnitPrice: 112}, {MinQty: 800, UnitPrice: 106}},
		},
	}
	// AddProduct prepends, so insert in reverse to keep display order
	for i := len(products) - 1; i >= 0; i-- {
		if err := store.AddProduct(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}
