package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

func TestMemoryStore_CatalogPrependOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := domain.Product{Name: "A"}
	b := domain.Product{Name: "B"}
	if err := store.AddProduct(ctx, &a); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := store.AddProduct(ctx, &b); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if a.ID == "" || b.ID == "" {
		t.Fatalf("expected ids assigned")
	}

	list, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "B" || list[1].Name != "A" {
		t.Fatalf("expected newest first, got %v", list)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.GetProduct(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.GetFarmer(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_FarmerLookup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	f := domain.Farmer{ID: "f1", Name: "Ramesh", Location: "Nashik", Rating: 4.8}
	if err := store.AddFarmer(ctx, &f); err != nil {
		t.Fatalf("add farmer: %v", err)
	}
	got, err := store.GetFarmer(ctx, "f1")
	if err != nil || got.Name != "Ramesh" {
		t.Fatalf("get farmer: %v %v", got, err)
	}
}

func TestMemoryCart_UpsertRemoveClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cart := NewMemoryCart(store)

	l1 := domain.CartLine{ProductID: "p1", Name: "Tomatoes", UnitPrice: 89, Quantity: 100}
	l2 := domain.CartLine{ProductID: "p2", Name: "Milk", UnitPrice: 62, Quantity: 50}
	if err := cart.UpsertLine(ctx, &l1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := cart.UpsertLine(ctx, &l2); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// replace keeps position and does not duplicate
	l1.Quantity = 101
	if err := cart.UpsertLine(ctx, &l1); err != nil {
		t.Fatalf("upsert replace: %v", err)
	}
	lines, _ := cart.Lines(ctx)
	if len(lines) != 2 || lines[0].ProductID != "p1" || lines[0].Quantity != 101 {
		t.Fatalf("replace failed: %v", lines)
	}

	// remove existing
	if err := cart.RemoveLine(ctx, "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// remove absent is a no-op
	if err := cart.RemoveLine(ctx, "p1"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	lines, _ = cart.Lines(ctx)
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("remove failed: %v", lines)
	}

	if err := cart.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	lines, _ = cart.Lines(ctx)
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %v", lines)
	}
}

func TestMemoryCart_Visibility(t *testing.T) {
	ctx := context.Background()
	cart := NewMemoryCart(NewMemoryStore())
	v, _ := cart.Visible(ctx)
	if v {
		t.Fatalf("cart must start hidden")
	}
	if err := cart.SetVisible(ctx, true); err != nil {
		t.Fatalf("set visible: %v", err)
	}
	v, _ = cart.Visible(ctx)
	if !v {
		t.Fatalf("expected visible")
	}
}

func TestMemoryTx_AtomicReadModifyWrite(t *testing.T) {
	store := NewMemoryStore()
	cart := NewMemoryCart(store)
	tx := NewMemoryTx(store)

	if err := cart.UpsertLine(context.Background(), &domain.CartLine{ProductID: "p1", UnitPrice: 89, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	// get-then-upsert from many goroutines, each under one transaction:
	// repositories skip their inner locks inside tx, so no increment is lost
	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
				l, err := cart.GetLine(ctx, "p1")
				if err != nil {
					return err
				}
				l.Quantity++
				return cart.UpsertLine(ctx, l)
			})
			if err != nil {
				t.Errorf("tx: %v", err)
			}
		}()
	}
	wg.Wait()

	l, err := cart.GetLine(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.Quantity != 1+n {
		t.Fatalf("expected quantity %d, got %d", 1+n, l.Quantity)
	}
}

func TestMemoryRFQ_PrependOrder(t *testing.T) {
	ctx := context.Background()
	rfq := NewMemoryRFQ(NewMemoryStore())
	for _, id := range []string{"r1", "r2", "r3"} {
		if err := rfq.Prepend(ctx, &domain.RFQRequest{ID: id}); err != nil {
			t.Fatalf("prepend: %v", err)
		}
	}
	list, err := rfq.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "r3" || list[2].ID != "r1" {
		t.Fatalf("expected newest first, got %v", list)
	}
}

func TestMemoryStore_CurrencySetting(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cur, _ := store.Currency(ctx)
	if cur != domain.CurrencyINR {
		t.Fatalf("default currency must be INR, got %v", cur)
	}
	if err := store.SetCurrency(ctx, domain.CurrencyUSD); err != nil {
		t.Fatalf("set currency: %v", err)
	}
	cur, _ = store.Currency(ctx)
	if cur != domain.CurrencyUSD {
		t.Fatalf("expected USD, got %v", cur)
	}
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := SeedCatalog(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, _ := store.ListProducts(ctx)
	if len(list) != 5 {
		t.Fatalf("expected 5 products, got %d", len(list))
	}
	if list[0].Name != "Tomatoes" {
		t.Fatalf("expected Tomatoes first, got %q", list[0].Name)
	}
	// every product references a seeded farmer
	for _, p := range list {
		if _, err := store.GetFarmer(ctx, p.FarmerID); err != nil {
			t.Fatalf("product %s references missing farmer %s", p.ID, p.FarmerID)
		}
	}
}
