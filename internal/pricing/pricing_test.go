package pricing

import (
	"errors"
	"testing"

	"github.com/KARAN3690/FarmersAgent/internal/domain"
)

func tomatoes() domain.Product {
	return domain.Product{
		ID: "p1", Name: "Tomatoes", Price: 89, MOQ: 100,
		Tiers: []domain.BulkTier{{MinQty: 100, UnitPrice: 84}, {MinQty: 500, UnitPrice: 80}, {MinQty: 2500, UnitPrice: 76}},
	}
}

func TestUnitPriceFor_TierResolution(t *testing.T) {
	p := tomatoes()
	cases := []struct {
		qty  int64
		want int64
	}{
		{50, 89},   // below every threshold -> base price
		{99, 89},   // still below first tier
		{100, 84},  // first tier boundary
		{300, 84},  // between first and second
		{500, 80},  // second tier boundary
		{2499, 80}, // just below last tier
		{2500, 76}, // last tier boundary
		{9000, 76}, // far beyond last tier
	}
	for _, c := range cases {
		if got := UnitPriceFor(p, c.qty); got != c.want {
			t.Fatalf("qty %d: expected %d, got %d", c.qty, c.want, got)
		}
	}
}

func TestUnitPriceFor_NoTiers(t *testing.T) {
	p := domain.Product{Price: 42}
	if got := UnitPriceFor(p, 1000); got != 42 {
		t.Fatalf("expected base price 42, got %d", got)
	}
}

func TestValidateTiers_Valid(t *testing.T) {
	p := tomatoes()
	if err := ValidateTiers(p.Price, p.Tiers); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateTiers(100, nil); err != nil {
		t.Fatalf("empty schedule must be valid: %v", err)
	}
}

func TestValidateTiers_Invalid(t *testing.T) {
	// threshold not ascending
	err := ValidateTiers(89, []domain.BulkTier{{MinQty: 500, UnitPrice: 84}, {MinQty: 100, UnitPrice: 80}})
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}
	// price above base
	err = ValidateTiers(89, []domain.BulkTier{{MinQty: 100, UnitPrice: 95}})
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}
	// price increasing between tiers
	err = ValidateTiers(89, []domain.BulkTier{{MinQty: 100, UnitPrice: 80}, {MinQty: 500, UnitPrice: 84}})
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}
	// zero threshold
	err = ValidateTiers(89, []domain.BulkTier{{MinQty: 0, UnitPrice: 80}})
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected invalid schedule, got %v", err)
	}
}

func TestConvert_IdentityForINR(t *testing.T) {
	c := NewConverter(83)
	got := c.Convert(8900, domain.CurrencyINR)
	if !got.IsInteger() || got.IntPart() != 8900 {
		t.Fatalf("expected identity 8900, got %s", got)
	}
}

func TestConvert_USDDivision(t *testing.T) {
	c := NewConverter(83)
	got := c.Convert(830, domain.CurrencyUSD)
	if got.StringFixed(2) != "10.00" {
		t.Fatalf("expected 10.00, got %s", got)
	}
	got = c.Convert(89, domain.CurrencyUSD)
	if got.StringFixed(2) != "1.07" {
		t.Fatalf("expected 1.07, got %s", got)
	}
}

func TestConvert_Monotonic(t *testing.T) {
	c := NewConverter(83)
	amounts := []int64{0, 1, 83, 89, 830, 8900, 125000}
	for i := 1; i < len(amounts); i++ {
		prev := c.Convert(amounts[i-1], domain.CurrencyUSD)
		cur := c.Convert(amounts[i], domain.CurrencyUSD)
		if cur.LessThan(prev) {
			t.Fatalf("not monotonic: %d -> %s, %d -> %s", amounts[i-1], prev, amounts[i], cur)
		}
	}
}

func TestFormat(t *testing.T) {
	c := NewConverter(83)
	cases := []struct {
		amount int64
		cur    domain.Currency
		want   string
	}{
		{89, domain.CurrencyINR, "₹89"},
		{8900, domain.CurrencyINR, "₹8,900"},
		{125000, domain.CurrencyINR, "₹1,25,000"},
		{12345678, domain.CurrencyINR, "₹1,23,45,678"},
		{830, domain.CurrencyUSD, "$10.00"},
		{89, domain.CurrencyUSD, "$1.07"},
	}
	for _, cse := range cases {
		if got := c.Format(cse.amount, cse.cur); got != cse.want {
			t.Fatalf("format %d %s: expected %q, got %q", cse.amount, cse.cur, cse.want, got)
		}
	}
}
