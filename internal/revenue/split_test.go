package revenue

import (
	"errors"
	"math"
	"testing"
)

func TestSplit_LowerTier(t *testing.T) {
	t.Parallel()

	for _, amount := range []float64{0.01, 100, 1000, 2499.99, 2500} {
		share, err := Split(amount)
		if err != nil {
			t.Fatalf("Split(%v): unexpected error: %v", amount, err)
		}

		if share.DriverPercentage != 30 || share.CompanyPercentage != 70 {
			t.Errorf("Split(%v): expected 30/70 split, got %d/%d",
				amount, share.DriverPercentage, share.CompanyPercentage)
		}

		if sum := share.DriverShare + share.CompanyShare; math.Abs(sum-amount) > 1e-9 {
			t.Errorf("Split(%v): shares sum to %v, want %v", amount, sum, amount)
		}
	}
}

func TestSplit_UpperTier(t *testing.T) {
	t.Parallel()

	for _, amount := range []float64{2500.01, 3000, 10000, 99999.99} {
		share, err := Split(amount)
		if err != nil {
			t.Fatalf("Split(%v): unexpected error: %v", amount, err)
		}

		if share.DriverPercentage != 70 || share.CompanyPercentage != 30 {
			t.Errorf("Split(%v): expected 70/30 split, got %d/%d",
				amount, share.DriverPercentage, share.CompanyPercentage)
		}

		if sum := share.DriverShare + share.CompanyShare; math.Abs(sum-amount) > 1e-9 {
			t.Errorf("Split(%v): shares sum to %v, want %v", amount, sum, amount)
		}
	}
}

func TestSplit_TierBoundary(t *testing.T) {
	t.Parallel()

	// The threshold itself belongs to the lower tier.
	lower, err := Split(2500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower.DriverPercentage != 30 {
		t.Errorf("Split(2500): expected driver percentage 30, got %d", lower.DriverPercentage)
	}
	if lower.DriverShare != 750 || lower.CompanyShare != 1750 {
		t.Errorf("Split(2500): expected shares 750/1750, got %v/%v", lower.DriverShare, lower.CompanyShare)
	}

	upper, err := Split(2500.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper.DriverPercentage != 70 {
		t.Errorf("Split(2500.01): expected driver percentage 70, got %d", upper.DriverPercentage)
	}
}

func TestSplit_ExactShares(t *testing.T) {
	t.Parallel()

	share, err := Split(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if share.DriverShare != 300 || share.CompanyShare != 700 {
		t.Errorf("Split(1000): expected 300/700, got %v/%v", share.DriverShare, share.CompanyShare)
	}

	share, err = Split(3000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if share.DriverShare != 2100 || share.CompanyShare != 900 {
		t.Errorf("Split(3000): expected 2100/900, got %v/%v", share.DriverShare, share.CompanyShare)
	}
}

func TestSplit_InvalidAmount(t *testing.T) {
	t.Parallel()

	for _, amount := range []float64{0, -1, -2500.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Split(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Split(%v): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestSplit_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := Split(1234.56)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 100; i++ {
		next, err := Split(1234.56)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next != first {
			t.Fatalf("Split not deterministic: call %d returned %+v, first returned %+v", i, next, first)
		}
	}
}
