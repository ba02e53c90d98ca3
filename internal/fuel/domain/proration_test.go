package fuel

import (
	"math"
	"testing"
)

func pct(v float64) *float64 { return &v }

func TestCalculateProrationPercentFull(t *testing.T) {
	result := CalculateProration([]Tank{
		{ID: "t1", CapacityGallons: 100, PercentFull: pct(50), PricePerGallon: 3},
	})
	if len(result.TankResults) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.TankResults))
	}
	got := result.TankResults[0]
	if got.EffectiveGallons != 50 {
		t.Fatalf("expected 50 effective gallons, got %v", got.EffectiveGallons)
	}
	if got.Credit != 150 {
		t.Fatalf("expected credit 150, got %v", got.Credit)
	}
	if result.TotalCredit != 150 {
		t.Fatalf("expected total 150, got %v", result.TotalCredit)
	}
}

func TestCalculateProrationGallonsBranch(t *testing.T) {
	result := CalculateProration([]Tank{
		{ID: "t1", CapacityGallons: 100, CurrentGallons: 40, PricePerGallon: 2.5},
	})
	got := result.TankResults[0]
	if got.EffectiveGallons != 40 {
		t.Fatalf("expected 40 effective gallons, got %v", got.EffectiveGallons)
	}
	if got.Credit != 100 {
		t.Fatalf("expected credit 100, got %v", got.Credit)
	}
}

func TestCalculateProrationPercentWinsOverGallons(t *testing.T) {
	result := CalculateProration([]Tank{
		{ID: "t1", CapacityGallons: 200, CurrentGallons: 999, PercentFull: pct(25), PricePerGallon: 1},
	})
	if got := result.TankResults[0].EffectiveGallons; got != 50 {
		t.Fatalf("percent reading should win, got %v gallons", got)
	}
}

func TestCalculateProrationEdgeCases(t *testing.T) {
	empty := CalculateProration(nil)
	if len(empty.TankResults) != 0 || empty.TotalCredit != 0 {
		t.Fatalf("empty input should yield empty result, got %+v", empty)
	}

	zeroCapacity := CalculateProration([]Tank{
		{ID: "t1", CapacityGallons: 0, PercentFull: pct(80), PricePerGallon: 4},
	})
	if got := zeroCapacity.TankResults[0]; got.EffectiveGallons != 0 || got.Credit != 0 {
		t.Fatalf("zero capacity tank should be free, got %+v", got)
	}

	overfull := CalculateProration([]Tank{
		{ID: "t1", CapacityGallons: 100, PercentFull: pct(250), PricePerGallon: 1},
	})
	if got := overfull.TankResults[0].EffectiveGallons; got != 100 {
		t.Fatalf("percent should clamp to 100, got %v gallons", got)
	}
}

func TestTankCreditNeverNegative(t *testing.T) {
	tanks := []Tank{
		{ID: "a", CapacityGallons: 100, CurrentGallons: 10, PricePerGallon: -5},
		{ID: "b", CapacityGallons: 100, CurrentGallons: 10, PricePerGallon: math.NaN()},
		{ID: "c", CapacityGallons: -50, PercentFull: pct(50), PricePerGallon: 2},
		{ID: "d", CapacityGallons: 100, CurrentGallons: 20, PricePerGallon: 1.5},
	}
	result := CalculateProration(tanks)

	sum := 0.0
	for _, tr := range result.TankResults {
		if tr.Credit < 0 {
			t.Fatalf("tank %s has negative credit %v", tr.ID, tr.Credit)
		}
		sum += tr.Credit
	}
	if result.TotalCredit != sum {
		t.Fatalf("total %v does not equal sum of credits %v", result.TotalCredit, sum)
	}
}

func TestTotalFillPercent(t *testing.T) {
	tanks := []Tank{
		{CapacityGallons: 100, PercentFull: pct(50), PricePerGallon: 1},
		{CapacityGallons: 100, CurrentGallons: 25, PricePerGallon: 1},
	}
	if got := TotalFillPercent(tanks); got != 37.5 {
		t.Fatalf("expected 37.5%%, got %v", got)
	}

	if got := TotalFillPercent(nil); got != 0 {
		t.Fatalf("expected 0%% for no tanks, got %v", got)
	}
	if got := TotalFillPercent([]Tank{{CapacityGallons: 0, CurrentGallons: 10}}); got != 0 {
		t.Fatalf("expected 0%% for zero capacity, got %v", got)
	}
}

func TestSessionStatementAddon(t *testing.T) {
	s := Session{AgentID: "a1", IncludeInStatement: true, TotalCredit: 210.4, TotalPercent: 140, CreditTo: "nonsense"}
	addon := s.StatementAddon()
	if addon == nil {
		t.Fatal("expected addon")
	}
	if addon.Credit != 210.4 {
		t.Fatalf("expected credit 210.4, got %v", addon.Credit)
	}
	if addon.Percent != 100 {
		t.Fatalf("expected percent clamped to 100, got %v", addon.Percent)
	}
	if addon.CreditTo != CreditToSeller {
		t.Fatalf("expected seller fallback, got %s", addon.CreditTo)
	}

	if (Session{IncludeInStatement: false, TotalCredit: 50}).StatementAddon() != nil {
		t.Fatal("excluded session should not produce an addon")
	}
	if (Session{IncludeInStatement: true, TotalCredit: 0}).StatementAddon() != nil {
		t.Fatal("zero credit session should not produce an addon")
	}
}

func TestSessionNormalize(t *testing.T) {
	s := Session{CreditTo: "buyer", TotalCredit: math.Inf(1), TotalPercent: math.NaN(), FuelType: "diesel", TankOwnership: "rented"}
	n := s.Normalize()
	if n.CreditTo != CreditToBuyer {
		t.Fatalf("buyer should survive normalize, got %s", n.CreditTo)
	}
	if n.TotalCredit != 0 || n.TotalPercent != 0 {
		t.Fatalf("non-finite totals should zero, got %v / %v", n.TotalCredit, n.TotalPercent)
	}
	if n.FuelType != "" || n.TankOwnership != "" {
		t.Fatalf("unknown enums should clear, got %q / %q", n.FuelType, n.TankOwnership)
	}
}
