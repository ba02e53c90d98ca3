package fuel

import (
	"profee-cloud/internal/numeric"
)

// Tank is one fuel container being prorated at closing. When PercentFull is
// set it is authoritative and CurrentGallons is ignored; otherwise
// CurrentGallons drives the computation. The two are never combined.
type Tank struct {
	ID              string   `json:"id"`
	CapacityGallons float64  `json:"capacityGallons"`
	CurrentGallons  float64  `json:"currentGallons"`
	PercentFull     *float64 `json:"percentFull,omitempty"`
	PricePerGallon  float64  `json:"pricePerGallon"`
}

// TankResult is a tank extended with the resolved billing gallons and the
// dollar credit derived from them.
type TankResult struct {
	Tank
	EffectiveGallons float64 `json:"effectiveGallons"`
	Credit           float64 `json:"credit"`
}

// Proration is the outcome of prorating a list of tanks.
type Proration struct {
	TankResults []TankResult `json:"tankResults"`
	TotalCredit float64      `json:"totalCredit"`
}

// TankCredit computes the dollar credit for a gallons/price pair. Non-finite
// operands yield 0; the result is never negative.
func TankCredit(gallons, pricePerGallon float64) float64 {
	if !numeric.IsFinite(gallons) || !numeric.IsFinite(pricePerGallon) {
		return 0
	}
	safeGallons := gallons
	if safeGallons < 0 {
		safeGallons = 0
	}
	safePrice := pricePerGallon
	if safePrice < 0 {
		safePrice = 0
	}
	return safeGallons * safePrice
}

// EffectiveGallons resolves the gallons used for billing. A set PercentFull
// wins over CurrentGallons; CurrentGallons is passed through as given.
func (t Tank) EffectiveGallons() float64 {
	if t.PercentFull == nil {
		return t.CurrentGallons
	}
	capacity := t.CapacityGallons
	if capacity < 0 {
		capacity = 0
	}
	return capacity * numeric.Clamp(*t.PercentFull, 0, 100) / 100
}

// CalculateProration resolves every tank's effective gallons and credit and
// sums the total. Output order matches input order. Pure function: the input
// slice is never mutated.
func CalculateProration(tanks []Tank) Proration {
	results := make([]TankResult, 0, len(tanks))
	total := 0.0
	for _, tank := range tanks {
		gallons := tank.EffectiveGallons()
		credit := TankCredit(gallons, tank.PricePerGallon)
		results = append(results, TankResult{
			Tank:             tank,
			EffectiveGallons: gallons,
			Credit:           credit,
		})
		if numeric.IsFinite(credit) {
			total += credit
		}
	}
	return Proration{TankResults: results, TotalCredit: total}
}

// TotalFillPercent is the combined fill level across tanks: total effective
// gallons over total capacity, scaled to percent and clamped to [0,100].
// Zero total capacity yields 0.
func TotalFillPercent(tanks []Tank) float64 {
	var gallons, capacity float64
	for _, tank := range tanks {
		gallons += tank.EffectiveGallons()
		if tank.CapacityGallons > 0 {
			capacity += tank.CapacityGallons
		}
	}
	if capacity == 0 {
		return 0
	}
	return numeric.Clamp(gallons/capacity*100, 0, 100)
}
