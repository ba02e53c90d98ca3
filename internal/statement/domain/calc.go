package statement

import (
	"profee-cloud/internal/numeric"
)

// SplitResult is a team split resolved to a dollar amount.
type SplitResult struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Summary is the derived financial projection of a statement. It is always
// recomputed and never persisted. Amounts are full precision; currency
// rounding is the exporter's job.
type Summary struct {
	ListingCommissionAmount float64       `json:"listingCommissionAmount"`
	BuyerCommissionAmount   float64       `json:"buyerCommissionAmount"`
	GrossCommissionAmount   float64       `json:"grossCommissionAmount"`
	ReferralFeeAmount       float64       `json:"referralFeeAmount"`
	NetCommissionAmount     float64       `json:"netCommissionAmount"`
	TeamSplitResults        []SplitResult `json:"teamSplitResults"`
	DepositAmount           float64       `json:"depositAmount"`
}

// CalculateSummary derives all commission amounts from a statement.
// The referral fee applies to gross commission, not the sale price, and
// each team split is a percentage of net (post-referral) commission.
// Absent or non-finite fields count as zero; the calculator never fails.
func CalculateSummary(stmt Statement) Summary {
	salePrice := orZero(stmt.SalePrice)

	listing := salePrice * orZero(stmt.ListingCommissionPct) / 100
	buyer := salePrice * orZero(stmt.BuyerCommissionPct) / 100
	gross := listing + buyer

	referralFee := gross * orZero(stmt.ReferralFeePct) / 100
	net := gross - referralFee

	deposit := 0.0
	if stmt.Deposit != nil && numeric.IsFinite(stmt.Deposit.Amount) {
		deposit = stmt.Deposit.Amount
	}

	splits := make([]SplitResult, 0, len(stmt.TeamSplits))
	for _, split := range stmt.TeamSplits {
		pct := split.Percentage
		amount := 0.0
		if numeric.IsFinite(pct) {
			amount = net * pct / 100
		}
		splits = append(splits, SplitResult{Name: split.Name, Percentage: pct, Amount: amount})
	}

	return Summary{
		ListingCommissionAmount: listing,
		BuyerCommissionAmount:   buyer,
		GrossCommissionAmount:   gross,
		ReferralFeeAmount:       referralFee,
		NetCommissionAmount:     net,
		TeamSplitResults:        splits,
		DepositAmount:           deposit,
	}
}

func orZero(p *float64) float64 {
	if p == nil || !numeric.IsFinite(*p) {
		return 0
	}
	return *p
}
