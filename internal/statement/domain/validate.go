package statement

import (
	"fmt"
	"math"
	"strings"

	"profee-cloud/internal/numeric"
)

// FieldError is one validation violation. Message is user-facing; Field is
// a stable identifier for the offending input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// splitSumTolerance absorbs float summation noise when checking that team
// split percentages total 100.
const splitSumTolerance = 0.005

// Validate checks a statement for save/export readiness. Every rule is
// evaluated; all violations are returned in rule order. An empty result
// means the statement is valid. Validation never blocks anything itself:
// it is advisory data for callers.
func Validate(stmt Statement) []FieldError {
	var errs []FieldError

	if stmt.SalePrice == nil || !numeric.IsFinite(*stmt.SalePrice) || *stmt.SalePrice <= 0 {
		errs = append(errs, FieldError{
			Field:   "salePrice",
			Message: "Sale price must be greater than 0.",
		})
	}

	if !pctInRange(stmt.ListingCommissionPct) {
		errs = append(errs, FieldError{
			Field:   "listingCommissionPct",
			Message: "Listing commission must be between 0 and 100%.",
		})
	}
	if !pctInRange(stmt.BuyerCommissionPct) {
		errs = append(errs, FieldError{
			Field:   "buyerCommissionPct",
			Message: "Buyer commission must be between 0 and 100%.",
		})
	}

	// Referral is optional: only a present, finite, out-of-range value is
	// flagged.
	if stmt.ReferralFeePct != nil && numeric.IsFinite(*stmt.ReferralFeePct) {
		if *stmt.ReferralFeePct < 0 || *stmt.ReferralFeePct > 100 {
			errs = append(errs, FieldError{
				Field:   "referralFeePct",
				Message: "Referral fee must be between 0 and 100%.",
			})
		}
	}

	if stmt.Deposit != nil {
		if !numeric.IsFinite(stmt.Deposit.Amount) || stmt.Deposit.Amount < 0 {
			errs = append(errs, FieldError{
				Field:   "deposit.amount",
				Message: "Deposit amount cannot be negative.",
			})
		}
		if strings.TrimSpace(stmt.Deposit.HeldBy) == "" {
			errs = append(errs, FieldError{
				Field:   "deposit.heldBy",
				Message: "Deposit must specify who is holding the funds.",
			})
		}
	}

	if len(stmt.TeamSplits) > 0 {
		total := 0.0
		for i, split := range stmt.TeamSplits {
			if strings.TrimSpace(split.Name) == "" {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("teamSplits[%d].name", i),
					Message: "All team members must have a name.",
				})
			}
			if !numeric.IsFinite(split.Percentage) || split.Percentage <= 0 || split.Percentage > 100 {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("teamSplits[%d].percentage", i),
					Message: "Each team split must be between 0 and 100%.",
				})
			}
			if numeric.IsFinite(split.Percentage) {
				total += split.Percentage
			}
		}
		if math.Abs(total-100) > splitSumTolerance {
			errs = append(errs, FieldError{
				Field:   "teamSplits",
				Message: "Team split percentages must total exactly 100%.",
			})
		}
	}

	return errs
}

func pctInRange(p *float64) bool {
	if p == nil || !numeric.IsFinite(*p) {
		return false
	}
	return *p >= 0 && *p <= 100
}
