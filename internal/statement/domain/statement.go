package statement

import (
	"encoding/json"
	"time"
)

// Deposit is an earnest-money deposit noted on a statement. It is
// informational and never folded into the commission math.
type Deposit struct {
	Amount          float64 `json:"amount"`
	HeldBy          string  `json:"heldBy"`
	CreditedToBuyer bool    `json:"creditedToBuyer"`
}

// TeamSplit is one party's percentage share of net commission.
type TeamSplit struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Statement is a commission disbursement statement as the agent fills it
// out. Optional numeric fields are pointers so that "never entered" stays
// distinguishable from an explicit zero.
type Statement struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	PropertyAddress string   `json:"propertyAddress,omitempty"`
	SalePrice       *float64 `json:"salePrice,omitempty"`

	ListingCommissionPct *float64 `json:"listingCommissionPct,omitempty"`
	BuyerCommissionPct   *float64 `json:"buyerCommissionPct,omitempty"`

	ReferralFeePct    *float64 `json:"referralFeePct,omitempty"`
	ReferralRecipient string   `json:"referralRecipient,omitempty"`

	Deposit    *Deposit    `json:"deposit,omitempty"`
	TeamSplits []TeamSplit `json:"teamSplits,omitempty"`

	TitleCompanyName  string `json:"titleCompanyName,omitempty"`
	TitleCompanyEmail string `json:"titleCompanyEmail,omitempty"`

	FuelProrationCredit   *float64 `json:"fuelProrationCredit,omitempty"`
	FuelProrationPercent  *float64 `json:"fuelProrationPercent,omitempty"`
	FuelProrationCreditTo string   `json:"fuelProrationCreditTo,omitempty"`
}

// statementAlias mirrors Statement and additionally accepts the legacy
// referralFeePercent spelling that older app builds persisted.
type statementAlias struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`

	PropertyAddress string   `json:"propertyAddress"`
	SalePrice       *float64 `json:"salePrice"`

	ListingCommissionPct *float64 `json:"listingCommissionPct"`
	BuyerCommissionPct   *float64 `json:"buyerCommissionPct"`

	ReferralFeePct     *float64 `json:"referralFeePct"`
	ReferralFeePercent *float64 `json:"referralFeePercent"`
	ReferralRecipient  string   `json:"referralRecipient"`

	Deposit    *Deposit    `json:"deposit"`
	TeamSplits []TeamSplit `json:"teamSplits"`

	TitleCompanyName  string `json:"titleCompanyName"`
	TitleCompanyEmail string `json:"titleCompanyEmail"`

	FuelProrationCredit   *float64 `json:"fuelProrationCredit"`
	FuelProrationPercent  *float64 `json:"fuelProrationPercent"`
	FuelProrationCreditTo string   `json:"fuelProrationCreditTo"`
}

// UnmarshalJSON decodes a statement, resolving the referral fee alias once
// at the boundary: referralFeePercent wins when both spellings are present.
func (s *Statement) UnmarshalJSON(data []byte) error {
	var alias statementAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	referral := alias.ReferralFeePct
	if alias.ReferralFeePercent != nil {
		referral = alias.ReferralFeePercent
	}
	*s = Statement{
		ID:                    alias.ID,
		AgentID:               alias.AgentID,
		CreatedAt:             alias.CreatedAt,
		PropertyAddress:       alias.PropertyAddress,
		SalePrice:             alias.SalePrice,
		ListingCommissionPct:  alias.ListingCommissionPct,
		BuyerCommissionPct:    alias.BuyerCommissionPct,
		ReferralFeePct:        referral,
		ReferralRecipient:     alias.ReferralRecipient,
		Deposit:               alias.Deposit,
		TeamSplits:            alias.TeamSplits,
		TitleCompanyName:      alias.TitleCompanyName,
		TitleCompanyEmail:     alias.TitleCompanyEmail,
		FuelProrationCredit:   alias.FuelProrationCredit,
		FuelProrationPercent:  alias.FuelProrationPercent,
		FuelProrationCreditTo: alias.FuelProrationCreditTo,
	}
	return nil
}

// Clone returns a deep copy so callers can hand statements around without
// sharing mutable slices.
func (s Statement) Clone() Statement {
	out := s
	out.SalePrice = clonePtr(s.SalePrice)
	out.ListingCommissionPct = clonePtr(s.ListingCommissionPct)
	out.BuyerCommissionPct = clonePtr(s.BuyerCommissionPct)
	out.ReferralFeePct = clonePtr(s.ReferralFeePct)
	out.FuelProrationCredit = clonePtr(s.FuelProrationCredit)
	out.FuelProrationPercent = clonePtr(s.FuelProrationPercent)
	if s.Deposit != nil {
		deposit := *s.Deposit
		out.Deposit = &deposit
	}
	if s.TeamSplits != nil {
		out.TeamSplits = make([]TeamSplit, len(s.TeamSplits))
		copy(out.TeamSplits, s.TeamSplits)
	}
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
