package fuel

import (
	"time"

	"profee-cloud/internal/numeric"
)

// Credit direction at closing.
const (
	CreditToBuyer  = "buyer"
	CreditToSeller = "seller"
)

// Fuel types supported by the gauge UI.
const (
	FuelTypeOil      = "oil"
	FuelTypePropane  = "propane"
	FuelTypeKerosene = "kerosene"
)

// Tank ownership states.
const (
	TankOwned  = "owned"
	TankLeased = "leased"
)

// Session is the per-agent fuel proration session captured between app runs.
// It carries the last computed totals plus the metadata the exports need.
type Session struct {
	AgentID            string    `json:"agentId"`
	IncludeInStatement bool      `json:"includeInStatement"`
	ExportFuelOnly     bool      `json:"exportFuelOnly"`
	TotalCredit        float64   `json:"totalCredit"`
	TotalPercent       float64   `json:"totalPercent"`
	CreditTo           string    `json:"creditTo"`
	FuelType           string    `json:"fuelType,omitempty"`
	FuelCompany        string    `json:"fuelCompany,omitempty"`
	TankOwnership      string    `json:"tankOwnership,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// StatementAddon is the fuel contribution attached to a statement when the
// agent opts in.
type StatementAddon struct {
	Credit   float64 `json:"fuelProrationCredit"`
	Percent  float64 `json:"fuelProrationPercent"`
	CreditTo string  `json:"fuelProrationCreditTo"`
}

// NewSession returns the default session for an agent.
func NewSession(agentID string) Session {
	return Session{AgentID: agentID, CreditTo: CreditToSeller}
}

// Normalize repairs fields that may arrive malformed from old persisted
// payloads: unknown credit direction falls back to seller and non-finite
// totals are zeroed.
func (s Session) Normalize() Session {
	if s.CreditTo != CreditToBuyer {
		s.CreditTo = CreditToSeller
	}
	if !numeric.IsFinite(s.TotalCredit) {
		s.TotalCredit = 0
	}
	if !numeric.IsFinite(s.TotalPercent) {
		s.TotalPercent = 0
	}
	switch s.FuelType {
	case FuelTypeOil, FuelTypePropane, FuelTypeKerosene, "":
	default:
		s.FuelType = ""
	}
	switch s.TankOwnership {
	case TankOwned, TankLeased, "":
	default:
		s.TankOwnership = ""
	}
	return s
}

// StatementAddon returns the fuel values to merge into a statement, or nil
// when the session is not included or carries no positive credit.
func (s Session) StatementAddon() *StatementAddon {
	if !s.IncludeInStatement {
		return nil
	}
	if !numeric.IsFinite(s.TotalCredit) || s.TotalCredit <= 0 {
		return nil
	}
	percent := 0.0
	if numeric.IsFinite(s.TotalPercent) {
		percent = numeric.Clamp(s.TotalPercent, 0, 100)
	}
	creditTo := s.CreditTo
	if creditTo != CreditToBuyer {
		creditTo = CreditToSeller
	}
	return &StatementAddon{Credit: s.TotalCredit, Percent: percent, CreditTo: creditTo}
}
