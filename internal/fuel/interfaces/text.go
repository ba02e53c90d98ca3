package interfaces

import (
	"math"
	"strconv"
	"strings"

	"profee-cloud/internal/export"
	"profee-cloud/internal/numeric"

	fuel "profee-cloud/internal/fuel/domain"
)

func fuelTypeLabel(value string) string {
	switch value {
	case fuel.FuelTypeOil:
		return "Oil"
	case fuel.FuelTypePropane:
		return "Propane"
	case fuel.FuelTypeKerosene:
		return "Kerosene"
	}
	return "—"
}

func tankOwnershipLabel(value string) string {
	switch value {
	case fuel.TankOwned:
		return "Owned"
	case fuel.TankLeased:
		return "Leased"
	}
	return "—"
}

func creditToLabel(value string) string {
	if value == fuel.CreditToBuyer {
		return "Buyer"
	}
	return "Seller"
}

func roundedPercent(value float64) int {
	if !numeric.IsFinite(value) {
		return 0
	}
	return int(math.Round(value))
}

func money(value float64) string {
	if !numeric.IsFinite(value) {
		return "$0.00"
	}
	return "$" + strconv.FormatFloat(value, 'f', 2, 64)
}

// BuildFuelProrationText renders the share-as-text form of a fuel session.
func BuildFuelProrationText(session fuel.Session, branding export.Branding) string {
	fuelCompany := strings.TrimSpace(session.FuelCompany)
	if fuelCompany == "" {
		fuelCompany = "—"
	}

	lines := []string{
		"Fuel Proration Summary",
		"",
		"Fuel Type: " + fuelTypeLabel(session.FuelType),
		"Fuel Company: " + fuelCompany,
		"Tank Ownership: " + tankOwnershipLabel(session.TankOwnership),
		"",
		"Fuel Level: " + strconv.Itoa(roundedPercent(session.TotalPercent)) + "%",
		"Total Fuel Credit: " + money(session.TotalCredit),
		"Credited to: " + creditToLabel(session.CreditTo),
		"",
		branding.Footer,
	}
	return strings.Join(lines, "\n")
}
