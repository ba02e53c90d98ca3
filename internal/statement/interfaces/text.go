package interfaces

import (
	"strconv"
	"strings"
	"time"

	"profee-cloud/internal/export"
	"profee-cloud/internal/numeric"
	statement "profee-cloud/internal/statement/domain"
)

func money(value float64) string {
	if !numeric.IsFinite(value) {
		return "$0.00"
	}
	return "$" + strconv.FormatFloat(value, 'f', 2, 64)
}

func percentLabel(value float64) string {
	if !numeric.IsFinite(value) {
		return "0%"
	}
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

func textLine(label, value string) string {
	return label + ": " + value
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// BuildStatementText renders the share-as-text form of a statement.
func BuildStatementText(stmt statement.Statement, branding export.Branding) string {
	summary := statement.CalculateSummary(stmt)

	var lines []string
	lines = append(lines, branding.AppName+" Statement")

	if stmt.PropertyAddress != "" {
		lines = append(lines, textLine("Property", stmt.PropertyAddress))
	}
	if date := dateLabel(stmt.CreatedAt); date != "" {
		lines = append(lines, textLine("Date", date))
	}

	salePrice := 0.0
	if stmt.SalePrice != nil && numeric.IsFinite(*stmt.SalePrice) {
		salePrice = *stmt.SalePrice
	}
	lines = append(lines, "")
	lines = append(lines, textLine("Sale price", money(salePrice)))
	lines = append(lines, textLine("Title company", orDash(stmt.TitleCompanyName)))
	lines = append(lines, textLine("Title email", orDash(stmt.TitleCompanyEmail)))

	lines = append(lines, "")
	lines = append(lines, textLine("Listing commission", money(summary.ListingCommissionAmount)))
	lines = append(lines, textLine("Buyer commission", money(summary.BuyerCommissionAmount)))
	lines = append(lines, textLine("Gross commission", money(summary.GrossCommissionAmount)))
	lines = append(lines, textLine("Referral fee", money(summary.ReferralFeeAmount)))
	if summary.ReferralFeeAmount > 0 && stmt.ReferralRecipient != "" {
		lines = append(lines, textLine("Referral paid to", stmt.ReferralRecipient))
	}
	lines = append(lines, textLine("Net commission", money(summary.NetCommissionAmount)))

	if stmt.Deposit != nil && numeric.IsFinite(stmt.Deposit.Amount) && stmt.Deposit.Amount > 0 {
		lines = append(lines, "")
		lines = append(lines, "Deposit")
		lines = append(lines, textLine("Amount", money(stmt.Deposit.Amount)))
		lines = append(lines, textLine("Held by", orDash(stmt.Deposit.HeldBy)))
		credited := "No"
		if stmt.Deposit.CreditedToBuyer {
			credited = "Yes"
		}
		lines = append(lines, textLine("Credited to buyer", credited))
	}

	if len(summary.TeamSplitResults) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Team splits")
		for _, split := range summary.TeamSplitResults {
			lines = append(lines, orDash(split.Name)+" ("+percentLabel(split.Percentage)+"): "+money(split.Amount))
		}
	}

	lines = append(lines, "")
	lines = append(lines, branding.Footer)
	return strings.Join(lines, "\n")
}
