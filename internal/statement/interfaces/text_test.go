package interfaces

import (
	"strings"
	"testing"
	"time"

	"profee-cloud/internal/export"

	statement "profee-cloud/internal/statement/domain"
)

func f64(v float64) *float64 { return &v }

func sampleStatement() statement.Statement {
	return statement.Statement{
		ID:                   "stmt-1",
		AgentID:              "agent-1",
		PropertyAddress:      "12 Oak Ln",
		SalePrice:            f64(200000),
		ListingCommissionPct: f64(3),
		BuyerCommissionPct:   f64(3),
		ReferralFeePct:       f64(25),
		ReferralRecipient:    "Acme Referrals",
		TitleCompanyName:     "First Title",
		TitleCompanyEmail:    "closing@firsttitle.test",
		Deposit:              &statement.Deposit{Amount: 5000, HeldBy: "First Title", CreditedToBuyer: true},
		TeamSplits: []statement.TeamSplit{
			{Name: "Alice", Percentage: 60},
			{Name: "Bob", Percentage: 40},
		},
		CreatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildStatementTextContents(t *testing.T) {
	text := BuildStatementText(sampleStatement(), export.DefaultBranding())

	for _, want := range []string{
		"ProFee Statement",
		"Property: 12 Oak Ln",
		"Date: 2026-03-15",
		"Sale price: $200000.00",
		"Title company: First Title",
		"Gross commission: $12000.00",
		"Referral fee: $3000.00",
		"Referral paid to: Acme Referrals",
		"Net commission: $9000.00",
		"Amount: $5000.00",
		"Held by: First Title",
		"Credited to buyer: Yes",
		"Alice (60%): $5400.00",
		"Bob (40%): $3600.00",
		"Prepared by ProFee",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text missing %q:\n%s", want, text)
		}
	}
}

func TestBuildStatementTextOmitsEmptySections(t *testing.T) {
	stmt := sampleStatement()
	stmt.ReferralFeePct = nil
	stmt.Deposit = nil
	stmt.TeamSplits = nil
	text := BuildStatementText(stmt, export.DefaultBranding())

	if strings.Contains(text, "Referral paid to") {
		t.Fatalf("unexpected referral recipient line:\n%s", text)
	}
	if strings.Contains(text, "Held by") {
		t.Fatalf("unexpected deposit section:\n%s", text)
	}
	if strings.Contains(text, "Team splits") {
		t.Fatalf("unexpected splits section:\n%s", text)
	}
	if !strings.Contains(text, "Referral fee: $0.00") {
		t.Fatalf("expected zero referral fee line:\n%s", text)
	}
}

func TestMoneyHandlesNonFinite(t *testing.T) {
	if got := money(1234.5); got != "$1234.50" {
		t.Fatalf("money = %q", got)
	}
	nan := 0.0
	nan = nan / nan
	if got := money(nan); got != "$0.00" {
		t.Fatalf("money(NaN) = %q", got)
	}
}
