package interfaces

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"profee-cloud/internal/export"
	"profee-cloud/internal/numeric"
	statement "profee-cloud/internal/statement/domain"
)

// BuildStatementPDF renders the disbursement statement as a PDF.
func BuildStatementPDF(stmt statement.Statement, branding export.Branding) ([]byte, error) {
	summary := statement.CalculateSummary(stmt)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, branding.AppName+" Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if stmt.PropertyAddress != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Property: %s", stmt.PropertyAddress))
		pdf.Ln(5)
	}
	if date := dateLabel(stmt.CreatedAt); date != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", date))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Commissions")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)

	salePrice := 0.0
	if stmt.SalePrice != nil && numeric.IsFinite(*stmt.SalePrice) {
		salePrice = *stmt.SalePrice
	}
	pdfRow(pdf, "Sale price", money(salePrice))
	pdfRow(pdf, "Title Company", pdfDash(stmt.TitleCompanyName))
	pdfRow(pdf, "Title Email", pdfDash(stmt.TitleCompanyEmail))
	pdfRow(pdf, "Listing commission", money(summary.ListingCommissionAmount))
	pdfRow(pdf, "Buyer commission", money(summary.BuyerCommissionAmount))
	pdfRow(pdf, "Gross commission", money(summary.GrossCommissionAmount))
	if summary.ReferralFeeAmount > 0 {
		pdfRow(pdf, "Referral fee", "-"+money(summary.ReferralFeeAmount))
		if stmt.ReferralRecipient != "" {
			pdfRow(pdf, "Referral Paid To", stmt.ReferralRecipient)
		}
	}
	pdfRow(pdf, "Net commission", money(summary.NetCommissionAmount))

	if stmt.Deposit != nil && numeric.IsFinite(stmt.Deposit.Amount) && stmt.Deposit.Amount > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Deposit")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdfRow(pdf, "Deposit amount", money(stmt.Deposit.Amount))
		pdfRow(pdf, "Held by", pdfDash(stmt.Deposit.HeldBy))
		credited := "No"
		if stmt.Deposit.CreditedToBuyer {
			credited = "Yes"
		}
		pdfRow(pdf, "Credited to buyer", credited)
	}

	if len(summary.TeamSplitResults) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Team splits")
		pdf.Ln(7)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(80, 6, "Name", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "Share", "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, split := range summary.TeamSplitResults {
			pdf.CellFormat(80, 6, pdfDash(split.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, percentLabel(split.Percentage), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, money(split.Amount), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	if stmt.FuelProrationCredit != nil && numeric.IsFinite(*stmt.FuelProrationCredit) && *stmt.FuelProrationCredit > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Fuel proration")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdfRow(pdf, "Fuel credit", money(*stmt.FuelProrationCredit))
		if stmt.FuelProrationCreditTo != "" {
			pdfRow(pdf, "Credited to", titleCase(stmt.FuelProrationCreditTo))
		}
		percent := 0.0
		if stmt.FuelProrationPercent != nil {
			percent = numeric.Clamp(*stmt.FuelProrationPercent, 0, 100)
		}
		drawFuelBar(pdf, branding, percent)
	}

	if branding.Disclaimer != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, branding.Disclaimer, "T", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 5, branding.Footer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// pdfDash renders blank values with a dash the core PDF fonts can show.
func pdfDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func pdfRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(90, 6, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, value, "B", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

// drawFuelBar renders the fill-level bar from the mobile export template:
// an outlined track with an accent-colored fill proportional to percent.
func drawFuelBar(pdf *gofpdf.Fpdf, branding export.Branding, percent float64) {
	const barWidth, barHeight = 60.0, 5.0
	p := math.Round(numeric.Clamp(percent, 0, 100))

	pdf.Ln(2)
	pdf.Cell(0, 5, "Fuel Level")
	pdf.Ln(6)
	x, y := pdf.GetXY()
	pdf.Rect(x, y, barWidth, barHeight, "D")
	if p > 0 {
		r, g, b := branding.AccentRGB()
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, barWidth*p/100, barHeight, "F")
	}
	pdf.SetXY(x, y+barHeight+2)
	pdf.Cell(0, 5, fmt.Sprintf("%d%%", int(p)))
	pdf.Ln(6)
}

func titleCase(value string) string {
	if value == "" || value[0] < 'a' || value[0] > 'z' {
		return value
	}
	return string(value[0]-'a'+'A') + value[1:]
}

// BuildStatementXLSX renders a statement as a workbook with a summary
// sheet and a splits sheet.
func BuildStatementXLSX(stmt statement.Statement, branding export.Branding) ([]byte, error) {
	summary := statement.CalculateSummary(stmt)

	f := excelize.NewFile()
	summarySheet := "summary"
	splitsSheet := "splits"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(splitsSheet)

	salePrice := 0.0
	if stmt.SalePrice != nil && numeric.IsFinite(*stmt.SalePrice) {
		salePrice = *stmt.SalePrice
	}

	_ = f.SetCellValue(summarySheet, "A1", branding.AppName+" Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Property")
	_ = f.SetCellValue(summarySheet, "B3", stmt.PropertyAddress)
	_ = f.SetCellValue(summarySheet, "A4", "Date")
	_ = f.SetCellValue(summarySheet, "B4", dateLabel(stmt.CreatedAt))
	_ = f.SetCellValue(summarySheet, "A5", "Sale price")
	_ = f.SetCellValue(summarySheet, "B5", salePrice)
	_ = f.SetCellValue(summarySheet, "A6", "Title company")
	_ = f.SetCellValue(summarySheet, "B6", stmt.TitleCompanyName)
	_ = f.SetCellValue(summarySheet, "A7", "Listing commission")
	_ = f.SetCellValue(summarySheet, "B7", summary.ListingCommissionAmount)
	_ = f.SetCellValue(summarySheet, "A8", "Buyer commission")
	_ = f.SetCellValue(summarySheet, "B8", summary.BuyerCommissionAmount)
	_ = f.SetCellValue(summarySheet, "A9", "Gross commission")
	_ = f.SetCellValue(summarySheet, "B9", summary.GrossCommissionAmount)
	_ = f.SetCellValue(summarySheet, "A10", "Referral fee")
	_ = f.SetCellValue(summarySheet, "B10", summary.ReferralFeeAmount)
	_ = f.SetCellValue(summarySheet, "A11", "Net commission")
	_ = f.SetCellValue(summarySheet, "B11", summary.NetCommissionAmount)
	_ = f.SetCellValue(summarySheet, "A12", "Deposit")
	_ = f.SetCellValue(summarySheet, "B12", summary.DepositAmount)

	_ = f.SetCellValue(splitsSheet, "A1", "Name")
	_ = f.SetCellValue(splitsSheet, "B1", "Percentage")
	_ = f.SetCellValue(splitsSheet, "C1", "Amount")
	for i, split := range summary.TeamSplitResults {
		row := i + 2
		_ = f.SetCellValue(splitsSheet, fmt.Sprintf("A%d", row), split.Name)
		_ = f.SetCellValue(splitsSheet, fmt.Sprintf("B%d", row), split.Percentage)
		_ = f.SetCellValue(splitsSheet, fmt.Sprintf("C%d", row), split.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
