package interfaces

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"profee-cloud/internal/export"
	"profee-cloud/internal/numeric"

	fuel "profee-cloud/internal/fuel/domain"
)

// BuildFuelProrationPDF renders the fuel-only export.
func BuildFuelProrationPDF(session fuel.Session, branding export.Branding) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 8, "Fuel Proration Summary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdfRow(pdf, "Fuel Type", asciiDash(fuelTypeLabel(session.FuelType)))
	company := session.FuelCompany
	if company == "" {
		company = "-"
	}
	pdfRow(pdf, "Fuel Company", company)
	pdfRow(pdf, "Tank Ownership", asciiDash(tankOwnershipLabel(session.TankOwnership)))

	pdf.Ln(4)
	percent := 0.0
	if numeric.IsFinite(session.TotalPercent) {
		percent = numeric.Clamp(session.TotalPercent, 0, 100)
	}
	drawFuelBar(pdf, branding, percent)

	pdf.Ln(2)
	pdfRow(pdf, "Total Fuel Credit", money(session.TotalCredit))
	pdfRow(pdf, "Credited to", creditToLabel(session.CreditTo))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 5, branding.Footer)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// asciiDash swaps the text placeholder for one the core PDF fonts can show.
func asciiDash(value string) string {
	if value == "—" {
		return "-"
	}
	return value
}

func pdfRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(90, 6, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, value, "B", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func drawFuelBar(pdf *gofpdf.Fpdf, branding export.Branding, percent float64) {
	const barWidth, barHeight = 60.0, 5.0
	p := math.Round(numeric.Clamp(percent, 0, 100))

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
