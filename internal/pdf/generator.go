package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Zandino/Deltapp/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// InterventionReport renders a printable summary of an intervention:
// header, site block, technician and expense tables, totals, and the
// closure record when the job is completed.
func (g *Generator) InterventionReport(i model.Intervention) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Intervention %s — %s", i.ID, i.Title)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s %s — statut : %s", i.Date, i.Time, i.Status)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Client et site"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Client : %s", i.ClientName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Site : %s", i.SiteName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Adresse : %s, %s %s", i.Location.Address, i.Location.PostalCode, i.Location.City)), "", 1, "L", false, 0, "")
	if i.SiteContact.Name != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Contact : %s (%s)", i.SiteContact.Name, i.SiteContact.Phone)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if len(i.Technicians) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Techniciens"), "", 1, "L", false, 0, "")
		headers := []string{"Nom", "Rôle", "Achat", "Vente"}
		widths := []float64{80, 35, 32, 32}
		drawTableRow(pdf, tr, headers, widths, true)
		for _, tech := range i.Technicians {
			row := []string{
				tech.Name,
				string(tech.Role),
				formatOptionalPrice(tech.BuyPrice),
				formatOptionalPrice(tech.SellPrice),
			}
			drawTableRow(pdf, tr, row, widths, false)
		}
		pdf.Ln(3)
	}

	if len(i.Expenses) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Frais divers"), "", 1, "L", false, 0, "")
		headers := []string{"Type", "Description", "Montant"}
		widths := []float64{45, 95, 39}
		drawTableRow(pdf, tr, headers, widths, true)
		for _, expense := range i.Expenses {
			row := []string{expense.Type, expense.Description, formatPrice(float64(expense.Amount))}
			drawTableRow(pdf, tr, row, widths, false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("Totaux"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Prix d'achat : %s", formatPrice(float64(i.BuyPrice)))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Prix de vente : %s", formatPrice(float64(i.SellPrice)))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Total frais : %s", formatPrice(float64(i.TotalExpenses)))), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Montant total : %s", formatPrice(float64(i.TotalAmount)))), "", 1, "L", false, 0, "")

	if i.Closure != nil {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Clôture"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(i.Closure.CompletionNotes), "", "L", false)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Arrivée : %s — Départ : %s", i.Closure.ArrivalTime, i.Closure.DepartureTime)), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Signataire : %s", i.Closure.SignatoryName)), "", 1, "L", false, 0, "")
		for _, material := range i.Closure.Materials {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("Matériel : %s (n/s %s)", material.Designation, material.SerialNumber)), "", 1, "L", false, 0, "")
		}
		if i.Closure.NeedsFollowUp {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("Suivi requis : %s", i.Closure.FollowUpNotes)), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []string, widths []float64, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", 10)
	} else {
		pdf.SetFont("Helvetica", "", 10)
	}
	for idx, cell := range cells {
		pdf.CellFormat(widths[idx], 7, tr(cell), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatPrice(value float64) string {
	return fmt.Sprintf("%.2f EUR", value)
}

func formatOptionalPrice(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatPrice(*value)
}
