package document

import (
	"fmt"

	"github.com/hospos-dev/hospos/internal/models"
)

// Receipt renders the payment receipt: itemized consultation and medicine
// lines with the taxed total, and returns the written file path.
func (g *Generator) Receipt(patient *models.Patient, prescription *models.Prescription, bill *models.Bill) (string, error) {
	now := g.Clock()
	pdf := g.newPDF()

	pdf.SetFont("Helvetica", "B", 20)
	centerText(pdf, 20, "MEDICAL RECEIPT")

	pdf.SetFont("Helvetica", "", 10)
	centerText(pdf, 30, g.Letterhead.Name)
	centerText(pdf, 35, g.Letterhead.Address)

	pdf.SetFontSize(12)
	pdf.Text(20, 50, fmt.Sprintf("Receipt No: RCP%d", now.UnixMilli()))
	pdf.Text(20, 55, "Date: "+formatDate(now))
	pdf.Text(20, 60, "Patient: "+patient.Name)
	pdf.Text(20, 65, "Slip No: "+prescription.SlipNumber)

	y := 80.0
	pdf.Text(20, y, "Description")
	rightText(pdf, 180, y, "Amount")
	y += 10

	pdf.Text(20, y, "Consultation Fee")
	rightText(pdf, 180, y, fmt.Sprintf("Rs. %.2f", bill.ConsultationFee))
	y += 10

	for _, med := range bill.Medicines {
		if y > breakThreshold {
			pdf.AddPage()
			y = 20
		}
		pdf.Text(20, y, fmt.Sprintf("%s (%s)", med.Name, orDash(med.Dosage)))
		rightText(pdf, 180, y, fmt.Sprintf("Rs. %.2f", med.Cost))
		y += 7
	}

	if bill.Tax > 0 {
		pdf.Text(20, y, "Tax (5%)")
		rightText(pdf, 180, y, fmt.Sprintf("Rs. %.2f", bill.Tax))
		y += 7
	}
	if bill.Discount > 0 {
		pdf.Text(20, y, "Discount")
		rightText(pdf, 180, y, fmt.Sprintf("-Rs. %.2f", bill.Discount))
		y += 7
	}

	y += 5
	pdf.SetFontSize(12)
	pdf.Text(20, y, "Total Amount:")
	rightText(pdf, 180, y, fmt.Sprintf("Rs. %.2f", bill.Total))

	return g.save(pdf, "receipt-"+prescription.SlipNumber+".pdf")
}
