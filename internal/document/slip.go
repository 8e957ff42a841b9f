package document

import (
	"fmt"

	"github.com/hospos-dev/hospos/internal/models"
)

// Slip renders the registration slip for a fresh visit and returns the
// written file path.
func (g *Generator) Slip(slip *models.Slip, patient *models.Patient) (string, error) {
	now := g.Clock()
	pdf := g.newPDF()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 128)
	centerText(pdf, 20, "HOSPITAL SLIP")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, 30, g.Letterhead.Name)
	centerText(pdf, 35, g.Letterhead.Address+" | "+g.Letterhead.Phone)

	pdf.SetFontSize(12)
	pdf.Text(20, 50, "Slip Number: "+slip.SlipNumber)
	pdf.Text(20, 57, fmt.Sprintf("Patient ID: %d", slip.PatientID))
	pdf.Text(20, 64, "Date: "+formatDate(now))
	pdf.Text(20, 71, "Time: "+formatTime(now))

	if patient != nil {
		pdf.Text(20, 85, "Patient Name: "+patient.Name)
		pdf.Text(20, 92, "Contact: "+patient.Contact)
		pdf.Text(20, 99, "Gender: "+string(patient.Gender))
		pdf.Text(20, 106, "Date of Birth: "+formatDateString(patient.DOB))
		pdf.Text(20, 113, fmt.Sprintf("Age: %d years", patient.Age(now)))
	}

	pdf.SetFontSize(11)
	pdf.SetTextColor(128, 0, 0)
	pdf.Text(20, 130, "> Please present this slip to the doctor")
	pdf.Text(20, 140, "> Doctor will examine and write prescription")
	pdf.Text(20, 150, "> Return to reception for billing after consultation")
	pdf.Text(20, 160, "> Keep this slip safe until discharge")

	pdf.SetFontSize(8)
	pdf.SetTextColor(100, 100, 100)
	centerText(pdf, 280, "This slip is generated electronically. Valid for one visit only.")

	return g.save(pdf, "hospital-slip-"+slip.SlipNumber+".pdf")
}
