package document

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hospos-dev/hospos/internal/models"
)

var prescriptionInstructions = []string{
	"- Take medicines as prescribed. Do not skip doses.",
	"- Complete the full course of medication.",
	"- Follow up if symptoms persist or worsen.",
	"- Maintain proper diet and hydration.",
	"- Contact hospital in case of emergency.",
	"- Keep this prescription for future reference.",
}

// Prescription renders the full prescription document: patient and doctor
// blocks, the medicine table with page continuation, clinical notes, and the
// fixed instruction boilerplate.
func (g *Generator) Prescription(prescription *models.Prescription, patient *models.Patient) (string, error) {
	now := g.Clock()
	pdf := g.newPDF()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 128)
	centerText(pdf, 20, "MEDICAL PRESCRIPTION")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, 30, g.Letterhead.Name)
	centerText(pdf, 35, g.Letterhead.Address+" | "+g.Letterhead.Phone)

	// Patient information box.
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(15, 50, 180, 30, "F")

	pdf.SetFontSize(11)
	pdf.Text(20, 58, "Patient Name: "+patient.Name)
	pdf.Text(20, 65, "Contact: "+patient.Contact)
	pdf.Text(20, 72, fmt.Sprintf("Gender: %s | DOB: %s", patient.Gender, formatDateString(patient.DOB)))

	pdf.Text(120, 58, "Slip Number: "+prescription.SlipNumber)
	pdf.Text(120, 65, fmt.Sprintf("Patient ID: %d", patient.ID))
	pdf.Text(120, 72, "Visit Date: "+formatDateString(prescription.CreatedAt))

	pdf.Text(20, 85, "Prescribing Doctor: Dr. "+prescription.DoctorName)

	pdf.SetFontSize(14)
	pdf.SetTextColor(0, 100, 0)
	pdf.Text(20, 110, "PRESCRIBED MEDICINES:")

	g.medicineTableHeader(pdf, 115)

	y := 128.0
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFontSize(10)

	for i, med := range prescription.MedicineList {
		if y > breakThreshold {
			y = g.continuationPage(pdf)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
			pdf.Rect(20, y-4, 170, 8, "F")
		}

		pdf.Text(22, y, fmt.Sprintf("%d.", i+1))

		// Long names wrap within the name column; the cursor advances by
		// the wrapped line count.
		lines := pdf.SplitText(med.Name, 50)
		for j, line := range lines {
			pdf.Text(35, y+float64(j)*5, line)
		}

		pdf.Text(100, y, orDash(med.Dosage))
		pdf.Text(130, y, orDash(med.Frequency))
		pdf.Text(160, y, orDash(med.Duration))

		y += 8
		if len(lines) > 1 {
			y += float64(len(lines)-1) * 5
		}
	}

	if prescription.Notes != "" {
		y += 10
		if y > breakThreshold {
			pdf.AddPage()
			y = 20
		}

		pdf.SetFontSize(12)
		pdf.SetTextColor(0, 0, 128)
		pdf.Text(20, y, "DOCTOR'S NOTES & INSTRUCTIONS:")

		pdf.SetFontSize(10)
		pdf.SetTextColor(0, 0, 0)
		y += 8

		noteLines := pdf.SplitText(prescription.Notes, 160)
		for j, line := range noteLines {
			pdf.Text(20, y+float64(j)*5, line)
		}
		y += float64(len(noteLines))*5 + 10
	}

	if y > breakThreshold {
		pdf.AddPage()
		y = 20
	}

	pdf.SetFontSize(10)
	pdf.SetTextColor(128, 0, 0)
	pdf.Text(20, y, "Important Instructions:")
	y += 6

	pdf.SetFontSize(8)
	for _, instruction := range prescriptionInstructions {
		if y > 270 {
			pdf.AddPage()
			y = 20
		}
		pdf.Text(22, y, instruction)
		y += 5
	}

	pdf.SetFontSize(8)
	pdf.SetTextColor(100, 100, 100)
	centerText(pdf, 280, "This is a computer-generated prescription. Valid for 30 days.")
	centerText(pdf, 285, "Generated on: "+formatDate(now)+" "+formatTime(now))

	return g.save(pdf, "prescription-"+prescription.SlipNumber+".pdf")
}

// medicineTableHeader draws the green column header band at height y.
func (g *Generator) medicineTableHeader(pdf *gofpdf.Fpdf, y float64) {
	pdf.SetFillColor(0, 100, 0)
	pdf.Rect(20, y, 170, 8, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFontSize(10)
	pdf.Text(22, y+5, "No.")
	pdf.Text(35, y+5, "Medicine Name")
	pdf.Text(100, y+5, "Dosage")
	pdf.Text(130, y+5, "Frequency")
	pdf.Text(160, y+5, "Duration")
}

// continuationPage starts a fresh page with the continued-document header and
// returns the cursor position where the table resumes.
func (g *Generator) continuationPage(pdf *gofpdf.Fpdf) float64 {
	pdf.AddPage()
	pdf.SetFontSize(10)
	pdf.SetTextColor(0, 0, 0)
	centerText(pdf, 30, g.Letterhead.Name+" - Medical Prescription (Continued)")
	return 40
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
