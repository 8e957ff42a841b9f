package cmd

import (
	"fmt"
	"io"

	"github.com/hospos-dev/hospos/internal/models"
)

func renderPatients(out io.Writer, patients []models.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(out, "No patients found.")
		return
	}
	fmt.Fprintf(out, "%-5s %-25s %-15s %-8s %-12s %-7s %s\n",
		"ID", "Name", "Contact", "Gender", "DOB", "Visits", "Last Visit")
	for _, p := range patients {
		lastVisit := p.LastVisit
		if lastVisit == "" {
			lastVisit = "Never visited"
		}
		fmt.Fprintf(out, "%-5d %-25s %-15s %-8s %-12s %-7d %s\n",
			p.ID, p.Name, p.Contact, p.Gender, p.DOB, p.TotalVisits, lastVisit)
	}
	fmt.Fprintf(out, "Total patients: %d\n", len(patients))
}

func renderPrescriptionRows(out io.Writer, prescriptions []models.Prescription) {
	if len(prescriptions) == 0 {
		fmt.Fprintln(out, "No prescriptions found.")
		return
	}
	for _, p := range prescriptions {
		status := p.PharmacyStatus
		if status == "" {
			status = models.StatusPending
		}
		fmt.Fprintf(out, "[%d] %s  %s  Dr. %s  %d medicine(s)  %s\n",
			p.ID, p.SlipNumber, p.PatientName, p.DoctorName, len(p.MedicineList), status.Label())
	}
	fmt.Fprintf(out, "Total prescriptions: %d\n", len(prescriptions))
}

func renderPrescription(out io.Writer, prescription *models.Prescription, patient *models.Patient) {
	fmt.Fprintln(out, "--- Medical Prescription ---")
	if patient != nil {
		fmt.Fprintf(out, "Patient: %s  (#%d)\n", patient.Name, patient.ID)
		fmt.Fprintf(out, "Contact: %s  Gender: %s  DOB: %s\n", patient.Contact, patient.Gender, patient.DOB)
	}
	fmt.Fprintf(out, "Slip: %s  Dr. %s\n", prescription.SlipNumber, prescription.DoctorName)
	status := prescription.PharmacyStatus
	if status == "" {
		status = models.StatusPending
	}
	fmt.Fprintf(out, "Pharmacy status: %s\n", status.Label())
	if len(prescription.MedicineList) == 0 {
		fmt.Fprintln(out, "No medications prescribed")
	}
	for i, med := range prescription.MedicineList {
		fmt.Fprintf(out, "%d. %s  %s  %s  %s\n", i+1, med.Name,
			orDash(med.Dosage), orDash(med.Frequency), orDash(med.Duration))
	}
	if prescription.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", prescription.Notes)
	}
}

func renderBill(out io.Writer, bill *models.Bill, patient *models.Patient) {
	fmt.Fprintln(out, "--- Bill Breakdown ---")
	if patient != nil {
		fmt.Fprintf(out, "Patient: %s  Slip: %s\n", patient.Name, patient.SlipNumber)
	}
	fmt.Fprintf(out, "%-40s %10.2f\n", "Consultation Fee", bill.ConsultationFee)
	for _, med := range bill.Medicines {
		fmt.Fprintf(out, "%-40s %10.2f\n", fmt.Sprintf("%s - %s", med.Name, orDash(med.Dosage)), med.Cost)
	}
	fmt.Fprintf(out, "%-40s %10.2f\n", "Tax (5%)", bill.Tax)
	if bill.Discount > 0 {
		fmt.Fprintf(out, "%-40s -%9.2f\n", "Discount", bill.Discount)
	}
	fmt.Fprintf(out, "%-40s %10.2f\n", "Total Amount", bill.Total)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
