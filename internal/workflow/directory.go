package workflow

import (
	"context"
	"strconv"
	"strings"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/models"
)

// PatientDirectory is the patient list view: one fetch, client-side filtering,
// and a delete flow that edits the local copy on success instead of
// refetching.
type PatientDirectory struct {
	client   *api.Client
	patients []models.Patient
}

func NewPatientDirectory(client *api.Client) *PatientDirectory {
	return &PatientDirectory{client: client}
}

func (d *PatientDirectory) Load(ctx context.Context) error {
	patients, err := d.client.ListPatients(ctx)
	if err != nil {
		return err
	}
	d.patients = patients
	return nil
}

func (d *PatientDirectory) All() []models.Patient { return d.patients }

// Filter matches the search term against name, contact, or numeric id.
func (d *PatientDirectory) Filter(term string) []models.Patient {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d.patients
	}
	var out []models.Patient
	for _, p := range d.patients {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(p.Contact, term) ||
			strings.Contains(strconv.Itoa(p.ID), term) {
			out = append(out, p)
		}
	}
	return out
}

// Delete removes the patient remotely, then drops exactly that row from the
// local list. A failed delete leaves the list untouched and returns the
// server error.
func (d *PatientDirectory) Delete(ctx context.Context, id int) error {
	if err := d.client.DeletePatient(ctx, id); err != nil {
		return err
	}
	out := d.patients[:0]
	for _, p := range d.patients {
		if p.ID != id {
			out = append(out, p)
		}
	}
	d.patients = out
	return nil
}

// PrescriptionDirectory mirrors PatientDirectory for the prescription list.
type PrescriptionDirectory struct {
	client        *api.Client
	prescriptions []models.Prescription
}

func NewPrescriptionDirectory(client *api.Client) *PrescriptionDirectory {
	return &PrescriptionDirectory{client: client}
}

func (d *PrescriptionDirectory) Load(ctx context.Context) error {
	prescriptions, err := d.client.ListPrescriptions(ctx)
	if err != nil {
		return err
	}
	d.prescriptions = prescriptions
	return nil
}

func (d *PrescriptionDirectory) All() []models.Prescription { return d.prescriptions }

func (d *PrescriptionDirectory) Filter(term string) []models.Prescription {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return d.prescriptions
	}
	var out []models.Prescription
	for _, p := range d.prescriptions {
		if strings.Contains(strings.ToLower(p.PatientName), term) ||
			strings.Contains(strings.ToLower(p.SlipNumber), term) ||
			strings.Contains(strings.ToLower(p.DoctorName), term) {
			out = append(out, p)
		}
	}
	return out
}

func (d *PrescriptionDirectory) Delete(ctx context.Context, id int) error {
	if err := d.client.DeletePrescription(ctx, id); err != nil {
		return err
	}
	out := d.prescriptions[:0]
	for _, p := range d.prescriptions {
		if p.ID != id {
			out = append(out, p)
		}
	}
	d.prescriptions = out
	return nil
}
