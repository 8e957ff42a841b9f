package workflow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/models"
)

type DoctorTab int

const (
	TabDoctorPatients DoctorTab = iota
	TabDoctorPrescriptions
	TabDoctorLookup
	TabDoctorAuthor
	TabDoctorView
)

func (t DoctorTab) String() string {
	switch t {
	case TabDoctorPatients:
		return "patients"
	case TabDoctorPrescriptions:
		return "prescriptions"
	case TabDoctorLookup:
		return "lookup"
	case TabDoctorAuthor:
		return "prescription"
	case TabDoctorView:
		return "view"
	}
	return "unknown"
}

var doctorFlow = map[DoctorTab][]DoctorTab{
	TabDoctorPatients:      {TabDoctorPrescriptions, TabDoctorLookup, TabDoctorView},
	TabDoctorPrescriptions: {TabDoctorPatients, TabDoctorLookup, TabDoctorView},
	TabDoctorLookup:        {TabDoctorPatients, TabDoctorPrescriptions, TabDoctorAuthor, TabDoctorView},
	TabDoctorAuthor:        {TabDoctorLookup, TabDoctorView},
	TabDoctorView:          {TabDoctorPatients, TabDoctorPrescriptions, TabDoctorLookup, TabDoctorAuthor},
}

// Draft is the in-progress prescription: an ordered medicine list that starts
// with one blank row. Removing every row is allowed; blank-name rows are
// dropped at submit time.
type Draft struct {
	Medicines models.MedicineList
	Notes     string
}

func NewDraft() *Draft {
	return &Draft{Medicines: models.MedicineList{{}}}
}

func (d *Draft) AddRow() { d.Medicines = append(d.Medicines, models.Medicine{}) }

func (d *Draft) RemoveRow(i int) error {
	if i < 0 || i >= len(d.Medicines) {
		return errors.New("no such medicine row")
	}
	d.Medicines = append(d.Medicines[:i], d.Medicines[i+1:]...)
	return nil
}

type Doctor struct {
	client *api.Client
	docs   *document.Generator
	log    zerolog.Logger

	tab          DoctorTab
	patient      *models.Patient
	prescription *models.Prescription
	draft        *Draft

	Patients      *PatientDirectory
	Prescriptions *PrescriptionDirectory
}

func NewDoctor(client *api.Client, docs *document.Generator, log zerolog.Logger) *Doctor {
	return &Doctor{
		client:        client,
		docs:          docs,
		log:           log.With().Str("workflow", "doctor").Logger(),
		tab:           TabDoctorPatients,
		Patients:      NewPatientDirectory(client),
		Prescriptions: NewPrescriptionDirectory(client),
	}
}

func (d *Doctor) Tab() DoctorTab { return d.tab }

func (d *Doctor) Patient() *models.Patient { return d.patient }

func (d *Doctor) Prescription() *models.Prescription { return d.prescription }

func (d *Doctor) Draft() *Draft { return d.draft }

func (d *Doctor) switchTo(target DoctorTab) error {
	for _, allowed := range doctorFlow[d.tab] {
		if allowed == target {
			d.tab = target
			return nil
		}
	}
	return errors.New("invalid tab transition: " + d.tab.String() + " -> " + target.String())
}

// OpenLookup returns to the slip search form.
func (d *Doctor) OpenLookup() error { return d.switchTo(TabDoctorLookup) }

// Lookup finds the patient for a slip, then probes for an existing
// prescription. Found: the view tab. Any probe failure counts as "not yet
// written" and opens a fresh authoring draft; only the patient lookup itself
// can surface an error.
func (d *Doctor) Lookup(ctx context.Context, slipNumber string) error {
	patient, err := d.client.PatientBySlip(ctx, slipNumber)
	if err != nil {
		return err
	}
	d.patient = patient

	prescription, err := d.client.PrescriptionBySlip(ctx, slipNumber)
	if err != nil {
		d.prescription = nil
		d.draft = NewDraft()
		return d.switchTo(TabDoctorAuthor)
	}
	d.prescription = prescription
	return d.switchTo(TabDoctorView)
}

// Submit filters blank medicine rows out of the draft, posts it, re-fetches
// the stored prescription, and lands on the view tab.
func (d *Doctor) Submit(ctx context.Context) error {
	if d.patient == nil || d.draft == nil {
		return errors.New("no patient under consultation")
	}
	req := api.CreatePrescriptionRequest{
		SlipID:       d.patient.SlipID,
		MedicineList: d.draft.Medicines.Compact(),
		Notes:        d.draft.Notes,
	}
	if _, err := d.client.CreatePrescription(ctx, req); err != nil {
		return err
	}

	prescription, err := d.client.PrescriptionBySlip(ctx, d.patient.SlipNumber)
	if err != nil {
		return err
	}
	d.prescription = prescription
	d.draft = nil
	return d.switchTo(TabDoctorView)
}

// EditAgain reopens the authoring tab pre-filled from the stored
// prescription.
func (d *Doctor) EditAgain() error {
	if d.prescription == nil {
		return errors.New("no prescription loaded")
	}
	d.draft = &Draft{
		Medicines: append(models.MedicineList{}, d.prescription.MedicineList...),
		Notes:     d.prescription.Notes,
	}
	if len(d.draft.Medicines) == 0 {
		d.draft.Medicines = models.MedicineList{{}}
	}
	return d.switchTo(TabDoctorAuthor)
}

// ViewFromList opens a prescription picked off the directory, fetching its
// patient by slip.
func (d *Doctor) ViewFromList(ctx context.Context, prescription models.Prescription) error {
	patient, err := d.client.PatientBySlip(ctx, prescription.SlipNumber)
	if err != nil {
		return err
	}
	d.patient = patient
	d.prescription = &prescription
	return d.switchTo(TabDoctorView)
}

// Print writes the prescription PDF for the record on the view tab.
func (d *Doctor) Print() (string, error) {
	if d.prescription == nil || d.patient == nil {
		return "", errors.New("no prescription loaded")
	}
	return d.docs.Prescription(d.prescription, d.patient)
}

// OpenPatients loads and switches to the patient directory.
func (d *Doctor) OpenPatients(ctx context.Context) error {
	if err := d.Patients.Load(ctx); err != nil {
		return err
	}
	return d.switchTo(TabDoctorPatients)
}

// OpenPrescriptions loads and switches to the prescription directory.
func (d *Doctor) OpenPrescriptions(ctx context.Context) error {
	if err := d.Prescriptions.Load(ctx); err != nil {
		return err
	}
	return d.switchTo(TabDoctorPrescriptions)
}
