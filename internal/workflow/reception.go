// Package workflow holds one tab-state machine per counter role. Tabs are
// typed enums with explicit transition tables; user actions and successful
// API responses are the only things that move them.
package workflow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/models"
)

type ReceptionTab int

const (
	TabRegistration ReceptionTab = iota
	TabSlip
	TabReceptionView
	TabReceptionPatients
)

func (t ReceptionTab) String() string {
	switch t {
	case TabRegistration:
		return "registration"
	case TabSlip:
		return "slip"
	case TabReceptionView:
		return "view-prescription"
	case TabReceptionPatients:
		return "patients"
	}
	return "unknown"
}

// receptionFlow lists the reachable tabs from each tab.
var receptionFlow = map[ReceptionTab][]ReceptionTab{
	TabRegistration:      {TabSlip, TabReceptionView, TabReceptionPatients},
	TabSlip:              {TabRegistration, TabReceptionView, TabReceptionPatients},
	TabReceptionView:     {TabRegistration, TabReceptionPatients},
	TabReceptionPatients: {TabRegistration, TabReceptionView},
}

// ErrNoPrescriptionYet is what reception sees when searching a slip whose
// prescription has not been written.
var ErrNoPrescriptionYet = errors.New("No prescription found for this slip number.")

type Reception struct {
	client *api.Client
	docs   *document.Generator
	log    zerolog.Logger

	tab          ReceptionTab
	slip         *models.Slip
	patient      *models.Patient
	prescription *models.Prescription

	Patients *PatientDirectory
}

func NewReception(client *api.Client, docs *document.Generator, log zerolog.Logger) *Reception {
	return &Reception{
		client:   client,
		docs:     docs,
		log:      log.With().Str("workflow", "reception").Logger(),
		tab:      TabRegistration,
		Patients: NewPatientDirectory(client),
	}
}

func (r *Reception) Tab() ReceptionTab { return r.tab }

func (r *Reception) Slip() *models.Slip { return r.slip }

func (r *Reception) Patient() *models.Patient { return r.patient }

func (r *Reception) Prescription() *models.Prescription { return r.prescription }

func (r *Reception) switchTo(target ReceptionTab) error {
	for _, allowed := range receptionFlow[r.tab] {
		if allowed == target {
			r.tab = target
			return nil
		}
	}
	return errors.New("invalid tab transition: " + r.tab.String() + " -> " + target.String())
}

// Register posts the registration form. Success stores the issued slip,
// fetches the full patient record for printing, and moves to the slip tab.
func (r *Reception) Register(ctx context.Context, req api.RegisterPatientRequest) error {
	slip, err := r.client.CreatePatient(ctx, req)
	if err != nil {
		return err
	}
	r.slip = slip

	patient, err := r.client.PatientByID(ctx, slip.PatientID)
	if err != nil {
		// The slip is still printable without the detail block.
		r.log.Warn().Err(err).Int("patient_id", slip.PatientID).Msg("patient detail fetch failed")
		r.patient = nil
	} else {
		r.patient = patient
	}
	return r.switchTo(TabSlip)
}

// PrintSlip writes the slip PDF for the registration just completed.
func (r *Reception) PrintSlip() (string, error) {
	if r.slip == nil {
		return "", errors.New("no slip to print")
	}
	return r.docs.Slip(r.slip, r.patient)
}

// NewRegistration resets to a blank form for the next patient.
func (r *Reception) NewRegistration() {
	r.slip = nil
	r.patient = nil
	r.prescription = nil
	r.tab = TabRegistration
}

// ViewPrescription looks up a slip's prescription for the reception counter.
// A missing prescription is ErrNoPrescriptionYet, not a server fault.
func (r *Reception) ViewPrescription(ctx context.Context, slipNumber string) error {
	prescription, err := r.client.PrescriptionBySlip(ctx, slipNumber)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && !apiErr.IsConnect() {
			return ErrNoPrescriptionYet
		}
		return err
	}
	patient, err := r.client.PatientBySlip(ctx, slipNumber)
	if err != nil {
		return err
	}
	r.prescription = prescription
	r.patient = patient
	return r.switchTo(TabReceptionView)
}

// PrintPrescription writes the prescription PDF from the view tab.
func (r *Reception) PrintPrescription() (string, error) {
	if r.prescription == nil || r.patient == nil {
		return "", errors.New("no prescription loaded")
	}
	return r.docs.Prescription(r.prescription, r.patient)
}

// OpenPatients loads and switches to the patient directory.
func (r *Reception) OpenPatients(ctx context.Context) error {
	if err := r.Patients.Load(ctx); err != nil {
		return err
	}
	return r.switchTo(TabReceptionPatients)
}
