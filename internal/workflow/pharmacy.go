package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/models"
)

type PharmacyTab int

const (
	TabPharmacyList PharmacyTab = iota
	TabPharmacySearch
	TabPharmacyView
)

func (t PharmacyTab) String() string {
	switch t {
	case TabPharmacyList:
		return "prescriptions"
	case TabPharmacySearch:
		return "search"
	case TabPharmacyView:
		return "view"
	}
	return "unknown"
}

var pharmacyFlow = map[PharmacyTab][]PharmacyTab{
	TabPharmacyList:   {TabPharmacySearch, TabPharmacyView},
	TabPharmacySearch: {TabPharmacyList, TabPharmacyView},
	TabPharmacyView:   {TabPharmacyList, TabPharmacySearch},
}

// Pharmacy drives the dispensing counter: the full prescription list with one
// forward action per status, slip search, and the detailed view.
type Pharmacy struct {
	client *api.Client
	docs   *document.Generator
	log    zerolog.Logger

	tab           PharmacyTab
	prescriptions []models.Prescription

	current        *models.Prescription
	currentPatient *models.Patient
}

func NewPharmacy(client *api.Client, docs *document.Generator, log zerolog.Logger) *Pharmacy {
	return &Pharmacy{
		client: client,
		docs:   docs,
		log:    log.With().Str("workflow", "pharmacy").Logger(),
		tab:    TabPharmacyList,
	}
}

func (p *Pharmacy) Tab() PharmacyTab { return p.tab }

func (p *Pharmacy) Prescriptions() []models.Prescription { return p.prescriptions }

func (p *Pharmacy) Current() (*models.Prescription, *models.Patient) {
	return p.current, p.currentPatient
}

func (p *Pharmacy) switchTo(target PharmacyTab) error {
	for _, allowed := range pharmacyFlow[p.tab] {
		if allowed == target {
			p.tab = target
			return nil
		}
	}
	return errors.New("invalid tab transition: " + p.tab.String() + " -> " + target.String())
}

func (p *Pharmacy) OpenSearch() error { return p.switchTo(TabPharmacySearch) }

func (p *Pharmacy) OpenList(ctx context.Context) error {
	if err := p.Refresh(ctx); err != nil {
		return err
	}
	if p.tab != TabPharmacyList {
		return p.switchTo(TabPharmacyList)
	}
	return nil
}

// Refresh refetches the whole list. Every successful status update calls this
// rather than patching locally; acceptable at single-counter throughput.
func (p *Pharmacy) Refresh(ctx context.Context) error {
	prescriptions, err := p.client.ListPrescriptions(ctx)
	if err != nil {
		return err
	}
	p.prescriptions = prescriptions
	return nil
}

// Advance moves a listed prescription one step forward. The target status is
// derived from the current one; nothing here can regress. On success the
// list is refetched and the new status returned for the confirmation dialog.
func (p *Pharmacy) Advance(ctx context.Context, id int) (models.PharmacyStatus, error) {
	var found *models.Prescription
	for i := range p.prescriptions {
		if p.prescriptions[i].ID == id {
			found = &p.prescriptions[i]
			break
		}
	}
	if found == nil {
		return "", fmt.Errorf("prescription %d is not in the list", id)
	}

	status := found.PharmacyStatus
	if status == "" {
		status = models.StatusPending
	}
	next, ok := status.Next()
	if !ok {
		return "", errors.New("medicine already dispensed")
	}

	if err := p.client.UpdatePharmacyStatus(ctx, id, next); err != nil {
		return "", err
	}
	if err := p.Refresh(ctx); err != nil {
		return next, err
	}
	return next, nil
}

// Search opens the view tab for a slip, combining the prescription with its
// patient record.
func (p *Pharmacy) Search(ctx context.Context, slipNumber string) error {
	prescription, err := p.client.PrescriptionBySlip(ctx, slipNumber)
	if err != nil {
		return err
	}
	patient, err := p.client.PatientBySlip(ctx, slipNumber)
	if err != nil {
		return err
	}
	p.current = prescription
	p.currentPatient = patient
	return p.switchTo(TabPharmacyView)
}

// View opens a prescription picked off the list.
func (p *Pharmacy) View(ctx context.Context, prescription models.Prescription) error {
	patient, err := p.client.PatientBySlip(ctx, prescription.SlipNumber)
	if err != nil {
		return err
	}
	p.current = &prescription
	p.currentPatient = patient
	return p.switchTo(TabPharmacyView)
}

// CloseView clears the open prescription and returns to the list.
func (p *Pharmacy) CloseView() error {
	p.current = nil
	p.currentPatient = nil
	return p.switchTo(TabPharmacyList)
}

// Print writes the prescription PDF from the view tab.
func (p *Pharmacy) Print() (string, error) {
	if p.current == nil || p.currentPatient == nil {
		return "", errors.New("no prescription loaded")
	}
	return p.docs.Prescription(p.current, p.currentPatient)
}
