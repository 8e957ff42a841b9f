package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/billing"
	"github.com/hospos-dev/hospos/internal/document"
	"github.com/hospos-dev/hospos/internal/models"
)

type BillingTab int

const (
	TabBillingCheck BillingTab = iota
	TabBillingBill
)

func (t BillingTab) String() string {
	switch t {
	case TabBillingCheck:
		return "check"
	case TabBillingBill:
		return "bill"
	}
	return "unknown"
}

// ErrNoPrescriptionForSlip is the exact message billing shows when a found
// patient has no prescription yet.
var ErrNoPrescriptionForSlip = errors.New(
	"No prescription found for this slip number. Please ensure the doctor has submitted the prescription.")

// ErrPaymentInFlight guards the payment POST against double submission.
var ErrPaymentInFlight = errors.New("a payment is already being processed")

// ErrReceiptFailed means the payment went through but the receipt PDF could
// not be written; confirming again regenerates the receipt without posting a
// second payment.
var ErrReceiptFailed = errors.New("payment recorded, but the receipt could not be generated")

// Billing is the two-tab billing counter: verify a slip's prescription, then
// price it and confirm payment.
type Billing struct {
	client *api.Client
	docs   *document.Generator
	prices billing.PriceSource
	log    zerolog.Logger

	tab          BillingTab
	patient      *models.Patient
	prescription *models.Prescription
	bill         *models.Bill
	paid         bool

	paying atomic.Bool
}

func NewBilling(client *api.Client, docs *document.Generator, prices billing.PriceSource, log zerolog.Logger) *Billing {
	return &Billing{
		client: client,
		docs:   docs,
		prices: prices,
		log:    log.With().Str("workflow", "billing").Logger(),
		tab:    TabBillingCheck,
	}
}

func (b *Billing) Tab() BillingTab { return b.tab }

func (b *Billing) Patient() *models.Patient { return b.patient }

func (b *Billing) Prescription() *models.Prescription { return b.prescription }

func (b *Billing) Bill() *models.Bill { return b.bill }

// Check verifies a slip: the patient must exist (its lookup error surfaces
// verbatim), and a missing prescription is ErrNoPrescriptionForSlip. Success
// prices the prescription and moves to the bill tab.
func (b *Billing) Check(ctx context.Context, slipNumber string) error {
	patient, err := b.client.PatientBySlip(ctx, slipNumber)
	if err != nil {
		return err
	}

	prescription, err := b.client.PrescriptionBySlip(ctx, slipNumber)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && !apiErr.IsConnect() {
			return ErrNoPrescriptionForSlip
		}
		return err
	}

	bill := billing.Price(prescription, b.prices, 0)
	b.patient = patient
	b.prescription = prescription
	b.bill = &bill
	b.tab = TabBillingBill
	return nil
}

// ConfirmPayment posts the computed total, prints the receipt, and resets for
// the next patient. A second call while one is pending is refused outright.
// If the receipt fails after the payment succeeded, the bill stays on screen
// and confirming again only retries the receipt.
func (b *Billing) ConfirmPayment(ctx context.Context) (string, error) {
	if b.prescription == nil || b.bill == nil {
		return "", errors.New("no bill to confirm")
	}
	if !b.paying.CompareAndSwap(false, true) {
		return "", ErrPaymentInFlight
	}
	defer b.paying.Store(false)

	if !b.paid {
		req := api.RecordPaymentRequest{
			SlipID:      b.patient.SlipID,
			TotalAmount: b.bill.Total,
		}
		if err := b.client.RecordPayment(ctx, req); err != nil {
			return "", err
		}
		b.paid = true
	}

	path, err := b.docs.Receipt(b.patient, b.prescription, b.bill)
	if err != nil {
		b.log.Warn().Err(err).Msg("receipt generation failed after payment")
		return "", fmt.Errorf("%w: %v", ErrReceiptFailed, err)
	}

	b.Reset()
	return path, nil
}

// Reset returns to the check tab for the next patient.
func (b *Billing) Reset() {
	b.patient = nil
	b.prescription = nil
	b.bill = nil
	b.paid = false
	b.tab = TabBillingCheck
}
