// Package billing derives a bill from a prescription at render time. Nothing
// here is persisted; only the confirmed total reaches the payments endpoint.
package billing

import (
	"math/rand"

	"github.com/hospos-dev/hospos/internal/models"
)

// ConsultationFee is fixed for every visit.
const ConsultationFee = 500

// TaxRate applies to the subtotal (fee plus medicines).
const TaxRate = 0.05

// PriceSource supplies per-medicine costs. The real price book lives behind
// the API; this layer only has placeholders.
type PriceSource interface {
	Cost(m models.Medicine) float64
}

// PriceFunc adapts a function to PriceSource.
type PriceFunc func(m models.Medicine) float64

func (f PriceFunc) Cost(m models.Medicine) float64 { return f(m) }

// RandomPrices mirrors the placeholder costs of the original front end:
// a whole-rupee amount between 50 and 249 per medicine.
func RandomPrices(rng *rand.Rand) PriceSource {
	return PriceFunc(func(models.Medicine) float64 {
		return float64(rng.Intn(200) + 50)
	})
}

// Price builds the bill breakdown for a prescription: consultation fee plus
// priced medicines, taxed at TaxRate, minus a discount clamped at zero.
// The total is rounded to two decimals.
func Price(p *models.Prescription, prices PriceSource, discount float64) models.Bill {
	if discount < 0 {
		discount = 0
	}

	meds := make([]models.PricedMedicine, 0, len(p.MedicineList))
	var medsTotal float64
	for _, m := range p.MedicineList {
		cost := prices.Cost(m)
		meds = append(meds, models.PricedMedicine{Medicine: m, Cost: cost})
		medsTotal += cost
	}

	subtotal := ConsultationFee + medsTotal
	tax := subtotal * TaxRate
	total := subtotal + tax - discount
	if total < 0 {
		total = 0
	}

	return models.Bill{
		ConsultationFee: ConsultationFee,
		Medicines:       meds,
		Tax:             models.Round2(tax),
		Discount:        discount,
		Total:           models.Round2(total),
	}
}
