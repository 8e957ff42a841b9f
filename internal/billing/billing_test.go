package billing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/models"
)

func fixedPrices(cost float64) PriceSource {
	return PriceFunc(func(models.Medicine) float64 { return cost })
}

func TestPriceBreakdown(t *testing.T) {
	p := &models.Prescription{
		MedicineList: models.MedicineList{
			{Name: "Paracetamol"},
			{Name: "Ibuprofen"},
		},
	}

	bill := Price(p, fixedPrices(100), 0)

	require.Len(t, bill.Medicines, 2)
	assert.Equal(t, float64(ConsultationFee), bill.ConsultationFee)
	assert.InDelta(t, 200, bill.MedicinesTotal(), 1e-9)
	// (500 + 200) * 0.05 = 35.
	assert.InDelta(t, 35, bill.Tax, 1e-9)
	assert.InDelta(t, 735, bill.Total, 1e-9)
}

func TestPriceDiscount(t *testing.T) {
	p := &models.Prescription{MedicineList: models.MedicineList{{Name: "Cetirizine"}}}

	bill := Price(p, fixedPrices(50), 100)
	// (500 + 50) * 1.05 - 100 = 477.50.
	assert.InDelta(t, 477.5, bill.Total, 1e-9)

	// Negative discounts are clamped, not credited.
	bill = Price(p, fixedPrices(50), -40)
	assert.Zero(t, bill.Discount)
	assert.InDelta(t, 577.5, bill.Total, 1e-9)

	// A discount larger than the bill floors the total at zero.
	bill = Price(p, fixedPrices(50), 10000)
	assert.Zero(t, bill.Total)
}

func TestPriceEmptyPrescription(t *testing.T) {
	bill := Price(&models.Prescription{}, fixedPrices(100), 0)
	assert.Empty(t, bill.Medicines)
	// 500 * 1.05.
	assert.InDelta(t, 525, bill.Total, 1e-9)
}

func TestRandomPricesRange(t *testing.T) {
	prices := RandomPrices(rand.New(rand.NewSource(1)))
	for i := 0; i < 1000; i++ {
		cost := prices.Cost(models.Medicine{})
		assert.GreaterOrEqual(t, cost, 50.0)
		assert.LessOrEqual(t, cost, 249.0)
		assert.Equal(t, cost, float64(int(cost)), "whole-rupee amounts only")
	}
}
