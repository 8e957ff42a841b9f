package models

import "math"

// PricedMedicine is a medicine entry with its placeholder cost attached at
// billing time. There is no authoritative price source in this layer.
type PricedMedicine struct {
	Medicine
	Cost float64 `json:"cost"`
}

// Bill is derived client-side at render time and never persisted here; only
// the confirmed total is posted to the payments endpoint.
type Bill struct {
	ConsultationFee float64          `json:"consultation_fee"`
	Medicines       []PricedMedicine `json:"medicines"`
	Tax             float64          `json:"tax"`
	Discount        float64          `json:"discount"`
	Total           float64          `json:"total"`
}

// MedicinesTotal sums the placeholder medicine costs.
func (b Bill) MedicinesTotal() float64 {
	var sum float64
	for _, m := range b.Medicines {
		sum += m.Cost
	}
	return sum
}

// Round2 rounds to two decimals for display and for the payment payload.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
