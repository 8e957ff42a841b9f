package models

import (
	"encoding/json"
	"strings"
)

// Medicine is one line item of a prescription. It has no identity beyond its
// position in the list.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// MedicineList decodes from either a JSON array or a doubly encoded JSON
// string; the remote API is known to emit both depending on the endpoint.
type MedicineList []Medicine

func (ml *MedicineList) UnmarshalJSON(data []byte) error {
	var meds []Medicine
	if err := json.Unmarshal(data, &meds); err == nil {
		*ml = meds
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*ml = nil
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &meds); err != nil {
		// Unparseable payload degrades to an empty list rather than
		// failing the whole prescription fetch.
		*ml = nil
		return nil
	}
	*ml = meds
	return nil
}

// Compact drops entries whose name is empty or whitespace, preserving the
// order of the rest. Partial rows with a name are kept as entered.
func (ml MedicineList) Compact() MedicineList {
	out := make(MedicineList, 0, len(ml))
	for _, m := range ml {
		if strings.TrimSpace(m.Name) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

type Prescription struct {
	ID             int            `json:"id"`
	SlipID         int            `json:"slip_id,omitempty"`
	SlipNumber     string         `json:"slip_number"`
	MedicineList   MedicineList   `json:"medicine_list"`
	Notes          string         `json:"notes"`
	DoctorName     string         `json:"doctor_name"`
	PharmacyStatus PharmacyStatus `json:"pharmacy_status"`
	CreatedAt      string         `json:"created_at,omitempty"`
	VisitDate      string         `json:"visit_date,omitempty"`

	// Denormalized patient fields present on the list endpoint.
	PatientName    string `json:"patient_name,omitempty"`
	PatientContact string `json:"patient_contact,omitempty"`
	PatientGender  Gender `json:"patient_gender,omitempty"`
	PatientDOB     string `json:"patient_dob,omitempty"`
}
