package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is the client-side copy of a patient record. The remote API is
// authoritative; nothing here is written back except through the endpoints.
type Patient struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Gender      Gender `json:"gender"`
	DOB         string `json:"dob"` // YYYY-MM-DD
	SlipID      int    `json:"slip_id,omitempty"`
	SlipNumber  string `json:"slip_number,omitempty"`
	TotalVisits int    `json:"total_visits,omitempty"`
	LastVisit   string `json:"last_visit,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Age derives whole years from DOB at the given instant, correcting for a
// birthday that has not yet occurred this year. Returns 0 when DOB is
// unparseable.
func (p Patient) Age(now time.Time) int {
	birth, err := time.Parse("2006-01-02", p.DOB)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Slip is the ephemeral registration receipt returned by patient creation.
// It exists only in the session that issued it.
type Slip struct {
	SlipNumber string `json:"slipNumber"`
	PatientID  int    `json:"patientId"`
	SlipID     int    `json:"slipId,omitempty"`
}
