package models

import "fmt"

// PharmacyStatus is the forward-only dispensing lifecycle of a prescription.
// Pharmacy staff advance it one step at a time; there is no regression.
type PharmacyStatus string

const (
	StatusPending   PharmacyStatus = "pending"
	StatusPreparing PharmacyStatus = "preparing"
	StatusReady     PharmacyStatus = "ready"
	StatusDispensed PharmacyStatus = "dispensed"
)

func ParsePharmacyStatus(s string) (PharmacyStatus, error) {
	switch PharmacyStatus(s) {
	case StatusPending, StatusPreparing, StatusReady, StatusDispensed:
		return PharmacyStatus(s), nil
	}
	return "", fmt.Errorf("unknown pharmacy status: %q", s)
}

// Next returns the single allowed forward transition. ok is false at
// dispensed, which is terminal.
func (s PharmacyStatus) Next() (next PharmacyStatus, ok bool) {
	switch s {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDispensed, true
	}
	return "", false
}

// CanTransition reports whether moving from s to target is the one legal
// forward step.
func (s PharmacyStatus) CanTransition(target PharmacyStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Label is the human-readable form shown on status badges and dialogs.
func (s PharmacyStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusPreparing:
		return "Preparing"
	case StatusReady:
		return "Ready for Pickup"
	case StatusDispensed:
		return "Dispensed"
	}
	return string(s)
}

// ActionLabel names the forward button the pharmacy list renders for a
// prescription in this status; empty when no action remains.
func (s PharmacyStatus) ActionLabel() string {
	switch s {
	case StatusPending:
		return "Start Preparing"
	case StatusPreparing:
		return "Mark Ready"
	case StatusReady:
		return "Mark Dispensed"
	}
	return ""
}
