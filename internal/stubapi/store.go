package stubapi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospos-dev/hospos/internal/models"
)

var (
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrPatientNotFound     = errors.New("Patient not found")
	ErrSlipNotFound        = errors.New("Patient not found for this slip number")
	ErrPrescriptionMissing = errors.New("No prescription found for this slip")
	ErrUnknownSlip         = errors.New("Unknown slip id")
)

type account struct {
	user models.User
	hash []byte
}

type payment struct {
	ID          string    `json:"id"`
	SlipID      int       `json:"slip_id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the in-memory state behind the stub API. It exists so the
// terminal and the tests run without the real backend; nothing survives a
// restart, which is the point.
type Store struct {
	mu sync.Mutex

	accounts      []account
	patients      map[int]*models.Patient
	prescriptions map[int]*models.Prescription
	payments      []payment

	patientSeq      int
	slipSeq         int
	prescriptionSeq int
}

// NewStore seeds the three demo counter accounts, all with password
// "password".
func NewStore() *Store {
	s := &Store{
		patients:      make(map[int]*models.Patient),
		prescriptions: make(map[int]*models.Prescription),
	}
	demo := []models.User{
		{ID: 1, Name: "Reception", Email: "reception@hospital.com", Role: models.RoleReception},
		{ID: 2, Name: "Doctor", Email: "doctor@hospital.com", Role: models.RoleDoctor},
		{ID: 3, Name: "Pharmacy", Email: "pharmacy@hospital.com", Role: models.RolePharmacy},
	}
	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		s.accounts = append(s.accounts, account{user: u, hash: hash})
	}
	return s
}

func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Email == email {
			if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
				return nil, ErrInvalidCredentials
			}
			u := a.user
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// CreatePatient registers a patient and issues the visit slip.
func (s *Store) CreatePatient(name, contact string, gender models.Gender, dob string) *models.Slip {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.patientSeq++
	s.slipSeq++
	now := time.Now()

	p := &models.Patient{
		ID:          s.patientSeq,
		Name:        name,
		Contact:     contact,
		Gender:      gender,
		DOB:         dob,
		SlipID:      s.slipSeq,
		SlipNumber:  fmt.Sprintf("SL%09d", 100000000+s.slipSeq),
		TotalVisits: 1,
		LastVisit:   now.Format(time.RFC3339),
		CreatedAt:   now.Format(time.RFC3339),
	}
	s.patients[p.ID] = p

	return &models.Slip{SlipNumber: p.SlipNumber, PatientID: p.ID, SlipID: p.SlipID}
}

func (s *Store) ListPatients() []models.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Patient, 0, len(s.patients))
	for id := 1; id <= s.patientSeq; id++ {
		if p, ok := s.patients[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

func (s *Store) PatientByID(id int) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) PatientBySlip(slipNumber string) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patients {
		if p.SlipNumber == slipNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrSlipNotFound
}

// DeletePatient removes the patient and cascades to their prescriptions.
func (s *Store) DeletePatient(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return ErrPatientNotFound
	}
	for pid, pres := range s.prescriptions {
		if pres.SlipNumber == p.SlipNumber {
			delete(s.prescriptions, pid)
		}
	}
	delete(s.patients, id)
	return nil
}

// CreatePrescription stores a prescription against a slip; the doctor name
// comes from the authenticated token.
func (s *Store) CreatePrescription(slipID int, meds models.MedicineList, notes, doctorName string) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var patient *models.Patient
	for _, p := range s.patients {
		if p.SlipID == slipID {
			patient = p
			break
		}
	}
	if patient == nil {
		return nil, ErrUnknownSlip
	}

	s.prescriptionSeq++
	now := time.Now().Format(time.RFC3339)
	pres := &models.Prescription{
		ID:             s.prescriptionSeq,
		SlipID:         slipID,
		SlipNumber:     patient.SlipNumber,
		MedicineList:   meds,
		Notes:          notes,
		DoctorName:     doctorName,
		PharmacyStatus: models.StatusPending,
		CreatedAt:      now,
		VisitDate:      now,
		PatientName:    patient.Name,
		PatientContact: patient.Contact,
		PatientGender:  patient.Gender,
		PatientDOB:     patient.DOB,
	}
	s.prescriptions[pres.ID] = pres
	cp := *pres
	return &cp, nil
}

func (s *Store) ListPrescriptions() []models.Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Prescription, 0, len(s.prescriptions))
	for id := 1; id <= s.prescriptionSeq; id++ {
		if p, ok := s.prescriptions[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

func (s *Store) PrescriptionBySlip(slipNumber string) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.prescriptions {
		if p.SlipNumber == slipNumber {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPrescriptionMissing
}

func (s *Store) DeletePrescription(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prescriptions[id]; !ok {
		return ErrPrescriptionMissing
	}
	delete(s.prescriptions, id)
	return nil
}

// UpdateStatus applies the one legal forward transition; anything else is
// rejected.
func (s *Store) UpdateStatus(id int, target models.PharmacyStatus) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prescriptions[id]
	if !ok {
		return nil, ErrPrescriptionMissing
	}
	current := p.PharmacyStatus
	if current == "" {
		current = models.StatusPending
	}
	if !current.CanTransition(target) {
		return nil, fmt.Errorf("invalid status transition from %s to %s", current, target)
	}
	p.PharmacyStatus = target
	cp := *p
	return &cp, nil
}

// RecordPayment appends a payment for a known slip.
func (s *Store) RecordPayment(slipID int, amount float64) (*payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, p := range s.patients {
		if p.SlipID == slipID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownSlip
	}
	pay := payment{
		ID:          uuid.NewString(),
		SlipID:      slipID,
		TotalAmount: amount,
		CreatedAt:   time.Now(),
	}
	s.payments = append(s.payments, pay)
	return &pay, nil
}
