package workflow

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/models"
)

func TestReceptionRegisterMovesToSlipTab(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /api/patients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Slip{SlipNumber: "SL100000001", PatientID: 1, SlipID: 1})
	})
	b.handle("GET /api/patients/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Patient{ID: 1, Name: "Asha Verma", Contact: "9876543210", DOB: "1992-04-18"})
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	require.Equal(t, TabRegistration, r.Tab())

	err := r.Register(context.Background(), api.RegisterPatientRequest{
		Name: "Asha Verma", Contact: "9876543210", Gender: models.GenderFemale, DOB: "1992-04-18",
	})
	require.NoError(t, err)
	assert.Equal(t, TabSlip, r.Tab())
	assert.Equal(t, "SL100000001", r.Slip().SlipNumber)
	require.NotNil(t, r.Patient())
	assert.Equal(t, "Asha Verma", r.Patient().Name)
}

func TestReceptionRegisterSurvivesDetailFetchFailure(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /api/patients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Slip{SlipNumber: "SL100000002", PatientID: 2})
	})
	b.handle("GET /api/patients/2", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "boom")
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, r.Register(context.Background(), api.RegisterPatientRequest{Name: "X"}))

	// The slip tab opens anyway; the detail block is simply absent.
	assert.Equal(t, TabSlip, r.Tab())
	assert.Nil(t, r.Patient())

	path, err := r.PrintSlip()
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestReceptionRegisterFailureStaysOnForm(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /api/patients", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "All fields are required")
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	err := r.Register(context.Background(), api.RegisterPatientRequest{})
	require.EqualError(t, err, "All fields are required")
	assert.Equal(t, TabRegistration, r.Tab())
	assert.Nil(t, r.Slip())
}

func TestReceptionNewRegistrationResets(t *testing.T) {
	b := newBackend(t)
	b.handle("POST /api/patients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Slip{SlipNumber: "SL100000003", PatientID: 3})
	})
	b.handle("GET /api/patients/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Patient{ID: 3, Name: "Y"})
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, r.Register(context.Background(), api.RegisterPatientRequest{Name: "Y"}))

	r.NewRegistration()
	assert.Equal(t, TabRegistration, r.Tab())
	assert.Nil(t, r.Slip())
	assert.Nil(t, r.Patient())

	_, err := r.PrintSlip()
	assert.Error(t, err)
}

func TestReceptionViewPrescriptionMissing(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions/slip/SL100000004", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "No prescription found for this slip")
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	err := r.ViewPrescription(context.Background(), "SL100000004")
	assert.ErrorIs(t, err, ErrNoPrescriptionYet)
	assert.Equal(t, TabRegistration, r.Tab())
}

func TestReceptionViewPrescriptionConnectFailurePassesThrough(t *testing.T) {
	r := NewReception(deadBackend(t), testDocs(t), zerolog.Nop())
	err := r.ViewPrescription(context.Background(), "SL100000004")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPrescriptionYet)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConnect())
}

func TestReceptionViewPrescriptionFound(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions/slip/SL100000005", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Prescription{ID: 7, SlipNumber: "SL100000005", DoctorName: "Mehta"})
	})
	b.handle("GET /api/patients/slip/SL100000005", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Patient{ID: 5, Name: "Z", SlipNumber: "SL100000005"})
	})

	r := NewReception(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, r.ViewPrescription(context.Background(), "sl100000005"))
	assert.Equal(t, TabReceptionView, r.Tab())
	assert.Equal(t, 7, r.Prescription().ID)

	path, err := r.PrintPrescription()
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
