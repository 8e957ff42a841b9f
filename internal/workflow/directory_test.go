package workflow

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/models"
)

func patientDirectoryBackend(t *testing.T) (*fakeBackend, *int) {
	t.Helper()
	deletes := 0
	b := newBackend(t)
	b.handle("GET /api/patients", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Patient{
			{ID: 1, Name: "Asha Verma", Contact: "9876543210"},
			{ID: 2, Name: "Ravi Kumar", Contact: "9000000000"},
			{ID: 3, Name: "Meena Joshi", Contact: "9111111111"},
		})
	})
	b.handle("DELETE /api/patients/2", func(w http.ResponseWriter, r *http.Request) {
		deletes++
		writeJSON(w, map[string]string{"message": "Patient deleted"})
	})
	b.handle("DELETE /api/patients/3", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "Failed to delete patient")
	})
	return b, &deletes
}

func TestPatientDirectoryFilter(t *testing.T) {
	b, _ := patientDirectoryBackend(t)
	d := NewPatientDirectory(b.client())
	require.NoError(t, d.Load(context.Background()))

	assert.Len(t, d.Filter(""), 3)
	assert.Len(t, d.Filter("  "), 3)

	byName := d.Filter("RAVI")
	require.Len(t, byName, 1)
	assert.Equal(t, 2, byName[0].ID)

	byContact := d.Filter("911")
	require.Len(t, byContact, 1)
	assert.Equal(t, "Meena Joshi", byContact[0].Name)

	byID := d.Filter("3")
	require.Len(t, byID, 1)

	assert.Empty(t, d.Filter("nobody"))
}

func TestPatientDirectoryDeleteEditsLocalCopy(t *testing.T) {
	b, deletes := patientDirectoryBackend(t)
	d := NewPatientDirectory(b.client())
	require.NoError(t, d.Load(context.Background()))

	require.NoError(t, d.Delete(context.Background(), 2))
	assert.Equal(t, 1, *deletes)

	// The row is removed locally without a refetch.
	require.Len(t, d.All(), 2)
	for _, p := range d.All() {
		assert.NotEqual(t, 2, p.ID)
	}
}

func TestPatientDirectoryDeleteFailureKeepsList(t *testing.T) {
	b, _ := patientDirectoryBackend(t)
	d := NewPatientDirectory(b.client())
	require.NoError(t, d.Load(context.Background()))

	err := d.Delete(context.Background(), 3)
	require.EqualError(t, err, "Failed to delete patient")
	assert.Len(t, d.All(), 3)
}

func TestPrescriptionDirectoryFilter(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Prescription{
			{ID: 1, SlipNumber: "SL100000001", PatientName: "Asha Verma", DoctorName: "Mehta"},
			{ID: 2, SlipNumber: "SL100000002", PatientName: "Ravi Kumar", DoctorName: "Rao"},
		})
	})

	d := NewPrescriptionDirectory(b.client())
	require.NoError(t, d.Load(context.Background()))

	assert.Len(t, d.Filter(""), 2)

	bySlip := d.Filter("sl100000002")
	require.Len(t, bySlip, 1)
	assert.Equal(t, 2, bySlip[0].ID)

	byDoctor := d.Filter("mehta")
	require.Len(t, byDoctor, 1)
	assert.Equal(t, 1, byDoctor[0].ID)

	byPatient := d.Filter("ravi")
	require.Len(t, byPatient, 1)
	assert.Equal(t, 2, byPatient[0].ID)
}

func TestPrescriptionDirectoryDelete(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Prescription{
			{ID: 1, SlipNumber: "SL100000001"},
			{ID: 2, SlipNumber: "SL100000002"},
		})
	})
	b.handle("DELETE /api/prescriptions/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"message": "Prescription deleted"})
	})

	d := NewPrescriptionDirectory(b.client())
	require.NoError(t, d.Load(context.Background()))

	require.NoError(t, d.Delete(context.Background(), 1))
	require.Len(t, d.All(), 1)
	assert.Equal(t, 2, d.All()[0].ID)
}
