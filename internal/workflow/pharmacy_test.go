package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/models"
)

// pharmacyBackend scripts the list and status endpoints over a mutable slice.
func pharmacyBackend(t *testing.T, prescriptions []models.Prescription) *fakeBackend {
	t.Helper()
	b := newBackend(t)
	b.handle("GET /api/prescriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, prescriptions)
	})
	b.handle("PUT /api/pharmacy/prescriptions/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status models.PharmacyStatus `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for i := range prescriptions {
			if fmt.Sprint(prescriptions[i].ID) == r.PathValue("id") {
				if !prescriptions[i].PharmacyStatus.CanTransition(body.Status) {
					writeError(w, http.StatusBadRequest, "Invalid status transition")
					return
				}
				prescriptions[i].PharmacyStatus = body.Status
				writeJSON(w, prescriptions[i])
				return
			}
		}
		writeError(w, http.StatusNotFound, "Prescription not found")
	})
	return b
}

func TestPharmacyAdvanceWalksLifecycle(t *testing.T) {
	b := pharmacyBackend(t, []models.Prescription{
		{ID: 1, SlipNumber: "SL100000020", PharmacyStatus: models.StatusPending},
	})
	p := NewPharmacy(b.client(), testDocs(t), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))

	for _, want := range []models.PharmacyStatus{
		models.StatusPreparing, models.StatusReady, models.StatusDispensed,
	} {
		next, err := p.Advance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, want, next)
		// The list is refetched, not patched locally.
		require.Len(t, p.Prescriptions(), 1)
		assert.Equal(t, want, p.Prescriptions()[0].PharmacyStatus)
	}

	_, err := p.Advance(ctx, 1)
	require.EqualError(t, err, "medicine already dispensed")
}

func TestPharmacyAdvanceDefaultsEmptyStatusToPending(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []models.Prescription{{ID: 2, SlipNumber: "SL100000021"}})
	})
	b.handle("PUT /api/pharmacy/prescriptions/2/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status models.PharmacyStatus `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, models.StatusPreparing, body.Status)
		writeJSON(w, map[string]string{})
	})

	p := NewPharmacy(b.client(), testDocs(t), zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))

	next, err := p.Advance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, next)
}

func TestPharmacyAdvanceUnknownID(t *testing.T) {
	b := pharmacyBackend(t, nil)
	p := NewPharmacy(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, p.Refresh(context.Background()))

	_, err := p.Advance(context.Background(), 99)
	assert.Error(t, err)
}

func TestPharmacySearchOpensView(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions/slip/SL100000022", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Prescription{ID: 3, SlipNumber: "SL100000022", PharmacyStatus: models.StatusReady})
	})
	b.handle("GET /api/patients/slip/SL100000022", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.Patient{ID: 4, Name: "Meena Joshi", SlipNumber: "SL100000022"})
	})

	p := NewPharmacy(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, p.OpenSearch())
	require.NoError(t, p.Search(context.Background(), "SL100000022"))

	assert.Equal(t, TabPharmacyView, p.Tab())
	prescription, patient := p.Current()
	require.NotNil(t, prescription)
	require.NotNil(t, patient)
	assert.Equal(t, models.StatusReady, prescription.PharmacyStatus)
	assert.Equal(t, "Meena Joshi", patient.Name)

	path, err := p.Print()
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	require.NoError(t, p.CloseView())
	assert.Equal(t, TabPharmacyList, p.Tab())
	prescription, patient = p.Current()
	assert.Nil(t, prescription)
	assert.Nil(t, patient)
}

func TestPharmacySearchMissingPrescription(t *testing.T) {
	b := newBackend(t)
	b.handle("GET /api/prescriptions/slip/SL100000023", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "No prescription found for this slip")
	})

	p := NewPharmacy(b.client(), testDocs(t), zerolog.Nop())
	require.NoError(t, p.OpenSearch())
	err := p.Search(context.Background(), "SL100000023")
	require.EqualError(t, err, "No prescription found for this slip")
	assert.Equal(t, TabPharmacySearch, p.Tab())
}
