package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacyStatusNext(t *testing.T) {
	next, ok := StatusPending.Next()
	require.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	next, ok = StatusPreparing.Next()
	require.True(t, ok)
	assert.Equal(t, StatusReady, next)

	next, ok = StatusReady.Next()
	require.True(t, ok)
	assert.Equal(t, StatusDispensed, next)

	_, ok = StatusDispensed.Next()
	assert.False(t, ok, "dispensed is terminal")
}

func TestPharmacyStatusCanTransition(t *testing.T) {
	assert.True(t, StatusPending.CanTransition(StatusPreparing))
	assert.True(t, StatusPreparing.CanTransition(StatusReady))
	assert.True(t, StatusReady.CanTransition(StatusDispensed))

	// No skipping.
	assert.False(t, StatusPending.CanTransition(StatusReady))
	assert.False(t, StatusPending.CanTransition(StatusDispensed))

	// No regression.
	assert.False(t, StatusReady.CanTransition(StatusPreparing))
	assert.False(t, StatusDispensed.CanTransition(StatusPending))
	assert.False(t, StatusPreparing.CanTransition(StatusPreparing))
}

func TestParsePharmacyStatus(t *testing.T) {
	s, err := ParsePharmacyStatus("preparing")
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, s)

	_, err = ParsePharmacyStatus("shipped")
	assert.Error(t, err)
}

func TestPharmacyStatusActionLabel(t *testing.T) {
	assert.Equal(t, "Start Preparing", StatusPending.ActionLabel())
	assert.Equal(t, "Mark Ready", StatusPreparing.ActionLabel())
	assert.Equal(t, "Mark Dispensed", StatusReady.ActionLabel())
	assert.Empty(t, StatusDispensed.ActionLabel())
}
