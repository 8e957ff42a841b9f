package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospos-dev/hospos/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	s := testStore(t)

	user := models.User{ID: 1, Name: "Reception Staff", Email: "reception@hospital.com", Role: models.RoleReception}
	require.NoError(t, s.Login(user, "tok-1"))

	got, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, user, *got)
	assert.Equal(t, "tok-1", s.Token())
}

func TestStoreNotLoggedIn(t *testing.T) {
	s := testStore(t)

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, s.Token())
}

func TestStoreLogout(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Login(models.User{ID: 2, Role: models.RoleDoctor}, "tok-2"))
	require.NoError(t, s.Logout())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// Logout of a cleared session is not an error.
	assert.NoError(t, s.Logout())
}

func TestStoreTokenReadFresh(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Login(models.User{ID: 3, Role: models.RolePharmacy}, "first"))
	assert.Equal(t, "first", s.Token())

	// A re-login from elsewhere is picked up without restarting.
	require.NoError(t, s.Login(models.User{ID: 3, Role: models.RolePharmacy}, "second"))
	assert.Equal(t, "second", s.Token())
}
