// Package session is the explicit replacement for the browser front end's
// ambient token storage: one store object is injected into everything that
// talks to the API.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/hospos-dev/hospos/internal/models"
)

var ErrNotLoggedIn = errors.New("not logged in")

type state struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Store persists the logged-in user and bearer token in a JSON file. The
// token is re-read from disk on every Token call rather than cached, so each
// outgoing request sees the current session.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Login persists the user and token, unlocking role-gated commands.
func (s *Store) Login(user models.User, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(state{User: user, Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Logout clears the persisted session. Requests already issued keep the
// token they were sent with.
func (s *Store) Logout() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Current returns the logged-in user, or ErrNotLoggedIn.
func (s *Store) Current() (*models.User, error) {
	st, err := s.read()
	if err != nil {
		return nil, err
	}
	return &st.User, nil
}

// Token implements api.TokenSource. Empty when no session exists.
func (s *Store) Token() string {
	st, err := s.read()
	if err != nil {
		return ""
	}
	return st.Token
}

func (s *Store) read() (*state, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, ErrNotLoggedIn
	}
	if st.Token == "" {
		return nil, ErrNotLoggedIn
	}
	return &st, nil
}
