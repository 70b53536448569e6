package session

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// SignIn constructs and stores the user record. Email and avatar URL are
// derived deterministically from the name.
func (s *Store) SignIn(name string) (*recipe.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &recipe.User{
		Name:  name,
		Email: fmt.Sprintf("%s@coldestconcept.com", strings.ToLower(name)),
		Photo: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(name)),
	}
	s.persist(db.KeyUser, s.user)

	u := *s.user
	return &u, nil
}

// SignOut clears the user record and removes its persisted key. The
// vault, folders, presets, and history are untouched.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.removeKey(db.KeyUser)
}
