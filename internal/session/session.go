// Package session owns the durable application state: user identity, the
// recipe vault, folders, appearance presets, and the generation history.
// All mutation goes through the Store; persistence to the key-value layer
// is an immediate, best-effort side effect after each mutation. Persistence
// failures are logged and swallowed; the in-memory state stays
// authoritative for the session.
//
// There is no cross-process concurrency control: two processes sharing the
// same database race with last-write-wins semantics.
package session

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coldestconcept/beatgenius/internal/config"
	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
	"github.com/coldestconcept/beatgenius/internal/rig"
)

// Store holds the session state and its mutation surface.
type Store struct {
	mu       sync.Mutex
	database *sql.DB
	cfg      *config.Config

	user       *recipe.User
	plugins    []plugin.Record
	vault      []recipe.SavedRecipe
	folders    []recipe.Folder
	presets    []recipe.UIPreset
	history    []recipe.HistoryItem
	appearance recipe.Appearance

	// incoming is a rig bundle loaded for side-by-side comparison.
	// Never merged into the vault and never persisted.
	incoming *rig.Bundle
}

// DefaultAppearance returns the appearance used before any preset or
// remembered default is applied.
func DefaultAppearance() recipe.Appearance {
	return recipe.Appearance{
		Theme:        "coldest",
		GrillStyle:   "iced-out",
		KnifeStyle:   "standard",
		DuragStyle:   "standard",
		PendantStyle: "standard",
		ChainStyle:   "standard",
		SaberColor:   "#38bdf8",
		ShowChain:    true,
	}
}

// Load hydrates a Store from the persisted keys. Missing keys start their
// collections empty; a corrupted value is logged and treated as missing
// rather than failing the whole session.
func Load(database *sql.DB, cfg *config.Config) (*Store, error) {
	s := &Store{
		database:   database,
		cfg:        cfg,
		appearance: DefaultAppearance(),
	}

	loadKey(database, db.KeyUser, &s.user)
	loadKey(database, db.KeyPlugins, &s.plugins)
	loadKey(database, db.KeyVault, &s.vault)
	loadKey(database, db.KeyFolders, &s.folders)
	loadKey(database, db.KeyPresets, &s.presets)
	loadKey(database, db.KeyHistory, &s.history)
	loadKey(database, db.KeyActiveUI, &s.appearance)

	// Enforce the cap even if a previous session persisted with a larger
	// configured limit.
	if limit := cfg.HistoryLimit; limit > 0 && len(s.history) > limit {
		s.history = s.history[:limit]
	}

	return s, nil
}

// loadKey reads and unmarshals one storage key into dst.
func loadKey(database *sql.DB, key string, dst any) {
	value, ok, err := db.Get(database, key)
	if err != nil {
		log.Printf("warning: failed to read %s: %v", key, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		log.Printf("warning: discarding corrupted value for %s: %v", key, err)
	}
}

// persist serializes v under key. Best-effort: errors are logged, never
// returned, because the in-memory state remains authoritative.
func (s *Store) persist(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("warning: failed to serialize %s: %v", key, err)
		return
	}
	if err := db.Put(s.database, key, string(data)); err != nil {
		log.Printf("warning: failed to persist %s: %v", key, err)
	}
}

// removeKey deletes a persisted key, best-effort.
func (s *Store) removeKey(key string) {
	if err := db.Delete(s.database, key); err != nil {
		log.Printf("warning: failed to remove %s: %v", key, err)
	}
}

// newULID generates a new ULID.
func newULID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Accessors. Slices are copied so callers cannot mutate store state.

// User returns the signed-in user, or nil when anonymous.
func (s *Store) User() *recipe.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Plugins returns the current rack.
func (s *Store) Plugins() []plugin.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]plugin.Record(nil), s.plugins...)
}

// Vault returns the saved recipes.
func (s *Store) Vault() []recipe.SavedRecipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.SavedRecipe(nil), s.vault...)
}

// Folders returns the folder list.
func (s *Store) Folders() []recipe.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.Folder(nil), s.folders...)
}

// Presets returns the appearance presets.
func (s *Store) Presets() []recipe.UIPreset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.UIPreset(nil), s.presets...)
}

// History returns the generation log, newest first.
func (s *Store) History() []recipe.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recipe.HistoryItem(nil), s.history...)
}

// Appearance returns the live cosmetic state.
func (s *Store) Appearance() recipe.Appearance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appearance
}

// SetAppearance replaces the live cosmetic state. Only persisted when a
// preset is saved with rememberAsDefault.
func (s *Store) SetAppearance(a recipe.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appearance = a
}

// SetPlugins replaces the rack wholesale with a freshly parsed list and
// persists it. There is no incremental merge.
func (s *Store) SetPlugins(records []plugin.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plugins = append([]plugin.Record(nil), records...)
	s.persist(db.KeyPlugins, s.plugins)
}

// ClearAll irreversibly wipes every in-memory collection and every
// persisted key. Confirmation is the caller's concern.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.plugins = nil
	s.vault = nil
	s.folders = nil
	s.presets = nil
	s.history = nil
	s.appearance = DefaultAppearance()
	s.incoming = nil

	if err := db.Clear(s.database); err != nil {
		log.Printf("warning: failed to clear persisted data: %v", err)
	}
}
