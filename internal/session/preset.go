package session

import (
	"strings"
	"time"

	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// presetIndexLocked returns the index of the preset with the given id, or
// -1. Callers must hold s.mu.
func (s *Store) presetIndexLocked(id string) int {
	for i := range s.presets {
		if s.presets[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshotPresetLocked captures the current appearance as a named preset
// and appends it to the preset list. Callers must hold s.mu and are
// responsible for persisting KeyPresets.
func (s *Store) snapshotPresetLocked(name string) recipe.UIPreset {
	preset := recipe.UIPreset{
		Appearance:  s.appearance,
		ID:          newULID(),
		Name:        name,
		BubbleColor: s.cfg.DefaultBubbleColor,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.presets = append(s.presets, preset)
	return preset
}

// SavePreset snapshots the current appearance under the given name. When
// rememberAsDefault is set the snapshot is also stored as the appearance
// to restore on the next load.
func (s *Store) SavePreset(name string, rememberAsDefault bool) (*recipe.UIPreset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("preset name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	preset := s.snapshotPresetLocked(name)
	s.persist(db.KeyPresets, s.presets)
	if rememberAsDefault {
		s.persist(db.KeyActiveUI, s.appearance)
	}

	out := preset
	return &out, nil
}

// RemovePreset deletes a preset and clears the linked-preset reference on
// every saved recipe that pointed at it. Removing an absent id is a no-op.
func (s *Store) RemovePreset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.presets[:0]
	for _, p := range s.presets {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.presets = kept

	for i := range s.vault {
		if s.vault[i].LinkedPresetID != nil && *s.vault[i].LinkedPresetID == id {
			s.vault[i].LinkedPresetID = nil
		}
	}

	s.persist(db.KeyPresets, s.presets)
	s.persist(db.KeyVault, s.vault)
}

// UpdatePresetColor sets the bubble color on the matching preset. No-op if
// the id is absent.
func (s *Store) UpdatePresetColor(id, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.presets {
		if s.presets[i].ID == id {
			s.presets[i].BubbleColor = color
			break
		}
	}
	s.persist(db.KeyPresets, s.presets)
}

// ApplyPreset sets the live appearance from a stored preset.
func (s *Store) ApplyPreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.presetIndexLocked(id)
	if i < 0 {
		return errors.NewNotFound(id)
	}
	s.appearance = s.presets[i].Appearance
	return nil
}
