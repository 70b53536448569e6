package session

import (
	"time"

	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// SaveRecipe favorites a recipe into the vault. The save is idempotent on
// recipe title: if a saved recipe with the same title already exists, the
// existing record is returned and created is false.
//
// Unless disabled, the current appearance is captured as a preset and
// linked to the new record. Parameter enrichment happens afterwards via
// ApplyParameters and never blocks the save.
func (s *Store) SaveRecipe(r recipe.BeatRecipe) (*recipe.SavedRecipe, bool, error) {
	if r.Title == "" {
		return nil, false, errors.NewInvalidRequest("recipe title must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, false, errors.NewInvalidRequest("sign in first to save favorites")
	}

	for i := range s.vault {
		if s.vault[i].Title == r.Title {
			existing := s.vault[i]
			return &existing, false, nil
		}
	}

	saved := recipe.SavedRecipe{
		BeatRecipe:  r,
		ID:          newULID(),
		SavedAt:     time.Now().UTC().Format(time.RFC3339),
		BubbleColor: s.cfg.DefaultBubbleColor,
	}

	if !s.cfg.NoAutoPreset {
		preset := s.snapshotPresetLocked(r.Title + " Look")
		saved.LinkedPresetID = &preset.ID
		s.persist(db.KeyPresets, s.presets)
	}

	s.vault = append(s.vault, saved)
	s.persist(db.KeyVault, s.vault)

	out := saved
	return &out, true, nil
}

// RemoveRecipe filters the vault to exclude the given id. Removing an
// absent id is a no-op.
func (s *Store) RemoveRecipe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.vault[:0]
	for _, r := range s.vault {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.vault = kept
	s.persist(db.KeyVault, s.vault)
}

// UpdateRecipeColor sets the display color on the matching saved recipe.
// No-op if the id is absent.
func (s *Store) UpdateRecipeColor(id, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault {
		if s.vault[i].ID == id {
			s.vault[i].BubbleColor = color
			break
		}
	}
	s.persist(db.KeyVault, s.vault)
}

// UpdateRecipeFolder moves a saved recipe into a folder. An empty folderID
// unsets the membership; a non-empty folderID must reference an existing
// folder. No-op if the recipe id is absent.
func (s *Store) UpdateRecipeFolder(id, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ref *string
	if folderID != "" {
		if s.folderIndexLocked(folderID) < 0 {
			return errors.NewNotFound(folderID)
		}
		ref = &folderID
	}

	for i := range s.vault {
		if s.vault[i].ID == id {
			s.vault[i].FolderID = ref
			break
		}
	}
	s.persist(db.KeyVault, s.vault)
	return nil
}

// UpdateRecipeLinkedPreset ties a saved recipe to an appearance preset.
// An empty presetID unsets the link; a non-empty presetID must reference
// an existing preset. No-op if the recipe id is absent.
func (s *Store) UpdateRecipeLinkedPreset(id, presetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ref *string
	if presetID != "" {
		if s.presetIndexLocked(presetID) < 0 {
			return errors.NewNotFound(presetID)
		}
		ref = &presetID
	}

	for i := range s.vault {
		if s.vault[i].ID == id {
			s.vault[i].LinkedPresetID = ref
			break
		}
	}
	s.persist(db.KeyVault, s.vault)
	return nil
}

// ApplyParameters patches the enrichment payload onto the saved recipe
// with the given id. No-op if the id is absent (the recipe may have been
// removed while the fetch was in flight).
func (s *Store) ApplyParameters(id string, p *recipe.Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault {
		if s.vault[i].ID == id {
			s.vault[i].Parameters = p
			break
		}
	}
	s.persist(db.KeyVault, s.vault)
}

// FindRecipe returns the saved recipe with the given id, or NOT_FOUND.
func (s *Store) FindRecipe(id string) (*recipe.SavedRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vault {
		if s.vault[i].ID == id {
			r := s.vault[i]
			return &r, nil
		}
	}
	return nil, errors.NewNotFound(id)
}
