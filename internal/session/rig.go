package session

import (
	"github.com/coldestconcept/beatgenius/internal/errors"
	"github.com/coldestconcept/beatgenius/internal/plugin"
	"github.com/coldestconcept/beatgenius/internal/recipe"
	"github.com/coldestconcept/beatgenius/internal/rig"
)

// BuildRig assembles a shareable bundle around one saved recipe. An empty
// recipeID selects the first vault entry. The preset slot carries the
// recipe's linked preset when one exists, otherwise a snapshot of the
// live appearance.
func (s *Store) BuildRig(recipeID string) (*rig.Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vault) == 0 {
		return nil, errors.NewVaultEmpty()
	}

	var saved recipe.SavedRecipe
	if recipeID == "" {
		saved = s.vault[0]
	} else {
		found := false
		for i := range s.vault {
			if s.vault[i].ID == recipeID {
				saved = s.vault[i]
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NewNotFound(recipeID)
		}
	}

	var preset recipe.UIPreset
	if saved.LinkedPresetID != nil {
		if i := s.presetIndexLocked(*saved.LinkedPresetID); i >= 0 {
			preset = s.presets[i]
		}
	}
	if preset.ID == "" {
		preset = recipe.UIPreset{
			Appearance:  s.appearance,
			ID:          newULID(),
			Name:        saved.Title + " Look",
			BubbleColor: saved.BubbleColor,
		}
	}

	senderName := "Anonymous"
	if s.user != nil {
		senderName = s.user.Name
	}

	bundle := rig.Bundle{
		Recipe:        saved,
		SenderPlugins: append([]plugin.Record(nil), s.plugins...),
		Preset:        preset,
		SenderName:    senderName,
	}
	return &bundle, nil
}

// SetIncoming stages a bundle received from another user for review.
func (s *Store) SetIncoming(b *rig.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incoming = b
}

// Incoming returns the staged bundle, if any.
func (s *Store) Incoming() *rig.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incoming
}

// AcceptIncoming saves the staged bundle's recipe into the vault and
// adopts its preset, then clears the staging slot. Returns the saved
// recipe. Requires a staged bundle.
func (s *Store) AcceptIncoming() (*recipe.SavedRecipe, error) {
	s.mu.Lock()
	in := s.incoming
	s.mu.Unlock()

	if in == nil {
		return nil, errors.NewInvalidRequest("no incoming rig to accept")
	}

	saved, _, err := s.SaveRecipe(in.Recipe.BeatRecipe)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.incoming = nil
	s.mu.Unlock()
	return saved, nil
}
